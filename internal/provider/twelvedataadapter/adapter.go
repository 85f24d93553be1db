package twelvedataadapter

import (
    "context"
    "fmt"
    "strconv"
    "strings"

    "marketdata/internal/provider"
    "marketdata/internal/provider/twelvedata"
)

type Config struct {
    Name     string              // display name, default: TwelveData
    Interval twelvedata.Interval // quote interval, default: 1day
}

// Adapter exposes the typed Twelve Data client through the normalized
// provider interface.
type Adapter struct {
    cfg    Config
    client *twelvedata.TwelveDataAPIClient
}

func New(cfg Config, client *twelvedata.TwelveDataAPIClient) *Adapter {
    if cfg.Name == "" { cfg.Name = "TwelveData" }
    if cfg.Interval == "" { cfg.Interval = twelvedata.IntervalDay }
    return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// Fetch issues one quote call per symbol. The upstream has no batch quote
// endpoint, so failed symbols are skipped and the first error is returned
// only when nothing succeeded.
func (a *Adapter) Fetch(ctx context.Context, symbols []string) ([]provider.Quote, error) {
    out := make([]provider.Quote, 0, len(symbols))
    var firstErr error
    for _, symbol := range symbols {
        res, err := a.client.Quote(ctx, twelvedata.NewQuoteRequest(symbol, a.cfg.Interval))
        if err != nil {
            if firstErr == nil { firstErr = err }
            continue
        }
        price := formatFloat(float64(res.Close))
        if price == "" { continue }
        out = append(out, provider.Quote{
            Symbol:     res.Symbol,
            Price:      price,
            Currency:   res.Currency,
            Exchange:   res.Exchange,
            Source:     fmt.Sprintf("%s:%s", a.cfg.Name, res.Exchange),
            ReceivedAt: res.Datetime.Time,
        })
    }
    if len(out) == 0 && firstErr != nil {
        return nil, firstErr
    }
    return out, nil
}

func formatFloat(v float64) string {
    // Preserve precision without trailing zeros
    s := strconv.FormatFloat(v, 'f', -1, 64)
    // Normalize "+Inf", "-Inf", "NaN" if they ever appear (shouldn't) by skipping
    switch strings.ToLower(s) {
    case "inf", "+inf", "-inf", "nan":
        return ""
    }
    return s
}
