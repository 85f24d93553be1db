package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"

    "marketdata/internal/config"
    "marketdata/internal/httpx"
    "marketdata/internal/logger"
    twelvedatapkg "marketdata/internal/provider/twelvedata"
)

func main() {
    // .env is optional; real env always wins.
    _ = godotenv.Load()
    logger.Init()
    log := logger.L()

    var endpoint string
    var symbol string
    var interval string
    var outputSize int
    var exchange string
    var micCode string
    var country string
    var headerAuth bool
    var timeout int
    var configPath string

    flag.StringVar(&endpoint, "endpoint", "quote", "endpoint to call: time_series|quote|price|logo")
    flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "AAPL"), "instrument symbol")
    flag.StringVar(&interval, "interval", getenv("TWELVE_DATA_INTERVAL", ""), "bar interval (e.g. 1min, 1h, 1day)")
    flag.IntVar(&outputSize, "outputsize", 0, "max bars for time_series (0 = upstream default)")
    flag.StringVar(&exchange, "exchange", "", "exchange (required for logo)")
    flag.StringVar(&micCode, "mic-code", "", "MIC code (required for logo)")
    flag.StringVar(&country, "country", "", "country (required for logo)")
    flag.BoolVar(&headerAuth, "header-auth", getenvBool("TWELVE_DATA_HEADER_AUTH", false), "send the key as an Authorization header instead of a query param")
    flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.Parse()

    // Load config (optional) and merge with flags/env
    cfg, err := config.Load(configPath)
    if err != nil { log.Fatal().Err(err).Msg("config") }
    if interval != "" { cfg.TwelveData.Interval = interval }
    if headerAuth { cfg.TwelveData.HeaderAuth = true }
    if timeout != 0 { cfg.Server.RequestTimeoutSec = timeout }
    if cfg.TwelveData.APIKey == "" {
        log.Fatal().Msg("no API key configured; set TWELVE_DATA_API_KEY or config.json")
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    options := []twelvedatapkg.TwelveDataAPIClientOption{
        twelvedatapkg.WithHTTPClient(httpClient),
        twelvedatapkg.WithBaseURL(cfg.TwelveData.BaseURL),
    }
    if cfg.TwelveData.HeaderAuth {
        options = append(options, twelvedatapkg.WithHeaderAuth())
    }
    client, err := twelvedatapkg.NewTwelveDataAPIClient(cfg.TwelveData.APIKey, options...)
    if err != nil { log.Fatal().Err(err).Msg("twelvedata client") }

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
    defer cancel()

    iv := twelvedatapkg.Interval(cfg.TwelveData.Interval)

    var out any
    switch strings.ToLower(endpoint) {
    case "time_series":
        req := twelvedatapkg.NewTimeSeriesRequest(symbol, iv)
        if outputSize > 0 { req = req.WithOutputSize(outputSize) }
        out, err = client.TimeSeries(ctx, req)
    case "quote":
        out, err = client.Quote(ctx, twelvedatapkg.NewQuoteRequest(symbol, iv))
    case "price":
        out, err = client.Price(ctx, twelvedatapkg.NewPriceRequest(symbol))
    case "logo":
        out, err = client.Logo(ctx, twelvedatapkg.NewLogoRequest(symbol, exchange, micCode, country))
    default:
        log.Fatal().Str("endpoint", endpoint).Msg("unknown endpoint")
    }
    if err != nil { log.Fatal().Err(err).Str("endpoint", endpoint).Str("symbol", symbol).Msg("call failed") }

    b, _ := json.MarshalIndent(out, "", "  ")
    fmt.Println(string(b))
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var x int
        _, _ = fmt.Sscanf(v, "%d", &x)
        if x != 0 { return x }
    }
    return def
}
func getenvBool(key string, def bool) bool {
    if v := os.Getenv(key); v != "" {
        switch strings.ToLower(v) {
        case "1","true","yes","y": return true
        case "0","false","no","n": return false
        }
    }
    return def
}
