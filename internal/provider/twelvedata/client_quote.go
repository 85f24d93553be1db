package twelvedata

import (
	"context"
	"strconv"
)

// QuoteRequest queries the quote endpoint.
type QuoteRequest struct {
	common CommonQueryParameters

	symbol   string
	interval Interval

	volumeTimePeriod *int
	endOfDay         *bool
	rollingPeriod    *int
}

// NewQuoteRequest creates a quote request for one symbol and bar interval.
func NewQuoteRequest(symbol string, interval Interval) QuoteRequest {
	return QuoteRequest{symbol: symbol, interval: interval}
}

// WithCommon attaches the shared optional parameter bag.
func (r QuoteRequest) WithCommon(common CommonQueryParameters) QuoteRequest {
	r.common = common
	return r
}

// WithVolumeTimePeriod sets the number of periods for the average volume.
func (r QuoteRequest) WithVolumeTimePeriod(periods int) QuoteRequest {
	r.volumeTimePeriod = &periods
	return r
}

// WithEndOfDay requests the end-of-day quote ("eod" on the wire).
func (r QuoteRequest) WithEndOfDay(endOfDay bool) QuoteRequest {
	r.endOfDay = &endOfDay
	return r
}

// WithRollingPeriod sets the rolling change window in hours.
func (r QuoteRequest) WithRollingPeriod(hours int) QuoteRequest {
	r.rollingPeriod = &hours
	return r
}

func (r QuoteRequest) encode() queryParams {
	p := r.common.params()
	p = append(p,
		queryParam{key: "symbol", value: r.symbol},
		queryParam{key: "interval", value: string(r.interval)},
	)
	if r.volumeTimePeriod != nil {
		p = append(p, queryParam{key: "volume_time_period", value: strconv.Itoa(*r.volumeTimePeriod)})
	}
	if r.endOfDay != nil {
		p = append(p, queryParam{key: "eod", value: strconv.FormatBool(*r.endOfDay)})
	}
	if r.rollingPeriod != nil {
		p = append(p, queryParam{key: "rolling_period", value: strconv.Itoa(*r.rollingPeriod)})
	}
	return p
}

// QuoteResponse is the decoded quote payload. The rolling change fields are
// only present when the upstream computed them.
type QuoteResponse struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Exchange  string   `json:"exchange"`
	MicCode   string   `json:"mic_code"`
	Currency  string   `json:"currency"`
	Timestamp int64    `json:"timestamp"`
	Datetime  DateTime `json:"datetime"`

	Open          Float `json:"open"`
	High          Float `json:"high"`
	Low           Float `json:"low"`
	Close         Float `json:"close"`
	Volume        Float `json:"volume"`
	PreviousClose Float `json:"previous_close"`
	Change        Float `json:"change"`
	PercentChange Float `json:"percent_change"`
	AverageVolume Float `json:"average_volume"`

	Rolling1DayChange   *Float `json:"rolling_1d_change,omitempty"`
	Rolling7DayChange   *Float `json:"rolling_7d_change,omitempty"`
	RollingPeriodChange *Float `json:"rolling_period_change,omitempty"`

	IsMarketOpen bool              `json:"is_market_open"`
	FiftyTwoWeek FiftyTwoWeekStats `json:"fifty_two_week"`
}

// FiftyTwoWeekStats summarizes the trailing 52-week window.
type FiftyTwoWeekStats struct {
	Low               Float `json:"low"`
	High              Float `json:"high"`
	LowChange         Float `json:"low_change"`
	HighChange        Float `json:"high_change"`
	LowChangePercent  Float `json:"low_change_percent"`
	HighChangePercent Float `json:"high_change_percent"`
	Range             Range `json:"range"`
}

// Quote retrieves the latest quote for a symbol.
func (c *TwelveDataAPIClient) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	return call[QuoteResponse](ctx, c, "quote", req)
}
