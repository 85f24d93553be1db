package twelvedata

import (
	"context"
	"strconv"
	"time"
)

// TimeSeriesRequest queries the time_series endpoint. Required fields are
// fixed by NewTimeSeriesRequest; every optional field has its own With
// method returning a modified copy, so a request value is never in an
// invalid state and never mutates after encoding.
type TimeSeriesRequest struct {
	common CommonQueryParameters

	symbol   string
	interval Interval

	outputSize    *int
	order         *Order
	startDate     *time.Time
	endDate       *time.Time
	previousClose *bool
}

// NewTimeSeriesRequest creates a time series request for one symbol and
// bar interval.
func NewTimeSeriesRequest(symbol string, interval Interval) TimeSeriesRequest {
	return TimeSeriesRequest{symbol: symbol, interval: interval}
}

// WithCommon attaches the shared optional parameter bag. Its fields are
// flattened next to the request's own parameters.
func (r TimeSeriesRequest) WithCommon(common CommonQueryParameters) TimeSeriesRequest {
	r.common = common
	return r
}

// WithOutputSize caps the number of returned bars ("outputsize" on the wire).
func (r TimeSeriesRequest) WithOutputSize(size int) TimeSeriesRequest {
	r.outputSize = &size
	return r
}

func (r TimeSeriesRequest) WithOrder(order Order) TimeSeriesRequest {
	r.order = &order
	return r
}

func (r TimeSeriesRequest) WithStartDate(startDate time.Time) TimeSeriesRequest {
	r.startDate = &startDate
	return r
}

func (r TimeSeriesRequest) WithEndDate(endDate time.Time) TimeSeriesRequest {
	r.endDate = &endDate
	return r
}

func (r TimeSeriesRequest) WithPreviousClose(previousClose bool) TimeSeriesRequest {
	r.previousClose = &previousClose
	return r
}

func (r TimeSeriesRequest) encode() queryParams {
	p := r.common.params()
	p = append(p,
		queryParam{key: "symbol", value: r.symbol},
		queryParam{key: "interval", value: string(r.interval)},
	)
	if r.outputSize != nil {
		p = append(p, queryParam{key: "outputsize", value: strconv.Itoa(*r.outputSize)})
	}
	if r.order != nil {
		p = append(p, queryParam{key: "order", value: string(*r.order)})
	}
	if r.startDate != nil {
		p = append(p, queryParam{key: "start_date", value: r.startDate.Format(dateTimeLayout)})
	}
	if r.endDate != nil {
		p = append(p, queryParam{key: "end_date", value: r.endDate.Format(dateTimeLayout)})
	}
	if r.previousClose != nil {
		p = append(p, queryParam{key: "previous_close", value: strconv.FormatBool(*r.previousClose)})
	}
	return p
}

// TimeSeriesResponse is the decoded time_series payload.
type TimeSeriesResponse struct {
	Meta   TimeSeriesMeta    `json:"meta"`
	Status string            `json:"status"`
	Values []TimeSeriesValue `json:"values"`
}

// TimeSeriesMeta describes the instrument the bars belong to.
type TimeSeriesMeta struct {
	Symbol           string   `json:"symbol"`
	Interval         Interval `json:"interval"`
	Currency         string   `json:"currency"`
	ExchangeTimezone string   `json:"exchange_timezone"`
	Exchange         string   `json:"exchange"`
	MicCode          string   `json:"mic_code"`
	InstrumentType   string   `json:"type"`
}

// TimeSeriesValue is one OHLCV bar.
type TimeSeriesValue struct {
	Datetime DateTime `json:"datetime"`
	Open     Float    `json:"open"`
	High     Float    `json:"high"`
	Low      Float    `json:"low"`
	Close    Float    `json:"close"`
	Volume   Float    `json:"volume"`
}

// TimeSeries retrieves OHLCV bars for a symbol.
func (c *TwelveDataAPIClient) TimeSeries(ctx context.Context, req TimeSeriesRequest) (*TimeSeriesResponse, error) {
	return call[TimeSeriesResponse](ctx, c, "time_series", req)
}
