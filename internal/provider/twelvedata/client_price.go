package twelvedata

import (
	"context"
	"strconv"
	"time"
)

// PriceRequest queries the price endpoint.
type PriceRequest struct {
	common CommonQueryParameters

	symbol string

	outputSize    *int
	order         *Order
	startDate     *time.Time
	endDate       *time.Time
	previousClose *bool
}

// NewPriceRequest creates a price request for one symbol.
func NewPriceRequest(symbol string) PriceRequest {
	return PriceRequest{symbol: symbol}
}

// WithCommon attaches the shared optional parameter bag.
func (r PriceRequest) WithCommon(common CommonQueryParameters) PriceRequest {
	r.common = common
	return r
}

func (r PriceRequest) WithOutputSize(size int) PriceRequest {
	r.outputSize = &size
	return r
}

func (r PriceRequest) WithOrder(order Order) PriceRequest {
	r.order = &order
	return r
}

func (r PriceRequest) WithStartDate(startDate time.Time) PriceRequest {
	r.startDate = &startDate
	return r
}

func (r PriceRequest) WithEndDate(endDate time.Time) PriceRequest {
	r.endDate = &endDate
	return r
}

func (r PriceRequest) WithPreviousClose(previousClose bool) PriceRequest {
	r.previousClose = &previousClose
	return r
}

func (r PriceRequest) encode() queryParams {
	p := r.common.params()
	p = append(p, queryParam{key: "symbol", value: r.symbol})
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

// PriceResponse carries the single real-time price.
type PriceResponse struct {
	Price Float `json:"price"`
}

// Price retrieves the real-time price for a symbol.
func (c *TwelveDataAPIClient) Price(ctx context.Context, req PriceRequest) (*PriceResponse, error) {
	return call[PriceResponse](ctx, c, "price", req)
}
