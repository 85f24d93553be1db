package twelvedata

import "context"

// LogoRequest queries the logo endpoint. All fields are required, so the
// constructor takes them all and there are no optional setters.
type LogoRequest struct {
	symbol   string
	exchange string
	micCode  string
	country  string
}

// NewLogoRequest creates a logo request.
func NewLogoRequest(symbol, exchange, micCode, country string) LogoRequest {
	return LogoRequest{
		symbol:   symbol,
		exchange: exchange,
		micCode:  micCode,
		country:  country,
	}
}

func (r LogoRequest) encode() queryParams {
	return queryParams{
		{key: "symbol", value: r.symbol},
		{key: "exchange", value: r.exchange},
		{key: "mic_code", value: r.micCode},
		{key: "country", value: r.country},
	}
}

// LogoResponse carries the logo image URL for an instrument.
type LogoResponse struct {
	URL string `json:"url"`
}

// Logo retrieves the logo URL for a symbol.
func (c *TwelveDataAPIClient) Logo(ctx context.Context, req LogoRequest) (*LogoResponse, error) {
	return call[LogoResponse](ctx, c, "logo", req)
}
