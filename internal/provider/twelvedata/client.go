package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=twelvedata_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// baseURL is the default host for the Twelve Data API.
const baseURL = "https://api.twelvedata.com"

// unknownReason substitutes for an error envelope without a message field.
const unknownReason = "<unknown reason>"

// TwelveDataAPIClient is a client for the Twelve Data API.
type TwelveDataAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// apiKey authenticates every request.
	apiKey string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// headerAuth transmits the key as an Authorization header instead of
	// the apikey query parameter. The two are functionally equivalent.
	headerAuth bool
}

// TwelveDataAPIClientOption is a configuration option for the Twelve Data API client.
type TwelveDataAPIClientOption func(*TwelveDataAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithHeaderAuth sends the API key as "Authorization: apikey <key>" rather
// than as the apikey query parameter.
func WithHeaderAuth() TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		c.headerAuth = true
	}
}

// NewTwelveDataAPIClient creates a new Twelve Data API client.
func NewTwelveDataAPIClient(key string, options ...TwelveDataAPIClientOption) (*TwelveDataAPIClient, error) {
	var twelveDataAPIClient = &TwelveDataAPIClient{
		baseURL:    baseURL,
		apiKey:     key,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(twelveDataAPIClient)
	}
	return twelveDataAPIClient, nil
}

// envelope is the slice of every response body that can signal an
// application-level failure independent of the HTTP status code.
type envelope struct {
	Status  json.RawMessage `json:"status"`
	Message *string         `json:"message"`
}

// call performs one request-response cycle against an endpoint: encode the
// request, GET, classify the outcome, decode into R. No step retries; the
// first failure wins.
func call[R any](ctx context.Context, c *TwelveDataAPIClient, endpoint string, req queryRequest) (*R, error) {
	params := req.encode()
	if !c.headerAuth {
		params = append(params, queryParam{key: "apikey", value: c.apiKey})
	}

	url := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &QueryConstructionError{Err: err}
	}
	httpReq.Header = c.header.Clone()
	if c.headerAuth {
		httpReq.Header.Set("Authorization", "apikey "+c.apiKey)
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &DataError{StatusCode: res.StatusCode, Reason: fmt.Sprintf("status %d", res.StatusCode)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ResponseParsingError{Err: err}
	}
	if len(env.Status) > 0 {
		// A status that is present but not a string (null included) is
		// rejected rather than ignored.
		var status string
		if err := json.Unmarshal(env.Status, &status); err != nil {
			return nil, &DataError{Reason: "status value in the response is not a string"}
		}
		if status == "error" {
			reason := unknownReason
			if env.Message != nil {
				reason = *env.Message
			}
			return nil, &DataError{Reason: reason}
		}
	}

	var out R
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ResponseParsingError{Err: err}
	}
	return &out, nil
}
