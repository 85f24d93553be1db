package twelvedata_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	twelvedata "marketdata/internal/provider/twelvedata"
)

// okResponse wraps a JSON body in a 200 response.
func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestNewTwelveDataAPIClient(t *testing.T) {
	t.Parallel()

	// Assert: a valid key should return a client.
	client, err := twelvedata.NewTwelveDataAPIClient("test")
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return okResponse(`{"price":"1.0"}`), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient), twelvedata.WithBaseURL(baseURL))
	require.NoError(t, err)
	require.NotNil(t, client)

	// Act: call Price with the overridden base URL.
	_, err = client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			return okResponse(`{"price":"1.0"}`), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom header.
	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient), twelvedata.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))
	require.NoError(t, err)
	require.NotNil(t, client)

	// Act: call Price with the custom header.
	_, err = client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.NoError(t, err)
}

func TestCredential_QueryParameter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the default credential transmission is the apikey query parameter.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "test-key", req.URL.Query().Get("apikey"))
			require.Empty(t, req.Header.Get("Authorization"))
			return okResponse(`{"price":"1.0"}`), nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test-key", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.NoError(t, err)
}

func TestCredential_AuthorizationHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: with header auth the key never appears in the query string.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "apikey test-key", req.Header.Get("Authorization"))
			require.Empty(t, req.URL.Query().Get("apikey"))
			return okResponse(`{"price":"1.0"}`), nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test-key", twelvedata.WithHTTPClient(httpClient), twelvedata.WithHeaderAuth())
	require.NoError(t, err)

	_, err = client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.NoError(t, err)
}

func TestCall_ErrTransport(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act: the Do failure must surface as a TransportError.
	res, err := client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.Error(t, err)
	require.Nil(t, res)

	var transportErr *twelvedata.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.ErrorContains(t, transportErr.Unwrap(), "connection refused")
}

func TestCall_ErrQueryConstruction(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: no request is ever performed.
	httpClient.EXPECT().
		Do(gomock.Any()).
		Times(0)

	// Arrange: an unparseable base URL makes request construction fail.
	client, err := twelvedata.NewTwelveDataAPIClient("test",
		twelvedata.WithHTTPClient(httpClient),
		twelvedata.WithBaseURL(string([]rune{0x7f})))
	require.NoError(t, err)

	res, err := client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.Error(t, err)
	require.Nil(t, res)

	var queryErr *twelvedata.QueryConstructionError
	require.ErrorAs(t, err, &queryErr)
}

func TestCall_ErrNonTwoHundred(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: a 429 with a body that would not decode either way. The
	// status must win without the body being touched.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(bytes.NewBufferString("not json at all")),
			}, nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	res, err := client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.Error(t, err)
	require.Nil(t, res)

	var dataErr *twelvedata.DataError
	require.ErrorAs(t, err, &dataErr)
	require.Equal(t, http.StatusTooManyRequests, dataErr.StatusCode)
}

func TestCall_ErrEnvelopeError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: HTTP 200 carrying an application-level error envelope.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okResponse(`{"status":"error","message":"bad symbol"}`), nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	res, err := client.Price(context.Background(), twelvedata.NewPriceRequest("NOPE"))
	require.Error(t, err)
	require.Nil(t, res)

	var dataErr *twelvedata.DataError
	require.ErrorAs(t, err, &dataErr)
	require.Zero(t, dataErr.StatusCode)
	require.Equal(t, "bad symbol", dataErr.Reason)
}

func TestCall_ErrEnvelopeErrorWithoutMessage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okResponse(`{"status":"error"}`), nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Price(context.Background(), twelvedata.NewPriceRequest("NOPE"))
	require.Error(t, err)

	var dataErr *twelvedata.DataError
	require.ErrorAs(t, err, &dataErr)
	require.Equal(t, "<unknown reason>", dataErr.Reason)
}

func TestCall_ErrNonStringStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: a status field that is not a string is rejected, not ignored.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okResponse(`{"status":404,"price":"1.0"}`), nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	res, err := client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.Error(t, err)
	require.Nil(t, res)

	var dataErr *twelvedata.DataError
	require.ErrorAs(t, err, &dataErr)
	require.Contains(t, dataErr.Reason, "not a string")
}

func TestCall_ErrDecodingResponse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okResponse("invalid json"), nil
		}).
		Times(1)

	client, err := twelvedata.NewTwelveDataAPIClient("test", twelvedata.WithHTTPClient(httpClient))
	require.NoError(t, err)

	res, err := client.Price(context.Background(), twelvedata.NewPriceRequest("AAPL"))
	require.Error(t, err)
	require.Nil(t, res)

	var parseErr *twelvedata.ResponseParsingError
	require.ErrorAs(t, err, &parseErr)
}
