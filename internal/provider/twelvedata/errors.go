package twelvedata

import "fmt"

// The four error kinds below are mutually exclusive: every failed call
// returns exactly one of them, and nothing is retried automatically.

// TransportError is a network, TLS or I/O failure below the application
// layer, surfaced verbatim from the injected HTTP client.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// QueryConstructionError means the request could not be serialized into a
// well-formed URL.
type QueryConstructionError struct {
	Err error
}

func (e *QueryConstructionError) Error() string {
	return fmt.Sprintf("query construction error: %v", e.Err)
}

func (e *QueryConstructionError) Unwrap() error { return e.Err }

// ResponseParsingError means the body was not valid JSON, or was valid JSON
// that did not match the expected shape. Field decode failures (bad
// datetime, bad range, bad numeric string) nest inside it.
type ResponseParsingError struct {
	Err error
}

func (e *ResponseParsingError) Error() string {
	return fmt.Sprintf("failed to parse the output: %v", e.Err)
}

func (e *ResponseParsingError) Unwrap() error { return e.Err }

// DataError is a well-formed response whose content signals failure: a
// non-2xx HTTP status, or an explicit status "error" envelope.
type DataError struct {
	// StatusCode is the HTTP status; zero when the failure came from the
	// response envelope of a 2xx reply.
	StatusCode int
	// Reason is human-readable when the upstream supplied one.
	Reason string
}

func (e *DataError) Error() string {
	return "failed to obtain data: " + e.Reason
}
