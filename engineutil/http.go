package engineutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is retained for
// display. Demo backends return short plain-text or JSON error bodies.
const maxErrorBody = 64 * 1024

// RequestFailedError is returned when the generation endpoint answers
// with a non-2xx status. Body holds the raw response body so callers
// can surface it to the user unmodified.
type RequestFailedError struct {
	// StatusCode is the HTTP status returned by the endpoint.
	StatusCode int
	// Body is the raw response body, read up to a fixed limit.
	Body string
}

func (e *RequestFailedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("engine: http status %d: %s", e.StatusCode, e.Body)
}

// ReadJSON decodes a JSON response body into v and closes the body.
//
// If the response status code is not in the 2xx range, ReadJSON returns
// a *RequestFailedError carrying the raw body instead of decoding.
func ReadJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestFailedError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(v)
}

// ErrorBody extracts the text that should be shown to the user for a
// failed request: the raw response body for HTTP failures, or the
// transport error text otherwise.
func ErrorBody(err error) string {
	var rfe *RequestFailedError
	if errors.As(err, &rfe) {
		return rfe.Body
	}
	return err.Error()
}

// DefaultHTTPClient returns the default HTTP client used when none is provided.
func DefaultHTTPClient() *http.Client {
	return http.DefaultClient
}
