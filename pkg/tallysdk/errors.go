package tallysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoRefreshToken is returned when a session has no refresh token left to
// refresh with or revoke, usually because it already logged out.
var ErrNoRefreshToken = errors.New("tallysdk: no refresh token available")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("tally: %d %s: %v", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("tally: %d %s", e.StatusCode, e.Message)
}

// ValidationMessages returns the per-field messages of a 400 validation
// failure, or nil.
func (e *APIError) ValidationMessages() []string {
	list, ok := e.Details.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsUnauthorized reports a 401 of any kind.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsTokenExpired reports a 401 caused by an expired access token.
func IsTokenExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusUnauthorized &&
		apiErr.Message == "Token expired"
}

// parseErrorResponse turns a non-2xx body into an *APIError. Bodies that are
// not JSON keep the status text as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		apiErr.Message = er.Error
		apiErr.Details = er.Details
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
