package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tally/pkg/apperr"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:         http.StatusBadRequest,
	apperr.KindDuplicateUser:      http.StatusBadRequest,
	apperr.KindInvalidCredentials: http.StatusUnauthorized,
	apperr.KindMissingToken:       http.StatusUnauthorized,
	apperr.KindInvalidToken:       http.StatusUnauthorized,
	apperr.KindExpiredToken:       http.StatusUnauthorized,
	apperr.KindNotFound:           http.StatusNotFound,
	apperr.KindInternal:           http.StatusInternalServerError,
}

// writeAppError is the single place a service error becomes a response.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)

	status, ok := statusByKind[e.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, status, "Internal server error", nil)
		return
	}

	httpx.WriteError(w, status, e.Message, e.Details)
}

// decodeBody reads the JSON body into dst. An empty body leaves dst at its
// zero value so field validation reports what is missing; malformed JSON is a
// validation failure of its own.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	err := httpx.DecodeJSON(w, r, dst)
	if err == nil || errors.Is(err, httpx.ErrEmptyBody) {
		return nil
	}
	return apperr.Validation([]string{`"body" must be valid JSON`}).Wrap(err)
}
