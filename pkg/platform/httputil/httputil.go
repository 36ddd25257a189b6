// Package httputil centralizes JSON response writing and request decoding so
// handlers stay thin and error envelopes stay consistent.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "importintel/pkg/domain-errors"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError translates a domain error into the JSON error envelope. Internal
// errors omit the description so implementation details never leak to
// callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	description := ""

	var domainErr dErrors.Error
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		if code != dErrors.CodeInternal {
			description = domainErr.Description
		}
	}

	body := map[string]string{"error": string(code)}
	if description != "" {
		body["error_description"] = description
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

// Validator is implemented by request bodies that can check themselves after
// decoding.
type Validator interface {
	Validate() error
}

// DecodeAndPrepare decodes a JSON request body into T and runs its
// validation. On failure it writes the error response and returns ok=false so
// the handler can bail out with a bare return.
func DecodeAndPrepare[T Validator](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "malformed request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return req, false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return req, false
	}
	return req, true
}
