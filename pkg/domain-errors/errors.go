// Package domainerrors defines the closed set of error codes the import
// intelligence core returns to callers. Services and stores wrap failures in
// these typed errors; the HTTP layer translates them to status codes without
// inspecting error strings.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies a category of domain failure.
type Code string

const (
	// CodeUnrecognizedIdentifier means all resolution strategies were
	// exhausted without a match.
	CodeUnrecognizedIdentifier Code = "unrecognized_identifier"
	// CodeUnsupportedCountry means no eligibility rule is modeled for the
	// requested jurisdiction and vehicle category.
	CodeUnsupportedCountry Code = "unsupported_country"
	// CodeComputationOverflow means a monetary input or output was negative
	// or non-finite.
	CodeComputationOverflow Code = "computation_overflow"
	// CodeNotFound means a session or cache lookup by key/token missed.
	CodeNotFound Code = "not_found"
	// CodeStoreUnavailable means a round trip to the external store failed.
	CodeStoreUnavailable Code = "store_unavailable"

	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeInternal     Code = "internal_error"
)

// Error carries a domain code plus a human-readable description.
type Error struct {
	Code        Code
	Description string
}

// New constructs a typed domain error.
func New(code Code, description string) Error {
	return Error{Code: code, Description: description}
}

func (e Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// Is makes errors.Is match on code, ignoring descriptions.
func (e Error) Is(target error) bool {
	other, ok := target.(Error)
	return ok && other.Code == e.Code
}

// Is reports whether err carries the given domain code anywhere in its
// chain.
func Is(err error, code Code) bool {
	return errors.Is(err, Error{Code: code})
}

// ToHTTPStatus maps a domain code to the HTTP status the transport layer
// should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnrecognizedIdentifier, CodeNotFound:
		return http.StatusNotFound
	case CodeUnsupportedCountry:
		return http.StatusUnprocessableEntity
	case CodeComputationOverflow, CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
