// Package errors defines the typed failures returned by the decision engines.
// Callers discriminate on Code; everything else is advisory.
package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

// INVALID_INPUT marks a value the engines refuse to evaluate.
// NO_CANDIDATE_AVAILABLE marks a fulfillment request with no warehouse at all.
const (
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeNoCandidateAvailable Code = "NO_CANDIDATE_AVAILABLE"
	CodeInternal             Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeInvalidInput:         {PublicMessage: "invalid input", DetailsAllowed: true},
	CodeNoCandidateAvailable: {PublicMessage: "no candidate available", DetailsAllowed: true},
	CodeInternal:             {PublicMessage: "internal error"},
}

// MetadataFor returns the metadata for code; unknown codes read as internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded failure with optional structured details and cause.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// InvalidInput reports a caller-supplied value the engines cannot evaluate.
// The offending value is kept in the details under the field name.
func InvalidInput(field string, value any, reason string) *Error {
	return Newf(CodeInvalidInput, "%s %s", field, reason).WithDetail(field, value)
}

// NoCandidate reports that the order had no warehouse to consider at all.
func NoCandidate(orderID string) *Error {
	return Newf(CodeNoCandidateAvailable, "no warehouses available for order %s", orderID).
		WithDetail("order_id", orderID)
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// PublicMessage is the caller-safe summary for the code.
func (e *Error) PublicMessage() string {
	return MetadataFor(e.Code()).PublicMessage
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails replaces the details payload.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

// WithDetail adds one key to map[string]any details, starting a map when none is set.
// Details of any other shape are replaced.
func (e *Error) WithDetail(key string, value any) *Error {
	if e == nil {
		return nil
	}
	fields, ok := e.details.(map[string]any)
	if !ok {
		fields = map[string]any{}
	}
	fields[key] = value
	e.details = fields
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.code, e.message)
	}
	return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches any *Error carrying the same code, so a bare New(code, "") works
// as a sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if e == nil || !stdErrors.As(target, &other) || other == nil {
		return false
	}
	return e.code == other.code
}

// As returns the first *Error in the chain, or nil.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// Retryable reports whether the error's code allows the caller to retry.
// Errors outside this package are treated as internal failures.
func Retryable(err error) bool {
	return MetadataFor(As(err).Code()).Retryable
}
