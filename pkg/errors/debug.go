package errors

import (
	"errors"
	"fmt"
)

// ErrorDump is the log-friendly shape of an error chain.
type ErrorDump struct {
	TopMessage    string   `json:"top_message"`
	Code          Code     `json:"code"`
	PublicMessage string   `json:"public_message"`
	Retryable     bool     `json:"retryable"`
	Details       any      `json:"details,omitempty"`
	Chain         []string `json:"chain,omitempty"`
}

// Dump flattens an error chain for structured log output. Details are only
// included when the code allows them.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	typed := As(err)
	meta := MetadataFor(typed.Code())
	d := ErrorDump{
		TopMessage:    err.Error(),
		Code:          typed.Code(),
		PublicMessage: meta.PublicMessage,
		Retryable:     meta.Retryable,
	}
	if typed != nil && meta.DetailsAllowed {
		d.Details = typed.Details()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	return d
}
