// Package envelope shapes every pipeline outcome, success or failure, into
// the consistent outward-facing result contract: a localized error envelope
// with a stable taxonomy code, or a normalized success payload. An outcome is
// never both; successful envelopes can only be produced by the Normalizer,
// failures only by the Translator or explicit Failure construction.
package envelope

import (
	"encoding/json"
	"time"
)

// Error is the outward-facing error envelope.
//
// Wire shape: {code, errorCode, message, details?, timestamp, ...ext fields}.
// Code is the stable catalog key (e.g. "auth.token_expired"), ErrorCode the
// raw taxonomy code (e.g. "A0002") kept for client-side pattern matching.
type Error struct {
	Code      string
	ErrorCode string
	Message   string
	Details   string
	Timestamp time.Time
	Ext       map[string]any
}

// Error implements the error interface, so an already-translated envelope
// passing back through the Translator is recognized and left unchanged.
func (e *Error) Error() string {
	if e.Details == "" {
		return e.ErrorCode
	}
	return e.ErrorCode + ":" + e.Details
}

// MarshalJSON flattens extension fields into the envelope object.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 5+len(e.Ext))
	for k, v := range e.Ext {
		out[k] = v
	}
	out["code"] = e.Code
	out["errorCode"] = e.ErrorCode
	out["message"] = e.Message
	if e.Details != "" {
		out["details"] = e.Details
	}
	out["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	return json.Marshal(out)
}

// Result is the outcome of one pipeline invocation: either a normalized
// success value or an error envelope, never both.
//
// The success constructor is unexported: only the Normalizer can produce a
// successful Result, which guarantees every success passing to the transport
// went through response normalization.
type Result struct {
	value   any
	err     *Error
	success bool
}

// newSuccess creates a successful result. Unexported so that success can
// only originate from the Normalizer within this package.
func newSuccess(value any) Result {
	return Result{value: value, success: true}
}

// Failure creates a failed result from a translated error envelope.
func Failure(err *Error) Result {
	return Result{err: err}
}

// IsSuccess returns true if the result is successful.
func (r Result) IsSuccess() bool {
	return r.success
}

// IsFailure returns true if the result is a failure.
func (r Result) IsFailure() bool {
	return !r.success
}

// Value returns the success value. Only meaningful after IsSuccess.
func (r Result) Value() any {
	return r.value
}

// Err returns the error envelope if the result is a failure, nil otherwise.
func (r Result) Err() *Error {
	return r.err
}

// Marked is a handler result carrying a success-marker code. The Normalizer
// resolves the marker to a localized success message and merges Fields into
// the envelope.
type Marked struct {
	Code   string
	Fields map[string]any
}

// PreShaped is a handler result that already carries its own envelope shape.
// The Normalizer passes it through unchanged.
type PreShaped struct {
	Value any
}
