package apperror

import (
	"fmt"

	"codeberg.org/mutker/erraruga/internal/errors"
)

// ErrInvalidArgument is matched (via errors.Is) by every failure caused by a
// missing or empty required argument.
var ErrInvalidArgument error = errors.New().New(errors.ErrInvalidArgument)

// Error describes one failure occurrence.
type Error struct {
	code     string
	context  string
	message  string
	metadata map[string]any
	cause    error
}

// New creates an Error for code. Unset fields stay empty; New never fails.
func New(code string, opts ...Option) *Error {
	e := &Error{
		code:     code,
		metadata: map[string]any{},
	}
	for _, o := range opts {
		o(e)
	}

	return e
}

// Error renders the value the same way an Aggregate renders each item.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	return fmt.Sprintf("(%s): %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *Error) Code() string {
	if e == nil {
		return ""
	}

	return e.code
}

func (e *Error) Context() string {
	if e == nil {
		return ""
	}

	return e.context
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

// Metadata returns a copy of the metadata bag. It is never nil.
func (e *Error) Metadata() map[string]any {
	if e == nil {
		return map[string]any{}
	}

	return cloneMap(e.metadata)
}

// MetadataLen returns the number of metadata entries.
func (e *Error) MetadataLen() int {
	if e == nil {
		return 0
	}

	return len(e.metadata)
}

// Lookup returns the metadata value stored under key.
func (e *Error) Lookup(key string) (any, bool) {
	if e == nil {
		return nil, false
	}

	v, ok := e.metadata[key]

	return v, ok
}

// AppendMetadata upserts key and returns the receiver for chaining. An
// existing key is overwritten.
func (e *Error) AppendMetadata(key string, value any) *Error {
	if e == nil {
		return nil
	}

	if e.metadata == nil {
		e.metadata = map[string]any{}
	}

	e.metadata[key] = value

	return e
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))

	for k, v := range in {
		if mv, ok := v.(map[string]any); ok {
			out[k] = cloneMap(mv)
			continue
		}

		out[k] = v
	}

	return out
}
