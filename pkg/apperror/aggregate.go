package apperror

import (
	"strings"

	"codeberg.org/mutker/erraruga/internal/errors"
)

const (
	aggregatePrefix  = "App errors: "
	aggregateSep     = "; "
	noDetailsMessage = "No error details provided."
)

// Aggregate carries one or more Error values across a failure boundary as a
// single error.
type Aggregate struct {
	errs []*Error
}

// NewAggregate wraps errs. A nil or empty slice is accepted and renders the
// "no details" message.
func NewAggregate(errs []*Error) *Aggregate {
	if errs == nil {
		return &Aggregate{}
	}

	out := make([]*Error, len(errs))
	copy(out, errs)

	return &Aggregate{errs: out}
}

// NewStrictAggregate is NewAggregate for callers that treat an empty
// sequence as a programmer error.
func NewStrictAggregate(errs []*Error) (*Aggregate, error) {
	if len(errs) == 0 {
		return nil, errors.New().WithMessage(errors.ErrInvalidArgument, "aggregate requires at least one error")
	}

	return NewAggregate(errs), nil
}

// Single wraps one Error.
func Single(err *Error) *Aggregate {
	return &Aggregate{errs: []*Error{err}}
}

// Raise returns e wrapped in a one-element Aggregate.
func (e *Error) Raise() error {
	return Single(e)
}

// Raise returns errs wrapped in an Aggregate.
func Raise(errs []*Error) error {
	return NewAggregate(errs)
}

// Errors returns the carried values in order. The slice is a copy.
func (a *Aggregate) Errors() []*Error {
	if a == nil || a.errs == nil {
		return nil
	}

	out := make([]*Error, len(a.errs))
	copy(out, a.errs)

	return out
}

// Message joins every carried error as "(<code>): <message>".
func (a *Aggregate) Message() string {
	if a == nil || len(a.errs) == 0 {
		return noDetailsMessage
	}

	parts := make([]string, 0, len(a.errs))
	for _, e := range a.errs {
		parts = append(parts, "("+e.Code()+"): "+e.Message())
	}

	return aggregatePrefix + strings.Join(parts, aggregateSep)
}

func (a *Aggregate) Error() string {
	return a.Message()
}

// Unwrap exposes the carried values to errors.Is and errors.As. Nil entries
// are skipped.
func (a *Aggregate) Unwrap() []error {
	if a == nil {
		return nil
	}

	out := make([]error, 0, len(a.errs))
	for _, e := range a.errs {
		if e != nil {
			out = append(out, e)
		}
	}

	return out
}
