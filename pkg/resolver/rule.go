package resolver

import (
	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/pkg/apperror"
)

// ErrInvalidArgument is matched by every failure caused by a missing rule
// code, rule handler or error value.
var ErrInvalidArgument = apperror.ErrInvalidArgument

// Handler produces display text for an error.
type Handler func(e *apperror.Error) string

// Key identifies a custom rule. An empty Context matches only errors that
// carry no context.
type Key struct {
	Code    string
	Context string
}

// Rule pairs a key with a handler. Rules are immutable once built.
type Rule struct {
	code    string
	context string
	handler Handler
}

// NewRule creates a rule matching code without a context.
func NewRule(code string, handler Handler) (*Rule, error) {
	return NewContextRule(code, "", handler)
}

// NewContextRule creates a rule matching code within context.
func NewContextRule(code, context string, handler Handler) (*Rule, error) {
	errFactory := errors.New()

	if code == "" {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "rule code is empty")
	}

	if handler == nil {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "rule handler is nil")
	}

	return &Rule{
		code:    code,
		context: context,
		handler: handler,
	}, nil
}

// Must panics if err is non-nil. It is intended for rule tables built from
// literals at startup.
func Must(rule *Rule, err error) *Rule {
	if err != nil {
		panic(err)
	}

	return rule
}

func (r *Rule) valid() bool {
	return r != nil && r.code != "" && r.handler != nil
}

func (r *Rule) Code() string    { return r.code }
func (r *Rule) Context() string { return r.context }
func (r *Rule) Key() Key        { return Key{Code: r.code, Context: r.context} }

// Handle runs the rule's handler.
func (r *Rule) Handle(e *apperror.Error) string { return r.handler(e) }
