package resolver

import (
	"strings"

	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/pkg/apperror"
	"github.com/rs/zerolog"
)

// Resolver maps errors to display text using default and custom rules.
type Resolver struct {
	defaultRules []*Rule
	customRules  []*Rule
	log          zerolog.Logger
	observer     Observer
}

// New creates an empty Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		log:      zerolog.Nop(),
		observer: nopObserver{},
	}
	for _, o := range opts {
		o(r)
	}

	return r
}

// WithDefaultRule appends rule to the default set, matched by code only.
// Earlier registrations win, so register more specific rules first. A nil
// rule, or one built without NewRule and so lacking a handler, is ignored.
func (r *Resolver) WithDefaultRule(rule *Rule) *Resolver {
	if rule.valid() {
		r.defaultRules = append(r.defaultRules, rule)
	}

	return r
}

// WithRule appends rule to the custom set, matched by (code, context).
// Invalid rules are ignored as in WithDefaultRule.
func (r *Resolver) WithRule(rule *Rule) *Resolver {
	if rule.valid() {
		r.customRules = append(r.customRules, rule)
	}

	return r
}

// DefaultRules returns the default rules in registration order.
func (r *Resolver) DefaultRules() []*Rule {
	return append([]*Rule(nil), r.defaultRules...)
}

// CustomRules returns the custom rules in registration order.
func (r *Resolver) CustomRules() []*Rule {
	return append([]*Rule(nil), r.customRules...)
}

// Resolve returns the display text for e. It fails only when e is nil.
//
// The first custom rule whose key equals (e.Code, e.Context) is tried unless
// ForceDefaultRules is given; its text is returned when it is not blank.
// Otherwise the first default rule with e's code is used and its text is
// returned as is, even if empty. With no match the fallback formatter runs.
func (r *Resolver) Resolve(e *apperror.Error, opts ...ResolveOption) (string, error) {
	if e == nil {
		return "", errors.New().WithMessage(errors.ErrInvalidArgument, "error value is nil")
	}

	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	key := Key{Code: e.Code(), Context: e.Context()}

	if !o.forceDefault {
		if rule := r.findCustom(key); rule != nil {
			if text := rule.Handle(e); strings.TrimSpace(text) != "" {
				r.resolved(TierCustom, key)
				return text, nil
			}

			r.log.Debug().
				Str("code", key.Code).
				Str("context", key.Context).
				Msg("Custom rule returned blank text, deferring to default rules")
			r.observer.Deferred(key)
		}
	}

	if rule := r.findDefault(key.Code); rule != nil {
		r.resolved(TierDefault, key)
		return rule.Handle(e), nil
	}

	r.resolved(TierFallback, key)

	return r.Fallback(e, key.Context), nil
}

func (r *Resolver) findCustom(key Key) *Rule {
	for _, rule := range r.customRules {
		if rule.Key() == key {
			return rule
		}
	}

	return nil
}

func (r *Resolver) findDefault(code string) *Rule {
	for _, rule := range r.defaultRules {
		if rule.code == code {
			return rule
		}
	}

	return nil
}

func (r *Resolver) resolved(tier Tier, key Key) {
	r.log.Debug().
		Str("code", key.Code).
		Str("context", key.Context).
		Str("tier", string(tier)).
		Msg("Error resolved")
	r.observer.Resolved(tier, key.Code)
}
