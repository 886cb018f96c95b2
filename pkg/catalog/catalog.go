package catalog

import (
	"fmt"
	"strings"
	"text/template"

	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/pkg/apperror"
	"codeberg.org/mutker/erraruga/pkg/resolver"
	"github.com/spf13/cast"
)

// Entry is one rule definition.
type Entry struct {
	Code    string `yaml:"code"`
	Context string `yaml:"context,omitempty"`
	Default bool   `yaml:"default,omitempty"`
	Message string `yaml:"message"`
}

// Catalog is an ordered set of entries. Order is registration order.
type Catalog struct {
	Entries []Entry `yaml:"rules"`
}

// view is the template data for one error.
type view struct {
	Code    string
	Context string
	Message string
	e       *apperror.Error
}

// Meta renders the metadata value stored under key, or "" when absent.
func (v view) Meta(key string) string {
	val, ok := v.e.Lookup(key)
	if !ok || val == nil {
		return ""
	}

	if s, err := cast.ToStringE(val); err == nil {
		return s
	}

	return fmt.Sprint(val)
}

// Compile turns entry into a resolver rule. A template that fails while
// executing yields an empty string, which for a custom rule defers to the
// default tier.
func Compile(entry Entry) (*resolver.Rule, error) {
	errFactory := errors.New()

	if entry.Code == "" {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "catalog entry has no code")
	}

	name := entry.Code
	if entry.Context != "" {
		name += "/" + entry.Context
	}

	tmpl, err := template.New(name).Parse(entry.Message)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidTemplate, err)
	}

	handler := func(e *apperror.Error) string {
		var sb strings.Builder
		data := view{Code: e.Code(), Context: e.Context(), Message: e.Message(), e: e}
		if err := tmpl.Execute(&sb, data); err != nil {
			return ""
		}

		return sb.String()
	}

	if entry.Default {
		return resolver.NewRule(entry.Code, handler)
	}

	return resolver.NewContextRule(entry.Code, entry.Context, handler)
}

// Apply compiles every entry and registers them on r in catalog order.
// Nothing is registered when any entry fails to compile.
func (c *Catalog) Apply(r *resolver.Resolver) error {
	rules := make([]*resolver.Rule, len(c.Entries))
	for i, entry := range c.Entries {
		rule, err := Compile(entry)
		if err != nil {
			return errors.New().WithData(errors.CodeOf(err), struct {
				Index int
				Code  string
				Error string
			}{
				Index: i,
				Code:  entry.Code,
				Error: err.Error(),
			})
		}
		rules[i] = rule
	}

	for i, entry := range c.Entries {
		if entry.Default {
			r.WithDefaultRule(rules[i])
		} else {
			r.WithRule(rules[i])
		}
	}

	return nil
}

// Add appends entry and returns the catalog for chaining.
func (c *Catalog) Add(entry Entry) *Catalog {
	c.Entries = append(c.Entries, entry)
	return c
}
