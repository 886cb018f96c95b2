package resolver

import "github.com/rs/zerolog"

// Builder assembles a Resolver with chained calls.
type Builder struct {
	instance *Resolver
}

// NewBuilder creates a Builder around an empty Resolver.
func NewBuilder() *Builder {
	return &Builder{instance: New()}
}

func (b *Builder) WithDefaultRule(rule *Rule) *Builder {
	b.instance.WithDefaultRule(rule)
	return b
}

func (b *Builder) WithRule(rule *Rule) *Builder {
	b.instance.WithRule(rule)
	return b
}

func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	WithLogger(log)(b.instance)
	return b
}

func (b *Builder) WithObserver(o Observer) *Builder {
	WithObserver(o)(b.instance)
	return b
}

// Build returns the underlying Resolver. Later Builder calls keep mutating
// the same instance.
func (b *Builder) Build() *Resolver {
	return b.instance
}
