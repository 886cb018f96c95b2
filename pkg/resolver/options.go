package resolver

import "github.com/rs/zerolog"

// Option configures a Resolver during construction via New.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(log zerolog.Logger) Option { return func(r *Resolver) { r.log = log } }

// WithObserver sets the resolution observer.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// ResolveOption adjusts a single Resolve call.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	forceDefault bool
}

// ForceDefaultRules skips the custom tier.
func ForceDefaultRules() ResolveOption {
	return func(o *resolveOptions) { o.forceDefault = true }
}

// ForceDefault is ForceDefaultRules when force is true and a no-op otherwise.
func ForceDefault(force bool) ResolveOption {
	return func(o *resolveOptions) { o.forceDefault = force }
}
