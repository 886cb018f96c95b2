package apperror

// Option configures an Error during construction via New.
type Option func(*Error)

// WithMessage sets the human-readable message.
func WithMessage(msg string) Option { return func(e *Error) { e.message = msg } }

// WithContext sets the context that disambiguates errors sharing a code.
func WithContext(ctx string) Option { return func(e *Error) { e.context = ctx } }

// WithMetadata merges md into the metadata bag. The map is cloned.
func WithMetadata(md map[string]any) Option {
	return func(e *Error) {
		for k, v := range cloneMap(md) {
			e.metadata[k] = v
		}
	}
}

// WithCause sets the underlying error returned by Unwrap.
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }
