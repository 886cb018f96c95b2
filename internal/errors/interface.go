package errors

// ErrorCode identifies a failure of the module itself (config, catalogue,
// storage), as opposed to the application codes carried by apperror.Error.
type ErrorCode string

// Error is a module failure. Two Errors match under errors.Is when their
// codes are equal.
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory creates module failures.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
