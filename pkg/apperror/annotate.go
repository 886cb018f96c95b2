package apperror

import (
	"fmt"
	"runtime"
	"strings"
)

// Reserved metadata keys written by FromError.
const (
	MetaStackTrace        = "_StackTrace"
	MetaAdditionalMessage = "_AdditionalMessage"
)

const maxStackDepth = 32

// FromError turns an arbitrary Go error into an Error. The message is the
// cause's text, the call stack of the caller is stored under MetaStackTrace,
// and additional, when not empty, is stored under MetaAdditionalMessage.
// The cause stays reachable through Unwrap.
func FromError(cause error, code, context, additional string) *Error {
	var message string
	if cause != nil {
		message = cause.Error()
	}

	e := New(code, WithMessage(message), WithContext(context), WithCause(cause))
	e.AppendMetadata(MetaStackTrace, callerStack(3))

	if additional != "" {
		e.AppendMetadata(MetaAdditionalMessage, additional)
	}

	return e
}

// callerStack formats the stack starting skip frames above runtime.Callers.
func callerStack(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}
