// Package apperror provides the structured error value carried by the
// resolver and the aggregate used to raise one or more of them as a single
// Go error.
//
// An Error holds a stable code, an optional context that narrows the code to
// a call site or subsystem, a human message and an open metadata bag. Values
// are built once where a failure is detected, optionally enriched with
// AppendMetadata, and then either turned into display text by a resolver or
// raised through an Aggregate.
//
// Neither Error nor Aggregate is synchronized. Build a value completely before
// sharing it between goroutines.
package apperror
