// Package resolver turns apperror values into display text.
//
// A Resolver holds two independent, ordered rule sets. Default rules are
// matched by code alone; custom rules are matched by the (code, context) key
// and are consulted first. Lookup is first match in registration order. A
// custom rule whose handler returns blank text defers to the default tier,
// and when no rule matches the fallback formatter renders the error itself.
//
// Register rules during startup and only call Resolve afterwards: the rule
// sets are not synchronized, so concurrent registration and resolution must
// be excluded by the caller.
package resolver
