package resolver_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/erraruga/pkg/apperror"
	"codeberg.org/mutker/erraruga/pkg/resolver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	tiers    []resolver.Tier
	deferred []resolver.Key
}

func (o *recordingObserver) Resolved(tier resolver.Tier, _ string) { o.tiers = append(o.tiers, tier) }
func (o *recordingObserver) Deferred(key resolver.Key)             { o.deferred = append(o.deferred, key) }

func mustRule(t *testing.T, code, context, text string) *resolver.Rule {
	t.Helper()

	rule, err := resolver.NewContextRule(code, context, constant(text))
	require.NoError(t, err)

	return rule
}

func resolve(t *testing.T, r *resolver.Resolver, e *apperror.Error, opts ...resolver.ResolveOption) string {
	t.Helper()

	text, err := r.Resolve(e, opts...)
	require.NoError(t, err)

	return text
}

func TestWithDefaultRule_Chains(t *testing.T) {
	r := resolver.New()
	rule := mustRule(t, "TEST_001", "", "Default message")

	assert.Same(t, r, r.WithDefaultRule(rule))
	assert.Equal(t, []*resolver.Rule{rule}, r.DefaultRules())
	assert.Empty(t, r.CustomRules())
}

func TestWithRule_DoesNotTouchDefaults(t *testing.T) {
	r := resolver.New()
	rule := mustRule(t, "TEST_002", "", "Custom message")

	assert.Same(t, r, r.WithRule(rule))
	assert.Empty(t, r.DefaultRules())
	assert.Equal(t, []*resolver.Rule{rule}, r.CustomRules())
}

func TestWithRule_IgnoresRulesWithoutHandler(t *testing.T) {
	r := resolver.New().
		WithRule(nil).
		WithRule(&resolver.Rule{}).
		WithDefaultRule(&resolver.Rule{})

	assert.Empty(t, r.CustomRules())
	assert.Empty(t, r.DefaultRules())

	var text string
	require.NotPanics(t, func() { text = resolve(t, r, apperror.New("ZERO")) })
	assert.Equal(t, "Unknown error.\nZERO: \n", text)
}

func TestResolve_NilError(t *testing.T) {
	_, err := resolver.New().Resolve(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrInvalidArgument)
}

func TestResolve_CustomRule(t *testing.T) {
	r := resolver.New().WithRule(mustRule(t, "TEST_003", "", "Custom message"))

	text := resolve(t, r, apperror.New("TEST_003", apperror.WithMessage("Original message")))
	assert.Equal(t, "Custom message", text)
}

func TestResolve_CustomRuleWithContext(t *testing.T) {
	r := resolver.New().WithRule(mustRule(t, "TEST_004", "TestContext", "Custom message"))

	e := apperror.New("TEST_004", apperror.WithMessage("Original message"), apperror.WithContext("TestContext"))
	assert.Equal(t, "Custom message", resolve(t, r, e))

	other := apperror.New("TEST_004", apperror.WithContext("OtherContext"))
	assert.Contains(t, resolve(t, r, other), "Unknown error.")

	none := apperror.New("TEST_004")
	assert.Contains(t, resolve(t, r, none), "Unknown error.", "a context rule must not match an error without context")
}

func TestResolve_ContextlessRuleDoesNotMatchContextError(t *testing.T) {
	r := resolver.New().WithRule(mustRule(t, "TEST_004", "", "Custom message"))

	e := apperror.New("TEST_004", apperror.WithContext("TestContext"))
	assert.Contains(t, resolve(t, r, e), "Unknown error.")
}

func TestResolve_BlankCustomDefersToDefault(t *testing.T) {
	for _, blank := range []string{"", "   ", "\n\t"} {
		obs := &recordingObserver{}
		r := resolver.New(resolver.WithObserver(obs)).
			WithRule(mustRule(t, "TEST_005", "", blank)).
			WithDefaultRule(mustRule(t, "TEST_005", "", "Base message"))

		assert.Equal(t, "Base message", resolve(t, r, apperror.New("TEST_005")))
		assert.Equal(t, []resolver.Key{{Code: "TEST_005"}}, obs.deferred)
		assert.Equal(t, []resolver.Tier{resolver.TierDefault}, obs.tiers)
	}
}

func TestResolve_DefaultResultAcceptedEvenIfEmpty(t *testing.T) {
	r := resolver.New().
		WithRule(mustRule(t, "TEST_005", "", " ")).
		WithDefaultRule(mustRule(t, "TEST_005", "", ""))

	assert.Equal(t, "", resolve(t, r, apperror.New("TEST_005")))
}

func TestResolve_ForceDefaultRules(t *testing.T) {
	called := false
	custom, err := resolver.NewRule("TEST_006", func(*apperror.Error) string {
		called = true
		return "Custom message"
	})
	require.NoError(t, err)

	r := resolver.New().WithRule(custom).WithDefaultRule(mustRule(t, "TEST_006", "", "Base message"))
	e := apperror.New("TEST_006", apperror.WithMessage("Original message"))

	assert.Equal(t, "Base message", resolve(t, r, e, resolver.ForceDefaultRules()))
	assert.False(t, called, "custom rules must not run when defaults are forced")

	assert.Equal(t, "Custom message", resolve(t, r, e, resolver.ForceDefault(false)))
	assert.True(t, called)
}

func TestResolve_ForceDefaultFallsBack(t *testing.T) {
	r := resolver.New().WithRule(mustRule(t, "TEST_006", "", "Custom message"))

	text := resolve(t, r, apperror.New("TEST_006"), resolver.ForceDefault(true))
	assert.Contains(t, text, "Unknown error.")
}

func TestResolve_FirstRegistrationWins(t *testing.T) {
	r := resolver.New().
		WithRule(mustRule(t, "DUP", "ctx", "first custom")).
		WithRule(mustRule(t, "DUP", "ctx", "second custom")).
		WithDefaultRule(mustRule(t, "DUP", "", "first default")).
		WithDefaultRule(mustRule(t, "DUP", "", "second default"))

	e := apperror.New("DUP", apperror.WithContext("ctx"))
	assert.Equal(t, "first custom", resolve(t, r, e))
	assert.Equal(t, "first default", resolve(t, r, e, resolver.ForceDefaultRules()))
}

func TestResolve_DefaultIgnoresContext(t *testing.T) {
	r := resolver.New().WithDefaultRule(mustRule(t, "NOT_FOUND", "SomeContext", "Resource not found"))

	e := apperror.New("NOT_FOUND", apperror.WithContext("AnotherContext"))
	assert.Equal(t, "Resource not found", resolve(t, r, e))
}

func TestResolve_HandlerSeesError(t *testing.T) {
	rule, err := resolver.NewRule("VALIDATION_ERROR", func(e *apperror.Error) string {
		return "Validation error: " + e.Message()
	})
	require.NoError(t, err)

	r := resolver.New().WithDefaultRule(rule)
	e := apperror.New("VALIDATION_ERROR", apperror.WithMessage("Invalid email format"))
	assert.Equal(t, "Validation error: Invalid email format", resolve(t, r, e))
}

func TestResolve_NoMatch(t *testing.T) {
	r := resolver.New()

	e := apperror.New("UNKNOWN_001", apperror.WithMessage("Unknown error"), apperror.WithContext("TestContext"))
	text := resolve(t, r, e)
	assert.Contains(t, text, "Unknown error.")
	assert.Contains(t, text, "UNKNOWN_001: Unknown error")
	assert.Contains(t, text, "Context: TestContext")

	e = apperror.New("UNKNOWN_002", apperror.WithMessage("Unknown error")).
		AppendMetadata("key1", "value1").
		AppendMetadata("key2", "value2")
	text = resolve(t, r, e)
	assert.Contains(t, text, "Metadata:")
	assert.Contains(t, text, "key1: value1")
	assert.Contains(t, text, "key2: value2")
}

func TestResolve_LogsTier(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	r := resolver.New(resolver.WithLogger(log)).WithDefaultRule(mustRule(t, "A", "", "a"))
	resolve(t, r, apperror.New("A"))

	assert.Contains(t, buf.String(), `"tier":"default"`)
	assert.Contains(t, buf.String(), `"code":"A"`)
}

func TestEndToEnd_ValidationScenario(t *testing.T) {
	r := resolver.New().
		WithDefaultRule(mustRule(t, "VALIDATION_ERROR", "", "Default validation error")).
		WithRule(mustRule(t, "VALIDATION_ERROR", "UserInput", "Custom validation error"))

	e := apperror.New("VALIDATION_ERROR", apperror.WithMessage("Field is required"), apperror.WithContext("UserInput"))
	e.AppendMetadata("field", "email")

	assert.Equal(t, "Custom validation error", resolve(t, r, e))
	assert.Equal(t, "Default validation error", resolve(t, r, e, resolver.ForceDefaultRules()))
}
