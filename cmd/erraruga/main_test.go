package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/erraruga/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ERRARUGA_CONFIG", "")

	var out bytes.Buffer
	err := run(context.Background(), args, &out)

	return out.String(), err
}

func TestRunUsage(t *testing.T) {
	out, err := runCmd(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage: erraruga")

	out, err = runCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := runCmd(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command frobnicate")
}

func TestResolveDemoRules(t *testing.T) {
	out, err := runCmd(t, "resolve", "--code", "NOT_FOUND", "--context", "User")
	require.NoError(t, err)
	assert.Equal(t, "Resource not found: User\n", out)

	out, err = runCmd(t, "resolve", "--code", "CUSTOM_ERROR", "--context", "UserContext", "--message", "Not authorized")
	require.NoError(t, err)
	assert.Equal(t, "User error: Not authorized\n", out)
}

func TestResolveForceDefaultFallsBack(t *testing.T) {
	out, err := runCmd(t, "resolve", "--code", "CUSTOM_ERROR", "--context", "UserContext",
		"--message", "Not authorized", "--force-default")
	require.NoError(t, err)
	assert.Equal(t, "Unknown error.\nCUSTOM_ERROR: Not authorized\nContext: UserContext\n", out)
}

func TestResolveWithoutDemoRules(t *testing.T) {
	out, err := runCmd(t, "resolve", "--demo-rules=false", "--code", "NOT_FOUND",
		"--message", "gone", "--meta", "b=2", "--meta", "a=1")
	require.NoError(t, err)
	assert.Equal(t, "Unknown error.\nNOT_FOUND: gone\nMetadata:\na: 1\nb: 2\n", out)
}

func TestResolveJSON(t *testing.T) {
	out, err := runCmd(t, "resolve", "--code", "NETWORK_ERROR", "--message", "timeout", "--meta", "RetryCount=3", "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Network error: timeout\n"))
	assert.Contains(t, out, `"code": "NETWORK_ERROR"`)
	assert.Contains(t, out, `"RetryCount": "3"`)
}

func TestResolveArgumentErrors(t *testing.T) {
	_, err := runCmd(t, "resolve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--code is required")

	_, err = runCmd(t, "resolve", "--code", "X", "--meta", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestAggregate(t *testing.T) {
	out, err := runCmd(t, "aggregate", "A=m1", "B=m2")
	require.NoError(t, err)
	assert.Equal(t, "App errors: (A): m1; (B): m2\n", out)

	out, err = runCmd(t, "aggregate")
	require.NoError(t, err)
	assert.Equal(t, "No error details provided.\n", out)

	_, err = runCmd(t, "aggregate", "--strict")
	require.Error(t, err)
}

func TestDemo(t *testing.T) {
	out, err := runCmd(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "Validation error: Invalid email format\n")
	assert.Contains(t, out, "Access denied\n")
	assert.Contains(t, out, "User error: User not authorized\n")
	assert.Contains(t, out, "System error: Database connection failed\n")
	assert.Contains(t, out, "Unknown error.\nUNKNOWN_ERROR: ")
	assert.Equal(t, 9, strings.Count(out, "---\n"))
}

func TestDemoServiceStampsRuntimeContext(t *testing.T) {
	s := newDemoService()
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	e := s.validationError("Email", "Invalid email format")
	assert.Equal(t, "demoService.validationError", e.Context())

	r := resolver.New()
	registerDemoRules(r)
	text, err := r.Resolve(e)
	require.NoError(t, err)
	assert.Equal(t, "Validation error: Invalid email format", text)
}

func TestCatalogImportListResolve(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "rules.db")
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`
rules:
  - code: QUOTA_EXCEEDED
    default: true
    message: "Quota exceeded: {{.Message}}"
  - code: QUOTA_EXCEEDED
    context: Billing
    message: "Upgrade your plan: {{.Message}}"
`), 0o600))

	_, err := runCmd(t, "catalog", "import", "--database", db, rules)
	require.NoError(t, err)

	out, err := runCmd(t, "catalog", "list", "--database", db)
	require.NoError(t, err)
	assert.Contains(t, out, "code: QUOTA_EXCEEDED")
	assert.Contains(t, out, "context: Billing")

	out, err = runCmd(t, "resolve", "--database", db, "--code", "QUOTA_EXCEEDED", "--context", "Billing", "--message", "10GB")
	require.NoError(t, err)
	assert.Equal(t, "Upgrade your plan: 10GB\n", out)

	_, err = runCmd(t, "catalog", "delete", "--database", db, "--code", "QUOTA_EXCEEDED", "--context", "Billing")
	require.NoError(t, err)

	out, err = runCmd(t, "resolve", "--database", db, "--code", "QUOTA_EXCEEDED", "--context", "Billing", "--message", "10GB")
	require.NoError(t, err)
	assert.Equal(t, "Quota exceeded: 10GB\n", out)
}

func TestCatalogImportKeepsFirstDuplicate(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "rules.db")
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`
rules:
  - code: DUP
    context: Ctx
    message: "first"
  - code: DUP
    context: Ctx
    message: "second"
`), 0o600))

	fromFile, err := runCmd(t, "resolve", "--catalog", rules, "--code", "DUP", "--context", "Ctx")
	require.NoError(t, err)
	assert.Equal(t, "first\n", fromFile)

	_, err = runCmd(t, "catalog", "import", "--database", db, rules)
	require.NoError(t, err)

	fromDB, err := runCmd(t, "resolve", "--database", db, "--code", "DUP", "--context", "Ctx")
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromDB)

	out, err := runCmd(t, "catalog", "list", "--database", db)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "code: DUP"))
	assert.NotContains(t, out, "second")
}

func TestCatalogSetReplacesMessage(t *testing.T) {
	db := filepath.Join(t.TempDir(), "rules.db")

	_, err := runCmd(t, "catalog", "set", "--database", db, "--code", "QUOTA", "--default", "--message", "old: {{.Message}}")
	require.NoError(t, err)
	_, err = runCmd(t, "catalog", "set", "--database", db, "--code", "QUOTA", "--default", "--message", "new: {{.Message}}")
	require.NoError(t, err)

	out, err := runCmd(t, "resolve", "--database", db, "--code", "QUOTA", "--message", "10GB")
	require.NoError(t, err)
	assert.Equal(t, "new: 10GB\n", out)

	_, err = runCmd(t, "catalog", "set", "--database", db, "--code", "QUOTA", "--message", "{{.Broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog_template_invalid")

	_, err = runCmd(t, "catalog", "set", "--database", db, "--message", "no code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_argument")
}

func TestResolveAcceptsWarnLevel(t *testing.T) {
	out, err := runCmd(t, "resolve", "--log-level", "warn", "--code", "NOT_FOUND", "--context", "User")
	require.NoError(t, err)
	assert.Equal(t, "Resource not found: User\n", out)
}

func TestCatalogRequiresDatabase(t *testing.T) {
	_, err := runCmd(t, "catalog", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database configured")

	_, err = runCmd(t, "catalog")
	require.Error(t, err)
}
