package apperror_test

import (
	"errors"
	"testing"

	"codeberg.org/mutker/erraruga/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	cause := errors.New("simulated failure")

	e := apperror.FromError(cause, "UNKNOWN_ERROR", "Worker.Run", "while loading users")

	assert.Equal(t, "UNKNOWN_ERROR", e.Code())
	assert.Equal(t, "Worker.Run", e.Context())
	assert.Equal(t, "simulated failure", e.Message())
	assert.ErrorIs(t, e, cause)

	stack, ok := e.Lookup(apperror.MetaStackTrace)
	require.True(t, ok)
	assert.Contains(t, stack, "TestFromError")

	extra, ok := e.Lookup(apperror.MetaAdditionalMessage)
	require.True(t, ok)
	assert.Equal(t, "while loading users", extra)
}

func TestFromError_NoAdditionalMessage(t *testing.T) {
	e := apperror.FromError(nil, "UNKNOWN_ERROR", "", "")

	assert.Empty(t, e.Message())
	assert.Equal(t, 1, e.MetadataLen())

	_, ok := e.Lookup(apperror.MetaAdditionalMessage)
	assert.False(t, ok)
}
