package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "journal.config.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		assert.Equal(t, "journal.config.yaml", file)
	})

	t.Run("Schema violations are fatal", func(t *testing.T) {
		err := SchemaViolation("baseUrl must start and end with '/'").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, IsSchemaViolation(err))
		assert.False(t, IsReferenceError(err))
		assert.True(t, err.IsFatal())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := ReferenceError("doc not found").Warning().Build()
		wrapped := fmt.Errorf("resolve navbar: %w", inner)

		assert.True(t, IsReferenceError(wrapped))
		assert.Equal(t, CategoryReference, GetCategory(wrapped))
		assert.Equal(t, SeverityWarning, GetSeverity(wrapped))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := errors.New("plain")
		assert.Equal(t, CategoryInternal, GetCategory(err))
		assert.Equal(t, SeverityError, GetSeverity(err))
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("original error")
	err := WrapError(originalErr, CategoryGit, "open repository").
		Warning().
		WithContext("path", "/tmp/site").
		WithContextMap(ErrorContext{"branch": "deployment"}).
		Build()

	assert.Equal(t, CategoryGit, err.Category())
	assert.Equal(t, SeverityWarning, err.Severity())
	assert.ErrorIs(t, err, originalErr)
	assert.Equal(t, "[git:warning] open repository: original error", err.Error())

	branch, ok := err.Context().GetString("branch")
	require.True(t, ok)
	assert.Equal(t, "deployment", branch)
}

func TestClassifiedErrorWithContextDoesNotMutate(t *testing.T) {
	base := ReferenceError("missing doc").WithContext("doc_id", "intro").Build()
	derived := base.WithContext("label", "Projects").WithSeverity(SeverityFatal)

	_, ok := base.Context().Get("label")
	assert.False(t, ok)
	assert.Equal(t, SeverityError, base.Severity())
	assert.Equal(t, SeverityFatal, derived.Severity())
	assert.True(t, errors.Is(derived, base))
}

func TestErrorContext(t *testing.T) {
	var ctx ErrorContext
	ctx = ctx.Set("key1", "value1")

	value, exists := ctx.Get("key1")
	require.True(t, exists)
	assert.Equal(t, "value1", value)

	merged := ctx.Merge(ErrorContext{"key1": "override", "key2": 2})
	assert.Equal(t, "override", merged["key1"])
	assert.Equal(t, 2, merged["key2"])
	assert.Equal(t, "value1", ctx["key1"])

	_, ok := merged.GetString("key2")
	assert.False(t, ok)
}
