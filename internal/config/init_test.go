package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

func TestInitWritesLoadableDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Init(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ExampleDocument, string(data))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "clojure-journal", cfg.ProjectName)
	assert.Equal(t, "deployment", cfg.DeploymentBranch)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("title: keep\n"), 0o600))

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: keep\n", string(data))

	require.NoError(t, Init(path, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ExampleDocument, string(data))
}
