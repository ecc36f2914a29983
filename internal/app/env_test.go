package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	data := `
# comment line
GEMINI_API_KEY=from-dotenv
OPENAI_API_KEY="quoted value"
LOCAL_MODEL='single'
malformed line without equals
=nokey
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LOCAL_MODEL", "")

	require.NoError(t, LoadEnvFiles(path))
	assert.Equal(t, "from-dotenv", os.Getenv("GEMINI_API_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("OPENAI_API_KEY"))
	assert.Equal(t, "single", os.Getenv("LOCAL_MODEL"))
}

func TestLoadEnvFiles_MissingFileIsNotFatal(t *testing.T) {
	assert.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadEnvFiles_LaterFilesOverride(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.env")
	second := filepath.Join(dir, "b.env")
	require.NoError(t, os.WriteFile(first, []byte("LOCAL_MODEL=first\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("LOCAL_MODEL=second\n"), 0o600))

	t.Setenv("LOCAL_MODEL", "")
	require.NoError(t, LoadEnvFiles(first, second))
	assert.Equal(t, "second", os.Getenv("LOCAL_MODEL"))
}
