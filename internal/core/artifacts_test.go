package core

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/relkit/relkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdater_RewritesImageReferences(t *testing.T) {
	dir := t.TempDir()
	compose := filepath.Join(dir, "docker-compose.yml")
	content := "services:\n  app:\n    image: registry.example.com/app:v1.2.0\n"
	require.NoError(t, os.WriteFile(compose, []byte(content), 0644))

	version, err := models.ParseVersion("v1.2.1")
	require.NoError(t, err)

	u := NewUpdater("registry.example.com/app", discardLogger())
	updated, err := u.Apply(version, dir, []string{"docker-compose.yml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"docker-compose.yml"}, updated)

	data, err := os.ReadFile(compose)
	require.NoError(t, err)
	assert.Contains(t, string(data), "registry.example.com/app:v1.2.1")
	assert.NotContains(t, string(data), "v1.2.0")
}

func TestUpdater_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()

	version, err := models.ParseVersion("v1.2.1")
	require.NoError(t, err)

	u := NewUpdater("registry.example.com/app", discardLogger())
	updated, err := u.Apply(version, dir, []string{"does-not-exist.yml"})
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestUpdater_UnchangedFileNotReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(path, []byte("no image references here\n"), 0644))

	version, err := models.ParseVersion("v1.2.1")
	require.NoError(t, err)

	u := NewUpdater("registry.example.com/app", discardLogger())
	updated, err := u.Apply(version, dir, []string{"readme.md"})
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestUpdater_PreservesFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.sh")
	require.NoError(t, os.WriteFile(path, []byte("docker run registry.example.com/app:v1.0.0\n"), 0755))

	version, err := models.ParseVersion("v2.0.0")
	require.NoError(t, err)

	u := NewUpdater("registry.example.com/app", discardLogger())
	_, err = u.Apply(version, dir, []string{"deploy.sh"})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
