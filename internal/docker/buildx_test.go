package docker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/relkit/relkit/internal/command"
	"github.com/relkit/relkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnsureBuilder_ReusesExisting(t *testing.T) {
	runner := command.NewMockRunner()
	runner.Stub("docker buildx inspect relkit-builder", "Name: relkit-builder")

	c := NewCoordinator(runner, "relkit-builder", discardLogger())
	require.NoError(t, c.EnsureBuilder(context.Background()))

	assert.False(t, runner.Called("docker buildx create --name relkit-builder --use --bootstrap"))
}

func TestEnsureBuilder_CreatesOnFirstUse(t *testing.T) {
	runner := command.NewMockRunner()
	runner.StubErr("docker buildx inspect relkit-builder", 1, "no builder")
	runner.Stub("docker buildx create --name relkit-builder --use --bootstrap", "relkit-builder")

	c := NewCoordinator(runner, "relkit-builder", discardLogger())
	require.NoError(t, c.EnsureBuilder(context.Background()))

	assert.True(t, runner.Called("docker buildx create --name relkit-builder --use --bootstrap"))
}

func TestBuildAndPush_SingleInvocationAllPlatformsAndTags(t *testing.T) {
	runner := command.NewMockRunner()
	runner.Stub("docker buildx build --builder relkit-builder --platform linux/amd64,linux/arm64 "+
		"--tag registry.example.com/app:v1.0.0 --tag registry.example.com/app:latest --push .", "")

	target := models.BuildTarget{
		Repository: "registry.example.com/app",
		Platforms:  []string{"linux/amd64", "linux/arm64"},
		Tags:       []string{"v1.0.0", "latest"},
	}

	c := NewCoordinator(runner, "relkit-builder", discardLogger())
	require.NoError(t, c.BuildAndPush(context.Background(), target))
	assert.Len(t, runner.Calls, 1)
}

func TestBuildAndPush_NonZeroExitFails(t *testing.T) {
	runner := command.NewMockRunner()
	runner.StubErr("docker buildx build --builder relkit-builder --platform linux/amd64 "+
		"--tag registry.example.com/app:v1.0.0 --push .", 1, "failed to solve")

	target := models.BuildTarget{
		Repository: "registry.example.com/app",
		Platforms:  []string{"linux/amd64"},
		Tags:       []string{"v1.0.0"},
	}

	c := NewCoordinator(runner, "relkit-builder", discardLogger())
	err := c.BuildAndPush(context.Background(), target)
	assert.ErrorIs(t, err, ErrBuildFailed)
	assert.Contains(t, err.Error(), "failed to solve")
}
