package core

import (
	"context"
	"testing"
	"time"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Latest(t *testing.T) {
	git := gitx.NewMockClient()
	git.TagList = []string{"v1.2.0", "v1.10.0", "v1.9.0"}

	latest, err := NewResolver(git).Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.10.0", latest.String())
}

func TestResolver_Latest_NoTags(t *testing.T) {
	git := gitx.NewMockClient()

	latest, err := NewResolver(git).Latest(context.Background())
	require.NoError(t, err)
	assert.True(t, latest.Equal(models.Baseline))
}

func TestResolver_Next(t *testing.T) {
	git := gitx.NewMockClient()
	git.TagList = []string{"v1.2.0"}

	current, next, err := NewResolver(git).Next(context.Background(), models.BumpPatch)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", current.String())
	assert.Equal(t, "v1.2.1", next.String())
}

func TestResolver_Auto(t *testing.T) {
	git := gitx.NewMockClient()
	git.TagList = []string{"v1.2.0"}
	git.ShortSHA = "abc1234"

	r := NewResolver(git)
	r.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)
	}

	v, err := r.Auto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0-20260826143000-abc1234", v.String())
}
