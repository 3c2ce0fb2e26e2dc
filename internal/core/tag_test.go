package core

import (
	"context"
	"testing"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/relkit/relkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_CreatesAndPushes(t *testing.T) {
	git := gitx.NewMockClient()

	v, err := models.ParseVersion("v1.2.1")
	require.NoError(t, err)

	p := NewPublisher(git, "origin", "main", discardLogger())
	created, err := p.Publish(context.Background(), v, "v1.2.1 changelog", FailOnExisting)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, "v1.2.1 changelog", git.CreatedTags["v1.2.1"])
	assert.Equal(t, []string{"main", "v1.2.1"}, git.PushedRefs)
}

func TestPublish_ExistingTag_FailPolicy(t *testing.T) {
	git := gitx.NewMockClient()
	git.TagList = []string{"v1.0.3"}

	v, err := models.ParseVersion("v1.0.3")
	require.NoError(t, err)

	p := NewPublisher(git, "origin", "main", discardLogger())
	_, err = p.Publish(context.Background(), v, "msg", FailOnExisting)
	assert.ErrorIs(t, err, ErrTagExists)
	assert.Empty(t, git.PushedRefs)
}

func TestPublish_ExistingTag_SkipPolicy(t *testing.T) {
	git := gitx.NewMockClient()
	git.TagList = []string{"v1.0.3"}

	v, err := models.ParseVersion("v1.0.3")
	require.NoError(t, err)

	p := NewPublisher(git, "origin", "main", discardLogger())
	created, err := p.Publish(context.Background(), v, "msg", SkipExisting)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, git.PushedRefs)
}
