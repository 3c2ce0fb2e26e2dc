package core

import (
	"context"
	"testing"

	"github.com/relkit/relkit/internal/gitx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanAndInSync(t *testing.T) {
	git := gitx.NewMockClient()

	state, err := NewValidator(git).Validate(context.Background(), "main", "origin")
	require.NoError(t, err)

	assert.Equal(t, "main", state.CurrentBranch)
	assert.True(t, state.IsClean)
	assert.True(t, state.InSync())
	assert.Equal(t, []string{"origin"}, git.FetchedRemotes)
}

func TestValidate_WrongBranch(t *testing.T) {
	git := gitx.NewMockClient()
	git.Branch = "feature/foo"
	// A dirty tree must not mask the branch violation.
	git.Clean = false

	_, err := NewValidator(git).Validate(context.Background(), "main", "origin")
	assert.ErrorIs(t, err, ErrWrongBranch)
}

func TestValidate_DirtyWorkingTree(t *testing.T) {
	git := gitx.NewMockClient()
	git.Clean = false

	_, err := NewValidator(git).Validate(context.Background(), "main", "origin")
	assert.ErrorIs(t, err, ErrDirtyWorkingTree)
}

func TestValidate_OutOfSyncWithRemote(t *testing.T) {
	git := gitx.NewMockClient()
	git.RemoteSHA = "cccc3333"

	_, err := NewValidator(git).Validate(context.Background(), "main", "origin")
	assert.ErrorIs(t, err, ErrOutOfSync)
}
