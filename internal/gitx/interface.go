package gitx

import "context"

// ClientInterface defines the contract for git operations.
// This interface enables mocking for testing the core package.
type ClientInterface interface {
	// Repository state
	CurrentBranch(ctx context.Context) (string, error)
	IsClean(ctx context.Context) (bool, error)
	Fetch(ctx context.Context, remote string) error
	Head(ctx context.Context) (string, error)
	ShortHead(ctx context.Context) (string, error)
	RemoteHead(ctx context.Context, remote, branch string) (string, error)

	// Tags
	Tags(ctx context.Context) ([]string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	CreateTag(ctx context.Context, tag, message string) error

	// History and mutation
	Subjects(ctx context.Context, from, to string, limit int) ([]string, error)
	Commit(ctx context.Context, message string, paths []string) (string, error)
	Push(ctx context.Context, remote string, refs ...string) error
}

// Verify that *Client implements ClientInterface at compile time
var _ ClientInterface = (*Client)(nil)
