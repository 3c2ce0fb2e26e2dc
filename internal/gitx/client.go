// Package gitx wraps the git command line behind a narrow client used by the
// release and build pipelines. All state is read fresh from git on every
// call; nothing is cached between pipeline runs.
package gitx

import (
	"context"
	"fmt"
	"strings"

	"github.com/relkit/relkit/internal/command"
)

// Client runs git in a given repository directory through a command.Runner.
type Client struct {
	runner command.Runner
	dir    string
}

// NewClient creates a git client rooted at dir. An empty dir means the
// current working directory.
func NewClient(runner command.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.RunInDir(ctx, c.dir, "git", args...)
	if err != nil {
		if res != nil && res.Stderr != "" {
			return "", fmt.Errorf("git %s: %s: %w", args[0], res.Stderr, err)
		}
		return "", err
	}
	return res.Stdout, nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" if detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// IsClean reports whether the working tree has no uncommitted changes.
func (c *Client) IsClean(ctx context.Context) (bool, error) {
	out, err := c.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// Fetch updates remote tracking refs for the given remote.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	_, err := c.git(ctx, "fetch", remote)
	return err
}

// Head returns the full SHA of the local HEAD commit.
func (c *Client) Head(ctx context.Context) (string, error) {
	return c.git(ctx, "rev-parse", "HEAD")
}

// ShortHead returns the abbreviated SHA of the local HEAD commit.
func (c *Client) ShortHead(ctx context.Context) (string, error) {
	return c.git(ctx, "rev-parse", "--short", "HEAD")
}

// RemoteHead returns the full SHA of the remote tracking branch.
func (c *Client) RemoteHead(ctx context.Context, remote, branch string) (string, error) {
	return c.git(ctx, "rev-parse", remote+"/"+branch)
}

// Tags lists all version tags, one per line from git.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	out, err := c.git(ctx, "tag", "--list", "v*")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// TagExists reports whether the given tag exists locally.
func (c *Client) TagExists(ctx context.Context, tag string) (bool, error) {
	out, err := c.git(ctx, "tag", "--list", tag)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CreateTag creates an annotated tag at HEAD.
func (c *Client) CreateTag(ctx context.Context, tag, message string) error {
	_, err := c.git(ctx, "tag", "-a", tag, "-m", message)
	return err
}

// Subjects returns up to limit commit subject lines in from..to, newest
// first. An empty from lists history reachable from to.
func (c *Client) Subjects(ctx context.Context, from, to string, limit int) ([]string, error) {
	rng := to
	if from != "" {
		rng = from + ".." + to
	}
	out, err := c.git(ctx, "log", "--pretty=format:%s", "-n", fmt.Sprintf("%d", limit), rng)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Commit stages the given paths and commits them, returning the new HEAD SHA.
func (c *Client) Commit(ctx context.Context, message string, paths []string) (string, error) {
	if len(paths) > 0 {
		if _, err := c.git(ctx, append([]string{"add", "--"}, paths...)...); err != nil {
			return "", err
		}
	}
	if _, err := c.git(ctx, "commit", "-m", message); err != nil {
		return "", err
	}
	return c.Head(ctx)
}

// Push pushes the given refs (branches or tags) to the remote.
func (c *Client) Push(ctx context.Context, remote string, refs ...string) error {
	_, err := c.git(ctx, append([]string{"push", remote}, refs...)...)
	return err
}
