package gitx

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of ClientInterface for testing.
type MockClient struct {
	Branch     string
	Clean      bool
	LocalSHA   string
	RemoteSHA  string
	ShortSHA   string
	TagList    []string
	SubjectLog []string

	// Err can be set to make every method return an error
	Err error

	// Recorded mutations
	FetchedRemotes []string
	CreatedTags    map[string]string // tag -> message
	PushedRefs     []string
	Commits        []string // commit messages
	CommitSHA      string   // SHA returned by Commit
}

// Verify that *MockClient implements ClientInterface at compile time
var _ ClientInterface = (*MockClient)(nil)

// NewMockClient creates a MockClient representing a clean, in-sync repo.
func NewMockClient() *MockClient {
	return &MockClient{
		Branch:      "main",
		Clean:       true,
		LocalSHA:    "aaaa1111",
		RemoteSHA:   "aaaa1111",
		ShortSHA:    "aaaa111",
		CommitSHA:   "bbbb2222",
		CreatedTags: make(map[string]string),
	}
}

// CurrentBranch returns the mock branch.
func (m *MockClient) CurrentBranch(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Branch, nil
}

// IsClean returns the mock cleanliness flag.
func (m *MockClient) IsClean(ctx context.Context) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.Clean, nil
}

// Fetch records the fetched remote.
func (m *MockClient) Fetch(ctx context.Context, remote string) error {
	if m.Err != nil {
		return m.Err
	}
	m.FetchedRemotes = append(m.FetchedRemotes, remote)
	return nil
}

// Head returns the mock local SHA.
func (m *MockClient) Head(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.LocalSHA, nil
}

// ShortHead returns the mock short SHA.
func (m *MockClient) ShortHead(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.ShortSHA, nil
}

// RemoteHead returns the mock remote SHA.
func (m *MockClient) RemoteHead(ctx context.Context, remote, branch string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.RemoteSHA, nil
}

// Tags returns the mock tag list.
func (m *MockClient) Tags(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TagList, nil
}

// TagExists checks the mock tag list and created tags.
func (m *MockClient) TagExists(ctx context.Context, tag string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.CreatedTags[tag]; ok {
		return true, nil
	}
	for _, t := range m.TagList {
		if t == tag {
			return true, nil
		}
	}
	return false, nil
}

// CreateTag records an annotated tag, failing if it already exists.
func (m *MockClient) CreateTag(ctx context.Context, tag, message string) error {
	if m.Err != nil {
		return m.Err
	}
	if exists, _ := m.TagExists(ctx, tag); exists {
		return fmt.Errorf("tag '%s' already exists", tag)
	}
	m.CreatedTags[tag] = message
	return nil
}

// Subjects returns up to limit entries of the mock subject log.
func (m *MockClient) Subjects(ctx context.Context, from, to string, limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit < len(m.SubjectLog) {
		return m.SubjectLog[:limit], nil
	}
	return m.SubjectLog, nil
}

// Commit records the message and returns the configured commit SHA.
func (m *MockClient) Commit(ctx context.Context, message string, paths []string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Commits = append(m.Commits, message)
	m.LocalSHA = m.CommitSHA
	return m.CommitSHA, nil
}

// Push records the pushed refs.
func (m *MockClient) Push(ctx context.Context, remote string, refs ...string) error {
	if m.Err != nil {
		return m.Err
	}
	m.PushedRefs = append(m.PushedRefs, refs...)
	return nil
}
