package models

// RepositoryState is a snapshot of the git working tree taken at the start of
// a release run. It is computed fresh per run and never cached.
type RepositoryState struct {
	CurrentBranch string
	IsClean       bool
	LocalHead     string
	RemoteHead    string
}

// InSync reports whether the local and remote heads match.
func (s RepositoryState) InSync() bool {
	return s.LocalHead == s.RemoteHead
}

// ReleaseRecord is the payload produced by a successful release commit and
// handed to the tag publisher.
type ReleaseRecord struct {
	Version         Version
	PreviousVersion Version
	Changelog       string
	CommitSHA       string
}
