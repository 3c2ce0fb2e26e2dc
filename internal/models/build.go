package models

import "github.com/opencontainers/go-digest"

// BuildTarget describes one multi-arch image build invocation. Platforms is
// fixed for the lifetime of the invocation; Tags always includes the resolved
// version tag and optionally the floating "latest" tag.
type BuildTarget struct {
	Repository string
	Platforms  []string
	Tags       []string
}

// Refs returns the fully qualified image references for every tag.
func (t BuildTarget) Refs() []string {
	refs := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		refs = append(refs, t.Repository+":"+tag)
	}
	return refs
}

// ManifestEntry is one platform actually present in the pushed manifest.
type ManifestEntry struct {
	Platform string
	Digest   digest.Digest
}
