package docker

import (
	"context"
	"testing"

	"github.com/relkit/relkit/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexWithAttestation = `{
  "schemaVersion": 2,
  "mediaType": "application/vnd.oci.image.index.v1+json",
  "manifests": [
    {"mediaType": "application/vnd.oci.image.manifest.v1+json",
     "digest": "sha256:1111111111111111111111111111111111111111111111111111111111111111",
     "size": 1234, "platform": {"os": "linux", "architecture": "amd64"}},
    {"mediaType": "application/vnd.oci.image.manifest.v1+json",
     "digest": "sha256:2222222222222222222222222222222222222222222222222222222222222222",
     "size": 1234, "platform": {"os": "linux", "architecture": "arm64"}},
    {"mediaType": "application/vnd.oci.image.manifest.v1+json",
     "digest": "sha256:3333333333333333333333333333333333333333333333333333333333333333",
     "size": 567, "platform": {"os": "unknown", "architecture": "unknown"}}
  ]
}`

func TestInspect_SkipsAttestationManifests(t *testing.T) {
	runner := command.NewMockRunner()
	runner.Stub("docker buildx imagetools inspect --raw registry.example.com/app:v1.0.0", indexWithAttestation)

	entries, err := NewVerifier(runner).Inspect(context.Background(), "registry.example.com/app", "v1.0.0")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "linux/amd64", entries[0].Platform)
	assert.Equal(t, "linux/arm64", entries[1].Platform)
}

func TestVerify_AllPlatformsPresent(t *testing.T) {
	runner := command.NewMockRunner()
	runner.Stub("docker buildx imagetools inspect --raw registry.example.com/app:v1.0.0", indexWithAttestation)

	err := NewVerifier(runner).Verify(context.Background(), "registry.example.com/app", "v1.0.0",
		[]string{"linux/amd64", "linux/arm64"})
	assert.NoError(t, err)
}

func TestVerify_MissingPlatform(t *testing.T) {
	amd64Only := `{
	  "schemaVersion": 2,
	  "manifests": [
	    {"digest": "sha256:1111111111111111111111111111111111111111111111111111111111111111",
	     "platform": {"os": "linux", "architecture": "amd64"}}
	  ]
	}`

	runner := command.NewMockRunner()
	runner.Stub("docker buildx imagetools inspect --raw registry.example.com/app:v1.0.0", amd64Only)

	err := NewVerifier(runner).Verify(context.Background(), "registry.example.com/app", "v1.0.0",
		[]string{"linux/amd64", "linux/arm64"})
	assert.ErrorIs(t, err, ErrIncompleteManifest)
	assert.Contains(t, err.Error(), "linux/arm64")
}

func TestVerify_MalformedManifest(t *testing.T) {
	runner := command.NewMockRunner()
	runner.Stub("docker buildx imagetools inspect --raw registry.example.com/app:v1.0.0", "not json")

	err := NewVerifier(runner).Verify(context.Background(), "registry.example.com/app", "v1.0.0",
		[]string{"linux/amd64"})
	assert.Error(t, err)
}
