// Package models defines the data types shared by the release and build
// pipelines.
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version errors.
var (
	ErrInvalidBumpKind = errors.New("invalid bump kind")
	ErrEmptyVersion    = errors.New("version must not be empty")
)

// BumpKind selects which version component increments.
type BumpKind string

// Supported bump kinds.
const (
	BumpMajor BumpKind = "major"
	BumpMinor BumpKind = "minor"
	BumpPatch BumpKind = "patch"
)

// Version is a release version. For versions produced by Parse or Bump the
// numeric components are authoritative; a custom version keeps the operator's
// string verbatim in Raw with the components best-effort parsed.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Raw   string
}

// Baseline is the implicit first version used when no tags exist yet.
var Baseline = Version{Major: 1, Minor: 0, Patch: 0, Raw: "v1.0.0"}

// ParseVersion parses a "vX.Y.Z" tag into a Version.
func ParseVersion(raw string) (Version, error) {
	sv, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return Version{}, fmt.Errorf("parse version %q: %w", raw, err)
	}
	return Version{
		Major: sv.Major(),
		Minor: sv.Minor(),
		Patch: sv.Patch(),
		Raw:   raw,
	}, nil
}

// CustomVersion accepts an operator-supplied version verbatim. Only emptiness
// is rejected; pre-release and build suffixes pass through untouched so
// ad-hoc tags like v2.0.0-rc1 work.
func CustomVersion(raw string) (Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Version{}, ErrEmptyVersion
	}

	v := Version{Raw: raw}
	if sv, err := semver.NewVersion(strings.TrimPrefix(raw, "v")); err == nil {
		v.Major = sv.Major()
		v.Minor = sv.Minor()
		v.Patch = sv.Patch()
	}
	return v, nil
}

// LatestVersion returns the highest version among the given tags by semantic
// ordering (v1.10.0 > v1.9.0). Tags that do not parse are ignored. An empty
// or unparseable history yields the Baseline.
func LatestVersion(tags []string) Version {
	parsed := make(semver.Collection, 0, len(tags))
	byVersion := make(map[string]string, len(tags))

	for _, tag := range tags {
		sv, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			continue
		}
		parsed = append(parsed, sv)
		byVersion[sv.Original()] = tag
	}

	if len(parsed) == 0 {
		return Baseline
	}

	sort.Sort(parsed)
	top := parsed[len(parsed)-1]
	return Version{
		Major: top.Major(),
		Minor: top.Minor(),
		Patch: top.Patch(),
		Raw:   byVersion[top.Original()],
	}
}

// Bump returns the next version for the given kind. Exactly one component
// increments and the lower components reset to zero.
func (v Version) Bump(kind BumpKind) (Version, error) {
	next := Version{}
	switch kind {
	case BumpMajor:
		next.Major = v.Major + 1
	case BumpMinor:
		next.Major = v.Major
		next.Minor = v.Minor + 1
	case BumpPatch:
		next.Major = v.Major
		next.Minor = v.Minor
		next.Patch = v.Patch + 1
	default:
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidBumpKind, kind)
	}
	next.Raw = fmt.Sprintf("v%d.%d.%d", next.Major, next.Minor, next.Patch)
	return next, nil
}

// String returns the tag form of the version.
func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Equal compares two versions by their tag form.
func (v Version) Equal(other Version) bool {
	return v.String() == other.String()
}
