package model

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SnapshotToken is the literal "version" value that marks a date-based
// snapshot image instead of a semantic-versioned release.
const SnapshotToken = "snapshot"

// Version is the manifest's version field: either a semantic version or
// the snapshot token. Exactly one of the two is meaningful at a time.
type Version struct {
	Semantic *semver.Version
}

// ParseVersion parses either "snapshot" or a MAJOR.MINOR.PATCH[-pre] string.
func ParseVersion(text string) (Version, error) {
	if text == SnapshotToken {
		return Version{}, nil
	}
	v, err := semver.StrictNewVersion(text)
	if err != nil {
		return Version{}, fmt.Errorf("version %q: %w", text, err)
	}
	return Version{Semantic: v}, nil
}

// IsSnapshot reports whether this version is the snapshot token.
func (v Version) IsSnapshot() bool {
	return v.Semantic == nil
}

// IsStable reports whether a semantic version has no prerelease component.
// Snapshots are never considered stable.
func (v Version) IsStable() bool {
	if v.Semantic == nil {
		return false
	}
	return v.Semantic.Prerelease() == ""
}

func (v Version) String() string {
	if v.Semantic == nil {
		return SnapshotToken
	}
	return v.Semantic.Original()
}

// Compare implements ordering Rule 1 for two versioned values: standard
// semver precedence, prerelease lower than release.
func (v Version) Compare(other Version) int {
	return v.Semantic.Compare(other.Semantic)
}
