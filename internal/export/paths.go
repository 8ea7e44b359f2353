package export

import (
	"fmt"
	"path/filepath"

	"github.com/collabora/atomupd-core/internal/model"
)

// CanonicalPath implements canonical layout:
// <release>/<product>/<arch>/<variant>/<branch>/<version>/<buildid>.json.
func CanonicalPath(dir string, key model.TrackKey, version, buildid string) string {
	branch := key.Branch
	if branch == "" {
		branch = "-"
	}
	return filepath.Join(dir,
		model.QuotePathSegment(key.Release),
		model.QuotePathSegment(key.Product),
		model.QuotePathSegment(key.Arch),
		model.QuotePathSegment(key.Variant),
		model.QuotePathSegment(branch),
		model.QuotePathSegment(version),
		model.QuotePathSegment(buildid)+".json",
	)
}

// BranchFallbackPath implements the branch fallback layout:
// <release>/<product>/<arch>/<variant>/<branch>.json.
func BranchFallbackPath(dir string, key model.TrackKey) string {
	branch := key.Branch
	if branch == "" {
		branch = "-"
	}
	return filepath.Join(dir,
		model.QuotePathSegment(key.Release),
		model.QuotePathSegment(key.Product),
		model.QuotePathSegment(key.Arch),
		model.QuotePathSegment(key.Variant),
		model.QuotePathSegment(branch)+".json",
	)
}

// CheckpointFallbackPath implements the checkpoint fallback layout:
// <release>/<product>/<arch>/<variant>/<branch>.cpN.json.
func CheckpointFallbackPath(dir string, key model.TrackKey, level int) string {
	branch := key.Branch
	if branch == "" {
		branch = "-"
	}
	return filepath.Join(dir,
		model.QuotePathSegment(key.Release),
		model.QuotePathSegment(key.Product),
		model.QuotePathSegment(key.Arch),
		model.QuotePathSegment(key.Variant),
		fmt.Sprintf("%s.cp%d.json", model.QuotePathSegment(branch), level),
	)
}

// LegacyCanonicalPath implements pre-branch legacy layout:
// <product>/<arch>/<version>/<variant>/<buildid>.json. It carries no
// branch segment, so images sharing (product, arch, version, variant,
// buildid) across branches collide under this layout — an accepted
// limitation of the legacy scheme.
func LegacyCanonicalPath(dir string, key model.TrackKey, version, buildid string) string {
	return filepath.Join(dir,
		model.QuotePathSegment(key.Product),
		model.QuotePathSegment(key.Arch),
		model.QuotePathSegment(version),
		model.QuotePathSegment(key.Variant),
		model.QuotePathSegment(buildid)+".json",
	)
}

// RemoteInfoPath implements the remote-info.conf location:
// <release>/<product>/<arch>/<variant>/remote-info.conf.
func RemoteInfoPath(dir, release, product, arch, variant string) string {
	return filepath.Join(dir,
		model.QuotePathSegment(release),
		model.QuotePathSegment(product),
		model.QuotePathSegment(arch),
		model.QuotePathSegment(variant),
		"remote-info.conf",
	)
}
