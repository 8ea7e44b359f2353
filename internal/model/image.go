package model

import (
	"net/url"
	"strings"
)

const (
	ManifestExt   = ".manifest.json"
	BundleExt     = ".raucb"
	ChunkStoreExt = ".castr"
)

// Image is a validated Manifest plus the on-disk artifacts found next to
// it during the scan.
type Image struct {
	Manifest

	ManifestPath   string // absolute path to the *.manifest.json file
	BundlePath     string // absolute path to the *.raucb file, "" if missing
	ChunkStorePath string // absolute path to the *.castr directory, "" if missing
	UpdatePath     string // relative URL path to the bundle, derived from the scan root
}

// HasBundle reports whether this image's bundle is present and it is
// therefore eligible to be proposed as an update target.
func (i Image) HasBundle() bool {
	return i.BundlePath != ""
}

// QuotePathSegment percent-encodes a single path segment and rewrites a
// leading '.' to '_', grounded on steamosatomupd/image.py:Image.quote.
func QuotePathSegment(segment string) string {
	if strings.HasPrefix(segment, ".") {
		segment = "_" + segment[1:]
	}
	return url.PathEscape(strings.ReplaceAll(segment, "/", "_"))
}

// BuildUpdatePath derives the relative URL path to an image's bundle file
// from the scan root, quoting every segment.
func BuildUpdatePath(relDir, stem string) string {
	parts := strings.Split(relDir, "/")
	quoted := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		quoted = append(quoted, QuotePathSegment(p))
	}
	quoted = append(quoted, QuotePathSegment(stem)+BundleExt)
	return strings.Join(quoted, "/")
}
