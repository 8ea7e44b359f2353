// Package catalog validates scanned manifests against the server Policy,
// groups them into Tracks, and holds the resulting immutable Catalog.
package catalog

import (
	"sort"

	"github.com/collabora/atomupd-core/internal/model"
)

// Track is the sorted set of Images sharing one TrackKey.
type Track struct {
	Key    model.TrackKey
	Images []model.Image // sorted ascending by model.Compare
}

// IndexOf returns the index of the image matching (version, buildid)
// exactly, or -1 if not found.
func (t *Track) IndexOf(version, buildid string) int {
	for i, img := range t.Images {
		if img.Version.String() == version && img.BuildID.String() == buildid {
			return i
		}
	}
	return -1
}

// Catalog is the immutable, queryable set of all accepted tracks. It is
// safe for concurrent reads from arbitrarily many goroutines once built:
// nothing here mutates after Build returns.
type Catalog struct {
	tracks map[model.TrackKey]*Track
	policy Policy
}

// Policy returns the Policy this Catalog was built against.
func (c *Catalog) Policy() Policy {
	return c.policy
}

// Track returns the track for key, or nil if the catalog has no images for it.
func (c *Catalog) Track(key model.TrackKey) *Track {
	return c.tracks[key]
}

// Tracks returns every track in the catalog, sorted by key for
// deterministic iteration (used by the Static Exporter).
func (c *Catalog) Tracks() []*Track {
	out := make([]*Track, 0, len(c.tracks))
	for _, t := range c.tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}

// HasTrack reports whether any image exists for key.
func (c *Catalog) HasTrack(key model.TrackKey) bool {
	t, ok := c.tracks[key]
	return ok && len(t.Images) > 0
}

// NewFromTracks builds a Catalog directly from already-validated images,
// grouping them into tracks and sorting each by model.Compare. Unlike
// Build, it performs no schema, allow-list, or multiplicity checks; it
// exists for callers that already hold validated Images, such as test
// fixtures.
func NewFromTracks(policy Policy, images []model.Image) *Catalog {
	byKey := map[model.TrackKey][]model.Image{}
	for _, img := range images {
		key := model.KeyOf(img.Manifest)
		byKey[key] = append(byKey[key], img)
	}

	tracks := make(map[model.TrackKey]*Track, len(byKey))
	for key, imgs := range byKey {
		sort.Slice(imgs, func(i, j int) bool { return model.Less(imgs[i], imgs[j]) })
		tracks[key] = &Track{Key: key, Images: imgs}
	}

	return &Catalog{tracks: tracks, policy: policy}
}
