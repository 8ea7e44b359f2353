// Package selector answers: given a client descriptor and a Catalog,
// which image(s) must the client install next?
//
// The Catalog is immutable once built, and Select performs no mutation of
// it, so arbitrarily many goroutines may call Select concurrently.
package selector

import (
	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/model"
	"github.com/collabora/atomupd-core/pkg/wire"
)

// Select resolves the client's current image (or, if unknown, its
// self-reported checkpoint level) and returns the minimal update(s) it
// must install, per Steps 1-5.
func Select(cat *catalog.Catalog, client model.ClientDescriptor) wire.Update {
	key := client.TrackKey()
	track := cat.Track(key)

	pos, level := resolvePosition(track, client)

	minor := pathForTrack(track, key.Release, pos, level)

	var major *wire.Path
	if cat.Policy().EnableMajorUpdates {
		if nextKey, nextTrack, ok := nextReleaseTrack(cat, key); ok {
			major = pathForTrack(nextTrack, nextKey.Release, -1, level)
		}
	}

	return wire.Update{Minor: minor, Major: major}
}

// resolvePosition implements Step 1. pos is the index of the
// client's image within track.Images, or -1 if the client is unknown (in
// which case it is treated as virtually positioned before every image in
// the track — this is also how the Static Exporter computes the branch
// and per-checkpoint fallback files).
func resolvePosition(track *catalog.Track, client model.ClientDescriptor) (pos int, level int) {
	if track == nil {
		if client.CheckpointLevel > 0 {
			return -1, client.CheckpointLevel
		}
		return -1, 0
	}

	idx := track.IndexOf(client.Version, client.BuildID)
	if idx < 0 {
		if client.CheckpointLevel > 0 {
			return -1, client.CheckpointLevel
		}
		return -1, 0
	}

	return idx, checkpointLevelUpTo(track.Images, idx)
}

// checkpointLevelUpTo computes C: the maximum introduces_checkpoint among
// images at or before idx in the track, canonical or shadow, skipped or
// not — crossing any of them raises the level.
func checkpointLevelUpTo(images []model.Image, idx int) int {
	c := 0
	for i := 0; i <= idx; i++ {
		if images[i].IntroducesCheckpoint > c {
			c = images[i].IntroducesCheckpoint
		}
	}
	return c
}

// nextReleaseTrack implements Step 5's release search: the
// smallest release codename strictly greater than key.Release (lexically)
// for which a non-skipped, non-shadow image exists in the same
// (product, arch, variant, branch).
func nextReleaseTrack(cat *catalog.Catalog, key model.TrackKey) (model.TrackKey, *catalog.Track, bool) {
	policy := cat.Policy()
	release := key.Release

	for {
		release = policy.NextRelease(release)
		if release == "" {
			return model.TrackKey{}, nil, false
		}
		candidateKey := key
		candidateKey.Release = release
		track := cat.Track(candidateKey)
		if track == nil {
			continue
		}
		if hasProposable(track.Images) {
			return candidateKey, track, true
		}
	}
}

func hasProposable(images []model.Image) bool {
	for _, img := range images {
		if !img.Skip && !img.ShadowCheckpoint {
			return true
		}
	}
	return false
}
