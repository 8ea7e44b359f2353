package selector

import (
	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/model"
	"github.com/collabora/atomupd-core/pkg/wire"
)

// pathForTrack implements Steps 2-4 for one track: enumerate
// the proposable images after pos, find the furthest one reachable at the
// client's current checkpoint level, and compute the minimal hop sequence
// to it. Returns nil if nothing is reachable.
func pathForTrack(track *catalog.Track, release string, pos, level int) *wire.Path {
	if track == nil {
		return nil
	}

	reachable := reachableNowIndices(track.Images, pos+1, level)
	if len(reachable) == 0 {
		return nil
	}

	lIdx := reachable[len(reachable)-1]

	hops := computeHops(track.Images, pos, lIdx, level)
	if len(hops) == 0 {
		return nil
	}

	candidates := make([]wire.Candidate, 0, len(hops))
	for _, img := range hops {
		candidates = append(candidates, toCandidate(img))
	}

	return &wire.Path{Release: release, Candidates: candidates}
}

// toCandidate converts a catalog Image, chosen as a hop, into its wire
// representation, grounded on steamosatomupd/update.py:UpdateCandidate.
func toCandidate(img model.Image) wire.Candidate {
	return wire.Candidate{
		Image: wire.Image{
			Product:              img.Product,
			Release:              img.Release,
			Variant:              img.Variant,
			Branch:               img.Branch,
			Arch:                 img.Arch,
			Version:              img.Version.String(),
			BuildID:              img.BuildID.String(),
			IntroducesCheckpoint: img.IntroducesCheckpoint,
			RequiresCheckpoint:   img.RequiresCheckpoint,
			ShadowCheckpoint:     img.ShadowCheckpoint,
			EstimatedSize:        img.EstimatedSize,
			DefaultUpdateBranch:  img.DefaultUpdateBranch,
		},
		UpdatePath:           img.UpdatePath,
		EstimatedSize:        img.EstimatedSize,
		RequiresCheckpoint:   img.RequiresCheckpoint,
		IntroducesCheckpoint: img.IntroducesCheckpoint,
		ShadowCheckpoint:     img.ShadowCheckpoint,
	}
}
