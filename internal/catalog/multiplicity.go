package catalog

import (
	"fmt"

	"github.com/collabora/atomupd-core/internal/diag"
	"github.com/collabora/atomupd-core/internal/model"
)

// enforceMultiplicity applies the checkpoint multiplicity invariant to one
// track's images, in manifest-path order for determinism:
// for each introduces_checkpoint = N > 0, at most one non-skipped
// non-shadow (canonical) image and at most one non-skipped shadow image
// may survive. Extra manifests are discarded and logged; skipped images
// never count against the limit.
func enforceMultiplicity(images []model.Image, log *diag.Log) []model.Image {
	type slot struct {
		canonicalSeen bool
		shadowSeen    bool
	}
	slots := map[int]*slot{}

	kept := make([]model.Image, 0, len(images))
	for _, img := range images {
		level := img.IntroducesCheckpoint
		if level <= 0 || img.Skip {
			kept = append(kept, img)
			continue
		}

		s := slots[level]
		if s == nil {
			s = &slot{}
			slots[level] = s
		}

		if img.ShadowCheckpoint {
			if s.shadowSeen {
				log.MultiplicityViolation(img.ManifestPath, "checkpoint-multiplicity",
					fmt.Sprintf("duplicate shadow checkpoint at level %d for %s, keeping first-seen", level, img.UniqueName()))
				continue
			}
			s.shadowSeen = true
		} else {
			if s.canonicalSeen {
				log.MultiplicityViolation(img.ManifestPath, "checkpoint-multiplicity",
					fmt.Sprintf("duplicate canonical checkpoint at level %d for %s, keeping first-seen", level, img.UniqueName()))
				continue
			}
			s.canonicalSeen = true
		}

		kept = append(kept, img)
	}

	return kept
}
