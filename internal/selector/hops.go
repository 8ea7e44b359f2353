package selector

import "github.com/collabora/atomupd-core/internal/model"

// proposable reports whether img can ever be proposed as an update target:
// not a tombstone, not a shadow (shadows are never emitted, only raise the
// checkpoint level), and its bundle actually exists.
func proposable(img model.Image) bool {
	return !img.Skip && !img.ShadowCheckpoint && img.HasBundle()
}

// fixpointLevel computes the highest checkpoint level reachable from pos
// at starting level c by crossing any chain of non-skipped checkpoints
// (canonical or shadow) in images[pos+1:], each only usable once every
// checkpoint it itself requires is already within reach. This is what
// Step 3's "reachable-now" partition actually means once Step 4's
// checkpoint-crossing is taken into account: an image several hops away
// can still be the eventual target L.
func fixpointLevel(images []model.Image, pos, c int) int {
	level := c
	for {
		changed := false
		for i := pos + 1; i < len(images); i++ {
			img := images[i]
			if img.Skip {
				continue
			}
			if img.RequiresCheckpoint <= level && img.IntroducesCheckpoint > level {
				level = img.IntroducesCheckpoint
				changed = true
			}
		}
		if !changed {
			return level
		}
	}
}

// reachableNowIndices returns, in ascending order, the indices of
// images[from:] that are proposable and reachable once every checkpoint
// reachable by crossing the track from "from" at level c has been
// accounted for.
func reachableNowIndices(images []model.Image, from, level int) []int {
	final := fixpointLevel(images, from-1, level)

	var out []int
	for i := from; i < len(images); i++ {
		img := images[i]
		if !proposable(img) {
			continue
		}
		if img.RequiresCheckpoint <= final {
			out = append(out, i)
		}
	}
	return out
}

// computeHops implements Step 4: the minimal sequence of
// images to install to go from pos (exclusive) to images[lIdx] (inclusive),
// given the client starts at checkpoint level c.
//
// Scanning forward and crediting the level happen in the same pass: a
// non-proposable checkpoint (shadow, or canonical without a bundle) is
// crossed in place, raising level exactly as fixpointLevel would, before
// the scan reaches the next candidate. That ordering matters — a
// proposable checkpoint is only picked as the next hop once its own
// requires_checkpoint is satisfied by everything already crossed, never
// on the strength of a level it would itself still need to unlock.
func computeHops(images []model.Image, pos, lIdx, c int) []model.Image {
	var hops []model.Image

	cur := pos
	level := c
	for {
		kIdx := -1
		for i := cur + 1; i < lIdx; i++ {
			img := images[i]
			if img.Skip {
				continue
			}
			crossable := img.RequiresCheckpoint <= level
			if img.ShadowCheckpoint || !img.HasBundle() {
				if crossable && img.IntroducesCheckpoint > level {
					level = img.IntroducesCheckpoint
				}
				continue
			}
			if crossable && img.IntroducesCheckpoint > level {
				kIdx = i
				break
			}
		}

		xIdx := lIdx
		if kIdx != -1 {
			xIdx = kIdx
		}
		x := images[xIdx]
		hops = append(hops, x)

		if x.IntroducesCheckpoint > level {
			level = x.IntroducesCheckpoint
		}
		cur = xIdx

		if xIdx == lIdx {
			break
		}
	}

	return hops
}
