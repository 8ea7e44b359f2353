package export

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/model"
	"github.com/collabora/atomupd-core/internal/selector"
	"github.com/collabora/atomupd-core/pkg/wire"
)

// Options configures one export run.
type Options struct {
	Dir               string
	EmitRemoteInfo    bool
	RemoteInfoVariants []string
	RemoteInfoBranches []string
}

// Export runs the Static Exporter against cat, writing every canonical,
// branch-fallback, checkpoint-fallback, and (if cat.Policy().EnableLegacyPaths)
// legacy file under opts.Dir. A single file's write failure is logged and
// does not abort the run. Failed writes are not retried, and Export
// returns nil even when some or all of the writes failed.
func Export(cat *catalog.Catalog, opts Options, log *logrus.Logger) error {
	remoteInfoSeen := map[string]bool{}

	for _, track := range cat.Tracks() {
		if err := exportTrack(cat, track, opts, log); err != nil {
			logError(log, err, "export track")
		}

		if opts.EmitRemoteInfo {
			key := track.Key.Release + "/" + track.Key.Product + "/" + track.Key.Arch + "/" + track.Key.Variant
			if !remoteInfoSeen[key] {
				remoteInfoSeen[key] = true
				path := RemoteInfoPath(opts.Dir, track.Key.Release, track.Key.Product, track.Key.Arch, track.Key.Variant)
				info := RemoteInfo{Variants: opts.RemoteInfoVariants, Branches: opts.RemoteInfoBranches}
				if err := writeRemoteInfo(path, info); err != nil {
					logError(log, err, "write remote-info.conf")
				}
			}
		}
	}

	return nil
}

func exportTrack(cat *catalog.Catalog, track *catalog.Track, opts Options, log *logrus.Logger) error {
	for _, img := range track.Images {
		client := model.ClientDescriptor{
			Product: track.Key.Product, Release: track.Key.Release, Arch: track.Key.Arch,
			Variant: track.Key.Variant, Branch: track.Key.Branch,
			Version: img.Version.String(), BuildID: img.BuildID.String(),
		}
		update := selector.Select(cat, client)

		path := CanonicalPath(opts.Dir, track.Key, img.Version.String(), img.BuildID.String())
		if err := writeUpdate(path, update); err != nil {
			logError(log, err, "write canonical export")
		}

		if cat.Policy().EnableLegacyPaths {
			legacyPath := LegacyCanonicalPath(opts.Dir, track.Key, img.Version.String(), img.BuildID.String())
			if err := writeUpdate(legacyPath, update); err != nil {
				logError(log, err, "write legacy export")
			}
		}
	}

	pristine := model.ClientDescriptor{
		Product: track.Key.Product, Release: track.Key.Release, Arch: track.Key.Arch,
		Variant: track.Key.Variant, Branch: track.Key.Branch,
	}
	branchUpdate := selector.Select(cat, pristine)
	if err := writeUpdate(BranchFallbackPath(opts.Dir, track.Key), branchUpdate); err != nil {
		logError(log, err, "write branch fallback")
	}

	for _, level := range canonicalCheckpointLevels(track.Images) {
		atLevel := model.ClientDescriptor{
			Product: track.Key.Product, Release: track.Key.Release, Arch: track.Key.Arch,
			Variant: track.Key.Variant, Branch: track.Key.Branch,
			CheckpointLevel: level,
		}
		update := selector.Select(cat, atLevel)
		if err := writeUpdate(CheckpointFallbackPath(opts.Dir, track.Key, level), update); err != nil {
			logError(log, err, "write checkpoint fallback")
		}
	}

	return nil
}

// canonicalCheckpointLevels returns the distinct positive
// introduces_checkpoint levels carried by non-skipped, non-shadow images
// in the track, in the order they first appear in the track.
func canonicalCheckpointLevels(images []model.Image) []int {
	seen := map[int]bool{}
	var levels []int
	for _, img := range images {
		if img.Skip || img.ShadowCheckpoint || img.IntroducesCheckpoint <= 0 {
			continue
		}
		if !seen[img.IntroducesCheckpoint] {
			seen[img.IntroducesCheckpoint] = true
			levels = append(levels, img.IntroducesCheckpoint)
		}
	}
	return levels
}

func writeUpdate(path string, update wire.Update) error {
	data, err := json.MarshalIndent(update, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal update for %s: %w", path, err)
	}
	return writeFileAtomic(path, data)
}

func logError(log *logrus.Logger, err error, msg string) {
	if log == nil || err == nil {
		return
	}
	log.WithError(err).Warn(msg)
}
