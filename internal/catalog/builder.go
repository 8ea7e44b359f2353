package catalog

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/collabora/atomupd-core/internal/diag"
	"github.com/collabora/atomupd-core/internal/model"
)

// Build ingests scanned manifests against policy, producing an immutable
// Catalog plus a diagnostics log of every discarded manifest.
// Ingestion errors are never fatal: a broken manifest is recorded and
// excluded, the build continues.
func Build(scanned []model.ScannedManifest, policy Policy, log *logrus.Logger) (*Catalog, diag.Log) {
	var diagnostics diag.Log

	byKey := map[model.TrackKey][]model.Image{}

	for _, sm := range scanned {
		img, rule, err := validateAndBuildImage(sm, policy)
		if err != nil {
			diagnostics.Discarded(sm.ManifestPath, rule, err.Error())
			if log != nil {
				log.WithField("manifest", sm.ManifestPath).WithField("rule", rule).WithError(err).Debug("discarding manifest")
			}
			continue
		}

		key := model.KeyOf(img.Manifest)
		byKey[key] = append(byKey[key], img)
	}

	tracks := make(map[model.TrackKey]*Track, len(byKey))
	for key, images := range byKey {
		// Manifest-path order first, so multiplicity enforcement has a
		// deterministic "first-seen" winner regardless of scan order.
		sort.Slice(images, func(i, j int) bool { return images[i].ManifestPath < images[j].ManifestPath })
		images = enforceMultiplicity(images, &diagnostics)

		sort.Slice(images, func(i, j int) bool { return model.Less(images[i], images[j]) })
		tracks[key] = &Track{Key: key, Images: images}
	}

	return &Catalog{tracks: tracks, policy: policy}, diagnostics
}

// validateAndBuildImage runs rules 1 through 5 in order and, on
// success, attaches the sibling-artifact paths found by the Scanner.
func validateAndBuildImage(sm model.ScannedManifest, policy Policy) (model.Image, string, error) {
	if err := ValidateSchema(sm.RawJSON); err != nil {
		return model.Image{}, "schema", err
	}

	arch, err := model.CheckMandatory(sm.Raw)
	if err != nil {
		return model.Image{}, "mandatory-fields", err
	}

	if err := policy.ValidateAllowlists(sm.Raw.Product, sm.Raw.Release, arch, sm.Raw.Variant, sm.Raw.Branch); err != nil {
		return model.Image{}, "allow-list", err
	}

	manifest, err := model.ParseManifest(sm.Raw, arch)
	if err != nil {
		return model.Image{}, "field-parse", err
	}

	return model.Image{
		Manifest:       manifest,
		ManifestPath:   sm.ManifestPath,
		BundlePath:     sm.BundlePath,
		ChunkStorePath: sm.ChunkStorePath,
		UpdatePath:     model.BuildUpdatePath(sm.RelDir, sm.Stem),
	}, "", nil
}
