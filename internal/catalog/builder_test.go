package catalog

import (
	"testing"

	"github.com/collabora/atomupd-core/internal/model"
)

func testPolicy(t *testing.T) Policy {
	t.Helper()
	policy, err := NewPolicy(
		[]string{"steamos"}, []string{"holo"}, []string{"steamdeck"}, []string{"amd64"}, []string{"stable"},
		false, false,
	)
	if err != nil {
		t.Fatalf("NewPolicy(): %v", err)
	}
	return policy
}

func validManifestJSON(version, buildid string) string {
	return `{
		"product": "steamos",
		"release": "holo",
		"variant": "steamdeck",
		"branch": "stable",
		"arch": "amd64",
		"version": "` + version + `",
		"buildid": "` + buildid + `"
	}`
}

func scanned(t *testing.T, path, rawJSON string) model.ScannedManifest {
	t.Helper()
	sm := model.ScannedManifest{
		RawJSON:      []byte(rawJSON),
		ManifestPath: path,
		BundlePath:   path + ".raucb",
	}
	sm.Raw = model.RawManifest{
		Product: "steamos", Release: "holo", Variant: "steamdeck",
		Branch: "stable", Arch: "amd64",
	}
	return sm
}

func TestBuildAcceptsValidManifest(t *testing.T) {
	sm := scanned(t, "/pool/a.manifest.json", validManifestJSON("3.1.0", "20220401.1"))
	sm.Raw.Version = "3.1.0"
	sm.Raw.BuildID = "20220401.1"

	cat, diagnostics := Build([]model.ScannedManifest{sm}, testPolicy(t), nil)
	if diagnostics.Len() != 0 {
		t.Fatalf("diagnostics.Len() = %d, want 0: %v", diagnostics.Len(), diagnostics.Records())
	}

	key := model.TrackKey{Product: "steamos", Release: "holo", Arch: "amd64", Variant: "steamdeck", Branch: "stable"}
	track := cat.Track(key)
	if track == nil || len(track.Images) != 1 {
		t.Fatalf("Track(%v) = %v, want 1 image", key, track)
	}
}

func TestBuildDiscardsSchemaViolation(t *testing.T) {
	sm := scanned(t, "/pool/a.manifest.json", `{"product": "steamos"}`)

	cat, diagnostics := Build([]model.ScannedManifest{sm}, testPolicy(t), nil)
	if diagnostics.Len() != 1 {
		t.Fatalf("diagnostics.Len() = %d, want 1", diagnostics.Len())
	}
	if diagnostics.Records()[0].Rule != "schema" {
		t.Fatalf("rule = %q, want schema", diagnostics.Records()[0].Rule)
	}
	if cat.HasTrack(model.TrackKey{Product: "steamos", Release: "holo", Arch: "amd64", Variant: "steamdeck", Branch: "stable"}) {
		t.Fatalf("catalog has a track for a fully-discarded manifest")
	}
}

func TestBuildDiscardsAllowlistViolation(t *testing.T) {
	sm := scanned(t, "/pool/a.manifest.json", validManifestJSON("3.1.0", "20220401.1"))
	sm.Raw.Version = "3.1.0"
	sm.Raw.BuildID = "20220401.1"
	sm.Raw.Variant = "unknown-variant"

	_, diagnostics := Build([]model.ScannedManifest{sm}, testPolicy(t), nil)
	if diagnostics.Len() != 1 {
		t.Fatalf("diagnostics.Len() = %d, want 1", diagnostics.Len())
	}
	if diagnostics.Records()[0].Rule != "allow-list" {
		t.Fatalf("rule = %q, want allow-list", diagnostics.Records()[0].Rule)
	}
}

func TestBuildEnforcesMultiplicityAcrossManifests(t *testing.T) {
	first := scanned(t, "/pool/a.manifest.json", validManifestJSON("3.1.0", "20220401.1"))
	first.Raw.Version, first.Raw.BuildID = "3.1.0", "20220401.1"
	first.Raw.IntroducesCheckpoint = 1

	second := scanned(t, "/pool/b.manifest.json", validManifestJSON("3.1.0", "20220402.1"))
	second.Raw.Version, second.Raw.BuildID = "3.1.0", "20220402.1"
	second.Raw.IntroducesCheckpoint = 1

	cat, diagnostics := Build([]model.ScannedManifest{first, second}, testPolicy(t), nil)
	if diagnostics.Len() != 1 {
		t.Fatalf("diagnostics.Len() = %d, want 1", diagnostics.Len())
	}

	key := model.TrackKey{Product: "steamos", Release: "holo", Arch: "amd64", Variant: "steamdeck", Branch: "stable"}
	track := cat.Track(key)
	if track == nil || len(track.Images) != 1 {
		t.Fatalf("Track(%v) = %v, want 1 surviving image", key, track)
	}
	if track.Images[0].ManifestPath != "/pool/a.manifest.json" {
		t.Fatalf("surviving image = %q, want the first-seen manifest", track.Images[0].ManifestPath)
	}
}
