package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/collabora/atomupd-core/internal/catalog"
	"github.com/collabora/atomupd-core/internal/model"
	"github.com/collabora/atomupd-core/pkg/wire"
	"gopkg.in/ini.v1"
)

func buildTestImage(t *testing.T, version, buildid string) model.Image {
	t.Helper()
	v, err := model.ParseVersion(version)
	if err != nil {
		t.Fatalf("ParseVersion(%q): %v", version, err)
	}
	b, err := model.ParseBuildID(buildid)
	if err != nil {
		t.Fatalf("ParseBuildID(%q): %v", buildid, err)
	}
	return model.Image{
		Manifest: model.Manifest{
			Product: "steamos", Release: "holo", Variant: "steamdeck",
			Branch: "stable", Arch: "amd64", Version: v, BuildID: b,
		},
		ManifestPath: version + "_" + buildid,
		BundlePath:   version + "_" + buildid + ".raucb",
		UpdatePath:   version + "_" + buildid + ".raucb",
	}
}

func TestExportWritesCanonicalAndFallbackFiles(t *testing.T) {
	images := []model.Image{
		buildTestImage(t, "3.1.0", "20220401.1"),
		buildTestImage(t, "3.3.0", "20220423.1"),
	}
	policy, err := catalog.NewPolicy(
		[]string{"steamos"}, []string{"holo"}, []string{"steamdeck"}, []string{"amd64"}, []string{"stable"},
		false, false,
	)
	if err != nil {
		t.Fatalf("NewPolicy(): %v", err)
	}
	cat := catalog.NewFromTracks(policy, images)

	dir := t.TempDir()
	if err := Export(cat, Options{Dir: dir}, nil); err != nil {
		t.Fatalf("Export(): %v", err)
	}

	key := model.TrackKey{Product: "steamos", Release: "holo", Arch: "amd64", Variant: "steamdeck", Branch: "stable"}

	canonical := CanonicalPath(dir, key, "3.1.0", "20220401.1")
	var update wire.Update
	readJSON(t, canonical, &update)
	if update.Minor == nil || len(update.Minor.Candidates) != 1 {
		t.Fatalf("canonical file for oldest image: Minor = %+v, want one candidate", update.Minor)
	}
	if update.Minor.Candidates[0].Image.Version != "3.3.0" {
		t.Fatalf("candidate version = %q, want 3.3.0", update.Minor.Candidates[0].Image.Version)
	}

	latestCanonical := CanonicalPath(dir, key, "3.3.0", "20220423.1")
	var latestUpdate wire.Update
	readJSON(t, latestCanonical, &latestUpdate)
	if !latestUpdate.Empty() {
		t.Fatalf("canonical file for latest image = %+v, want empty", latestUpdate)
	}

	branchFallback := BranchFallbackPath(dir, key)
	var fallbackUpdate wire.Update
	readJSON(t, branchFallback, &fallbackUpdate)
	if fallbackUpdate.Minor == nil || len(fallbackUpdate.Minor.Candidates) != 1 {
		t.Fatalf("branch fallback: Minor = %+v, want one candidate", fallbackUpdate.Minor)
	}
}

func TestExportOmitsLegacyPathsWhenDisabled(t *testing.T) {
	images := []model.Image{buildTestImage(t, "3.1.0", "20220401.1")}
	policy, err := catalog.NewPolicy(
		[]string{"steamos"}, []string{"holo"}, []string{"steamdeck"}, []string{"amd64"}, []string{"stable"},
		false, false,
	)
	if err != nil {
		t.Fatalf("NewPolicy(): %v", err)
	}
	cat := catalog.NewFromTracks(policy, images)

	dir := t.TempDir()
	if err := Export(cat, Options{Dir: dir}, nil); err != nil {
		t.Fatalf("Export(): %v", err)
	}

	key := model.TrackKey{Product: "steamos", Release: "holo", Arch: "amd64", Variant: "steamdeck", Branch: "stable"}
	legacy := LegacyCanonicalPath(dir, key, "3.1.0", "20220401.1")
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Fatalf("legacy export file exists at %s, want absent when EnableLegacyPaths is false", legacy)
	}
}

func TestExportWritesRemoteInfo(t *testing.T) {
	images := []model.Image{buildTestImage(t, "3.1.0", "20220401.1")}
	policy, err := catalog.NewPolicy(
		[]string{"steamos"}, []string{"holo"}, []string{"steamdeck"}, []string{"amd64"}, []string{"stable"},
		false, false,
	)
	if err != nil {
		t.Fatalf("NewPolicy(): %v", err)
	}
	cat := catalog.NewFromTracks(policy, images)

	dir := t.TempDir()
	opts := Options{Dir: dir, EmitRemoteInfo: true, RemoteInfoVariants: []string{"steamdeck"}, RemoteInfoBranches: []string{"stable", "beta"}}
	if err := Export(cat, opts, nil); err != nil {
		t.Fatalf("Export(): %v", err)
	}

	path := RemoteInfoPath(dir, "holo", "steamos", "amd64", "steamdeck")
	cfg, err := ini.Load(path)
	if err != nil {
		t.Fatalf("ini.Load(%s): %v", path, err)
	}
	if got := cfg.Section("Server").Key("Variants").String(); got != "steamdeck" {
		t.Fatalf("Variants = %q, want steamdeck", got)
	}
	if got := cfg.Section("Server").Key("Branches").String(); got != "stable;beta" {
		t.Fatalf("Branches = %q, want stable;beta", got)
	}
}

func readJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Unmarshal(%s): %v", path, err)
	}
}

func TestWriteFileAtomicCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "c.json")
	if err := writeFileAtomic(path, []byte("{}")); err != nil {
		t.Fatalf("writeFileAtomic(): %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("content = %q, want {}", data)
	}
}
