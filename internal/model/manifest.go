package model

import "fmt"

// RawManifest is the direct JSON decoding of a *.manifest.json file, before
// any policy validation. Fields keep their wire names and wire types so a
// type-mismatched value (e.g. a numeric "version") fails to decode here
// rather than silently coercing.
type RawManifest struct {
	Product             string `json:"product"`
	Release             string `json:"release"`
	Variant             string `json:"variant"`
	Branch              string `json:"branch,omitempty"`
	Arch                string `json:"arch"`
	Version             string `json:"version"`
	BuildID             string `json:"buildid"`
	IntroducesCheckpoint int    `json:"introduces_checkpoint,omitempty"`
	RequiresCheckpoint   int    `json:"requires_checkpoint,omitempty"`
	ShadowCheckpoint     bool   `json:"shadow_checkpoint,omitempty"`
	Skip                 bool   `json:"skip,omitempty"`
	EstimatedSize        int64  `json:"estimated_size,omitempty"`
	DefaultUpdateBranch  string `json:"default_update_branch,omitempty"`
}

// Manifest is a RawManifest after every validation rule has
// passed: mandatory fields are non-empty, version and buildid parse, and
// the checkpoint integers are sane. It does not yet know about the server
// policy's allow-lists or about multiplicity across a track; that's the
// Catalog Builder's job.
type Manifest struct {
	Product             string
	Release             string
	Variant             string
	Branch              string // "" means absent (legacy image)
	Arch                string
	Version             Version
	BuildID             BuildID
	IntroducesCheckpoint int
	RequiresCheckpoint   int
	ShadowCheckpoint     bool
	Skip                 bool
	EstimatedSize        int64
	DefaultUpdateBranch  string
}

// IsCheckpoint reports whether this manifest introduces a checkpoint.
func (m Manifest) IsCheckpoint() bool {
	return m.IntroducesCheckpoint > 0
}

// IsStable reports whether the image has a stable (non-prerelease) version.
// Snapshots are never stable.
func (m Manifest) IsStable() bool {
	return m.Version.IsStable()
}

// UniqueName generates a string that is unique for this image, grounded on
// steamosatomupd/image.py:get_unique_name.
func (m Manifest) UniqueName() string {
	return fmt.Sprintf("%s_%s_%s", m.Version.String(), m.Release, m.BuildID.String())
}

// NormalizeArch rewrites legacy architecture tokens, grounded on
// steamosatomupd/image.py:Image.from_values.
func NormalizeArch(arch string) string {
	if arch == "x86_64" {
		return "amd64"
	}
	return arch
}

// CheckMandatory applies rule 1: the six mandatory fields must
// be present and non-empty. It returns the normalized architecture token
// so the caller can run the rule 2 allow-list check before the more
// expensive rule 3/4 parsing.
func CheckMandatory(raw RawManifest) (arch string, err error) {
	arch = NormalizeArch(raw.Arch)

	mandatory := map[string]string{
		"product": raw.Product,
		"release": raw.Release,
		"variant": raw.Variant,
		"arch":    arch,
		"version": raw.Version,
		"buildid": raw.BuildID,
	}
	for _, field := range []string{"product", "release", "variant", "arch", "version", "buildid"} {
		if mandatory[field] == "" {
			return arch, fmt.Errorf("missing or empty mandatory field %q", field)
		}
	}
	return arch, nil
}

// ParseManifest applies rules 3, 4, 5: version and buildid must
// parse, and the checkpoint integers must be sane. It assumes CheckMandatory
// and the rule 2 allow-list check have already passed; arch is the
// normalized token CheckMandatory returned.
func ParseManifest(raw RawManifest, arch string) (Manifest, error) {
	version, err := ParseVersion(raw.Version)
	if err != nil {
		return Manifest{}, err
	}

	buildid, err := ParseBuildID(raw.BuildID)
	if err != nil {
		return Manifest{}, err
	}

	if raw.IntroducesCheckpoint < 0 {
		return Manifest{}, fmt.Errorf("introduces_checkpoint must be >= 0")
	}
	if raw.RequiresCheckpoint < 0 {
		return Manifest{}, fmt.Errorf("requires_checkpoint must be >= 0")
	}
	if raw.ShadowCheckpoint && raw.Skip {
		return Manifest{}, fmt.Errorf("a shadow checkpoint must have skip = false")
	}

	return Manifest{
		Product:              raw.Product,
		Release:               raw.Release,
		Variant:               raw.Variant,
		Branch:                raw.Branch,
		Arch:                  arch,
		Version:               version,
		BuildID:               buildid,
		IntroducesCheckpoint:  raw.IntroducesCheckpoint,
		RequiresCheckpoint:    raw.RequiresCheckpoint,
		ShadowCheckpoint:      raw.ShadowCheckpoint,
		Skip:                  raw.Skip,
		EstimatedSize:         raw.EstimatedSize,
		DefaultUpdateBranch:   raw.DefaultUpdateBranch,
	}, nil
}

// ValidateRaw runs the full rule 1/3/4/5 sequence in one call,
// for callers (tests, ad-hoc tooling) that don't need to interleave the
// Policy's rule 2 allow-list check.
func ValidateRaw(raw RawManifest) (Manifest, error) {
	arch, err := CheckMandatory(raw)
	if err != nil {
		return Manifest{}, err
	}
	return ParseManifest(raw, arch)
}
