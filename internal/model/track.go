package model

import "fmt"

// TrackKey identifies the equivalence class of images sharing
// (product, release, arch, variant, branch).
type TrackKey struct {
	Product string
	Release string
	Arch    string
	Variant string
	Branch  string // "" for legacy, branch-less images
}

func (k TrackKey) String() string {
	branch := k.Branch
	if branch == "" {
		branch = "-"
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", k.Product, k.Release, k.Arch, k.Variant, branch)
}

// KeyOf returns the track key for an image.
func KeyOf(m Manifest) TrackKey {
	return TrackKey{
		Product: m.Product,
		Release: m.Release,
		Arch:    m.Arch,
		Variant: m.Variant,
		Branch:  m.Branch,
	}
}
