package catalog

import "fmt"

// Policy is the server's allow-list configuration, grounded on
// imagepool.py:ImagePool's supported_products/releases/variants/archs.
// Releases must be presented pre-sorted; an unsorted list is rejected at
// construction, mirroring imagepool.py:validate_config.
type Policy struct {
	Products []string
	Releases []string
	Variants []string
	Branches []string
	Archs    []string

	EnableLegacyPaths  bool
	EnableMajorUpdates bool
}

// NewPolicy validates and wraps the allow-lists. Releases must be sorted
// ascending; an empty list for any mandatory axis is a Configuration
// error.
func NewPolicy(products, releases, variants, archs, branches []string, legacy, major bool) (Policy, error) {
	for name, list := range map[string][]string{
		"products": products,
		"releases": releases,
		"variants": variants,
		"archs":    archs,
	} {
		if len(list) == 0 {
			return Policy{}, fmt.Errorf("policy: %s allow-list must not be empty", name)
		}
	}
	if !sortedAscending(releases) {
		return Policy{}, fmt.Errorf("policy: releases allow-list must be sorted ascending")
	}
	return Policy{
		Products:           products,
		Releases:           releases,
		Variants:           variants,
		Branches:           branches,
		Archs:              archs,
		EnableLegacyPaths:  legacy,
		EnableMajorUpdates: major,
	}, nil
}

func sortedAscending(list []string) bool {
	for i := 1; i < len(list); i++ {
		if list[i-1] > list[i] {
			return false
		}
	}
	return true
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// ValidateAllowlists applies rule 2: product/release/arch/variant
// must be in the allow-lists, and branch — if present — must be too.
func (p Policy) ValidateAllowlists(product, release, arch, variant, branch string) error {
	if !contains(p.Products, product) {
		return fmt.Errorf("product %q is not in the allow-list", product)
	}
	if !contains(p.Releases, release) {
		return fmt.Errorf("release %q is not in the allow-list", release)
	}
	if !contains(p.Archs, arch) {
		return fmt.Errorf("arch %q is not in the allow-list", arch)
	}
	if !contains(p.Variants, variant) {
		return fmt.Errorf("variant %q is not in the allow-list", variant)
	}
	if branch != "" && !contains(p.Branches, branch) {
		return fmt.Errorf("branch %q is not in the allow-list", branch)
	}
	return nil
}

// NextRelease returns the release that follows release in the Policy's
// sorted Releases list (the smallest listed codename strictly greater than
// it), or "" if release is the last entry or is not in the list.
// Grounded on imagepool.py:_get_next_release.
func (p Policy) NextRelease(release string) string {
	idx := -1
	for i, r := range p.Releases {
		if r == release {
			idx = i
			break
		}
	}
	if idx == -1 || idx+1 >= len(p.Releases) {
		return ""
	}
	return p.Releases[idx+1]
}
