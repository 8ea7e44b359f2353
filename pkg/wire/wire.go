// Package wire is the JSON response format returned by the Selector and
// written by the Static Exporter. It is deliberately free of any
// dependency on the catalog or selector internals so a transport layer —
// out of scope for this repository — can depend on it alone.
//
// The "candidates, sorted" shape models an update path, grounded on
// steamosatomupd/update.py.
package wire

// Image is the manifest subset returned to the client alongside a
// candidate: every wire field from except the internal `skip`
// flag, which callers never need to see.
type Image struct {
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
	EstimatedSize        int64  `json:"estimated_size,omitempty"`
	DefaultUpdateBranch  string `json:"default_update_branch,omitempty"`
}

// Candidate is one update an image should install, grounded on
// steamosatomupd/update.py:UpdateCandidate.
type Candidate struct {
	Image                Image  `json:"image"`
	UpdatePath           string `json:"update_path"`
	EstimatedSize        int64  `json:"estimated_size"`
	RequiresCheckpoint   int    `json:"requires_checkpoint,omitempty"`
	IntroducesCheckpoint int    `json:"introduces_checkpoint,omitempty"`
	ShadowCheckpoint     bool   `json:"shadow_checkpoint,omitempty"`
}

// Path is a sorted list of candidates for one release, grounded on
// steamosatomupd/update.py:UpdatePath.
type Path struct {
	Release    string      `json:"release"`
	Candidates []Candidate `json:"candidates"`
}

// Update is the top-level response: an optional minor path
// (within the client's release) and an optional major path (in the next
// release). Both nil marshals to "{}".
type Update struct {
	Minor *Path `json:"minor,omitempty"`
	Major *Path `json:"major,omitempty"`
}

// Empty reports whether this Update has neither a minor nor a major path.
func (u Update) Empty() bool {
	return u.Minor == nil && u.Major == nil
}
