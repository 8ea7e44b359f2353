package model

// ClientDescriptor is the input to the Selector: the image a client
// reports running, plus the branch it wishes to track.
type ClientDescriptor struct {
	Product string
	Release string
	Arch    string
	Variant string
	Branch  string

	Version string // "snapshot" or a semver string
	BuildID string

	// CheckpointLevel is supplied by an unknown client that knows its own
	// checkpoint level even though its exact image isn't in the catalog.
	// Zero or negative means "not supplied": such a client is treated as
	// being at level 0.
	CheckpointLevel int
}

// TrackKey returns the track this descriptor names.
func (c ClientDescriptor) TrackKey() TrackKey {
	return TrackKey{
		Product: c.Product,
		Release: c.Release,
		Arch:    c.Arch,
		Variant: c.Variant,
		Branch:  c.Branch,
	}
}
