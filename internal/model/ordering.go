package model

// Compare implements the total order over Images within a track. It
// returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func Compare(a, b Image) int {
	aSnap, bSnap := a.Version.IsSnapshot(), b.Version.IsSnapshot()

	switch {
	case !aSnap && !bSnap:
		// Rule 1: both versioned.
		if c := a.Version.Compare(b.Version); c != 0 {
			return c
		}
		if c := a.BuildID.Compare(b.BuildID); c != 0 {
			return c
		}
		return tiebreakByPath(a, b)

	case aSnap && bSnap:
		// Rule 2: both snapshots, compare release then buildid.
		if a.Release != b.Release {
			if a.Release < b.Release {
				return -1
			}
			return 1
		}
		if c := a.BuildID.Compare(b.BuildID); c != 0 {
			return c
		}
		return tiebreakByPath(a, b)

	default:
		// Rule 3: one snapshot, one versioned. The snapshot is greater iff
		// its buildid date is strictly greater than the versioned image's.
		snap, ver := a, b
		sign := 1
		if bSnap {
			snap, ver = b, a
			sign = -1
		}
		switch {
		case snap.BuildID.Date.After(ver.BuildID.Date):
			return sign
		default:
			return -sign
		}
	}
}

func tiebreakByPath(a, b Image) int {
	switch {
	case a.ManifestPath < b.ManifestPath:
		return -1
	case a.ManifestPath > b.ManifestPath:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b under Compare.
func Less(a, b Image) bool {
	return Compare(a, b) < 0
}
