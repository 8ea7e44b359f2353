package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BuildID is a YYYYMMDD[.N] build identifier.
//
// The date component is basic ISO-8601; the optional increment lets two
// builds share a calendar date.
type BuildID struct {
	Date time.Time
	Incr int
}

// ParseBuildID parses a "YYYYMMDD" or "YYYYMMDD.N" string.
func ParseBuildID(text string) (BuildID, error) {
	fields := strings.Split(text, ".")
	if len(fields) > 2 {
		return BuildID{}, fmt.Errorf("buildid %q: expected YYYYMMDD[.N]", text)
	}

	date, err := time.Parse("20060102", fields[0])
	if err != nil {
		return BuildID{}, fmt.Errorf("buildid %q: invalid date: %w", text, err)
	}

	incr := 0
	if len(fields) == 2 {
		incr, err = strconv.Atoi(fields[1])
		if err != nil {
			return BuildID{}, fmt.Errorf("buildid %q: invalid increment: %w", text, err)
		}
		if incr < 0 {
			return BuildID{}, fmt.Errorf("buildid %q: increment must be >= 0", text)
		}
	}

	return BuildID{Date: date, Incr: incr}, nil
}

// Compare returns -1, 0, or 1 as b is less than, equal to, or greater than other.
func (b BuildID) Compare(other BuildID) int {
	if b.Date.Before(other.Date) {
		return -1
	}
	if b.Date.After(other.Date) {
		return 1
	}
	switch {
	case b.Incr < other.Incr:
		return -1
	case b.Incr > other.Incr:
		return 1
	default:
		return 0
	}
}

func (b BuildID) String() string {
	if b.Incr == 0 {
		return b.Date.Format("20060102")
	}
	return fmt.Sprintf("%s.%d", b.Date.Format("20060102"), b.Incr)
}
