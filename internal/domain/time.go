package domain

import "time"

// Supercell timestamps look like 20200101T000000.000Z, occasionally without
// the millisecond part.
var gameTimeLayouts = []string{
	"20060102T150405.000Z",
	"20060102T150405Z",
}

// ParseGameTime returns the zero time when the string does not match any
// known layout.
func ParseGameTime(s string) time.Time {
	for _, layout := range gameTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// FirstGameTime parses the first candidate that yields a usable timestamp.
func FirstGameTime(candidates ...string) time.Time {
	for _, s := range candidates {
		if t := ParseGameTime(s); !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}
