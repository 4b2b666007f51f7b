// Package palette assigns chart colors to series labels.
package palette

import (
	"strconv"
	"unicode/utf16"
)

const (
	hashSeed   = 3412431
	hashRounds = 4
	roundSalt  = 123
)

// ColorForLabel returns a "#rrggbb" color derived only from label, so the
// same series keeps its color across charts and across sessions.
//
// The arithmetic mirrors the dashboard's browser implementation exactly
// (UTF-16 code units, 32-bit wraparound inside a round, no wraparound on the
// salt step, and the odd [2:8] slice of the signed hex string); colors in
// shared chart links depend on it.
func ColorForLabel(label string) string {
	units := utf16.Encode([]rune(label))

	hash := int64(hashSeed)
	for round := 0; round < hashRounds; round++ {
		for _, c := range units {
			hash = shl5(hash) - hash + int64(c)
			hash = int64(int32(hash))
		}
		hash = shl5(hash) - hash + roundSalt
	}

	s := strconv.FormatInt(hash, 16) + "0000000"
	return "#" + s[2:8]
}

// ColorsForLabels maps ColorForLabel over labels.
func ColorsForLabels(labels []string) []string {
	colors := make([]string, len(labels))
	for i, l := range labels {
		colors[i] = ColorForLabel(l)
	}
	return colors
}

// shl5 is a 32-bit left shift by five, wrapping like int32 arithmetic.
func shl5(h int64) int64 {
	return int64(int32(h) << 5)
}
