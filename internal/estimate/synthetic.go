package estimate

import "unicode/utf16"

const (
	syntheticSeed   uint32 = 5381
	syntheticRange  uint32 = 9901
	syntheticOffset        = 100
)

// SyntheticPages derives a stable page count from the domain string alone:
// DJB2 over the UTF-16 code units, reduced into 100..10000 and clamped into
// [minPages, maxPages]. Equal strings always give equal counts.
func SyntheticPages(name string, minPages, maxPages int) int {
	h := syntheticSeed
	for _, c := range utf16.Encode([]rune(name)) {
		h = ((h << 5) + h) ^ uint32(c)
	}
	return clamp(int(h%syntheticRange)+syntheticOffset, minPages, maxPages)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
