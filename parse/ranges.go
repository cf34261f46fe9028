package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Range is an inclusive rune range [Lo, Hi] supplied to Switch.
type Range struct {
	Lo, Hi rune
}

// runeRange is the internal, always-sorted-and-merged representation
// stored in a Switch record.
type runeRange = Range

// R is a convenience constructor for a single-rune range.
func R(r rune) Range { return Range{Lo: r, Hi: r} }

// minRune and maxRune bound the rune space a Switch's ranges are merged
// and, for Invert, complemented within.
const (
	minRune = 0
	maxRune = utf8.MaxRune
)

// mergeRanges sorts ranges by lower bound and merges adjacent/overlapping
// ones, using golang.org/x/exp/slices for the generic sort.
func mergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	cp := make([]Range, len(ranges))
	copy(cp, ranges)
	slices.SortFunc(cp, func(a, b Range) bool {
		if a.Lo != b.Lo {
			return a.Lo < b.Lo
		}
		return a.Hi < b.Hi
	})
	merged := cp[:1]
	for _, r := range cp[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	out := make([]Range, len(merged))
	copy(out, merged)
	return out
}

// Invert complements ranges over [minRune, maxRune]. IsAllInclusive(ranges)
// must be checked by the caller first — inverting the all-inclusive range
// is a malformed-grammar condition, not represented by
// this function (it would simply produce an empty set).
func Invert(ranges []Range) []Range {
	merged := mergeRanges(ranges)
	var out []Range
	cursor := minRune
	for _, r := range merged {
		if r.Lo > cursor {
			out = append(out, Range{Lo: cursor, Hi: r.Lo - 1})
		}
		if r.Hi >= cursor {
			cursor = r.Hi + 1
		}
		if cursor > maxRune {
			break
		}
	}
	if cursor <= maxRune {
		out = append(out, Range{Lo: cursor, Hi: maxRune})
	}
	return out
}

// IsAllInclusive reports whether ranges, once merged, cover the entire
// rune space -- inverting such a Switch is rejected at grammar build time.
func IsAllInclusive(ranges []Range) bool {
	merged := mergeRanges(ranges)
	if len(merged) != 1 {
		return false
	}
	return merged[0].Lo <= minRune && merged[0].Hi >= maxRune
}

func (r Range) contains(ch rune) bool {
	return ch >= r.Lo && ch <= r.Hi
}

func switchString(rc *rec) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range rc.ranges {
		if i > 0 {
			b.WriteByte(' ')
		}
		if r.Lo == r.Hi {
			fmt.Fprintf(&b, "%q", r.Lo)
		} else {
			fmt.Fprintf(&b, "%q-%q", r.Lo, r.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}
