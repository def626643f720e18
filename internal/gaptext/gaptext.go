// Package gaptext parses exercise templates containing positional gap markers
// of the form "(N)", where N is a 1-based gap ordinal.
package gaptext

import (
	"regexp"
	"strconv"
)

var gapPattern = regexp.MustCompile(`\((\d+)\)`)

// Segment is one piece of a parsed template: either literal text or a
// reference to a numbered gap.
type Segment struct {
	Literal string
	Ordinal int
	IsGap   bool
}

// Parse splits a template into an ordered sequence of literal and gap
// segments. A literal segment is emitted before every gap and after the last
// one, even when empty, so a template with k gaps always yields 2k+1 segments.
// A template with no markers yields a single literal segment. Parse is pure;
// repeated calls on the same input return identical results.
func Parse(template string) []Segment {
	matches := gapPattern.FindAllStringSubmatchIndex(template, -1)
	segments := make([]Segment, 0, 2*len(matches)+1)

	last := 0
	for _, m := range matches {
		segments = append(segments, Segment{Literal: template[last:m[0]]})

		ordinal, err := strconv.Atoi(template[m[2]:m[3]])
		if err != nil {
			// Unreachable given the pattern, but never emit a bogus gap
			continue
		}
		segments = append(segments, Segment{Ordinal: ordinal, IsGap: true})
		last = m[1]
	}
	segments = append(segments, Segment{Literal: template[last:]})

	return segments
}

// Ordinals returns the gap ordinals of a parsed template in appearance order
func Ordinals(segments []Segment) []int {
	var ordinals []int
	for _, s := range segments {
		if s.IsGap {
			ordinals = append(ordinals, s.Ordinal)
		}
	}
	return ordinals
}

// GapCount returns the number of gap segments
func GapCount(segments []Segment) int {
	count := 0
	for _, s := range segments {
		if s.IsGap {
			count++
		}
	}
	return count
}

// Strip returns the template with every gap marker removed
func Strip(template string) string {
	return gapPattern.ReplaceAllString(template, "")
}
