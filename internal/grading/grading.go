// Package grading compares submitted answers against expected values. All
// graders are total functions: missing or malformed input grades as incorrect,
// never as an error.
package grading

import "strings"

// Shape is the grading strategy for a question
type Shape int

const (
	ShapeFreeText Shape = iota
	ShapeShortAnswer
	ShapeChoice
)

// trailingPunctuation is the set stripped from the end of short answers
const trailingPunctuation = ".,;:!?…"

// NormalizeFreeText trims surrounding whitespace and lowercases. Internal
// whitespace is kept as typed.
func NormalizeFreeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeShortAnswer trims, lowercases, collapses internal whitespace runs
// to a single space, and strips one trailing run of sentence punctuation.
func NormalizeShortAnswer(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	s = strings.TrimRight(s, trailingPunctuation)
	return strings.TrimRight(s, " ")
}

// GradeFreeText reports whether the given answer matches the expected one
// after free-text normalization of both sides.
func GradeFreeText(given, expected string) bool {
	return NormalizeFreeText(given) == NormalizeFreeText(expected)
}

// GradeShortAnswer reports whether the given answer matches any entry of the
// accepted list. The same normalization is applied to both sides.
func GradeShortAnswer(given string, accepted []string) bool {
	normalized := NormalizeShortAnswer(given)
	if normalized == "" {
		return false
	}
	for _, a := range accepted {
		if normalized == NormalizeShortAnswer(a) {
			return true
		}
	}
	return false
}

// GradeChoice reports whether the selected option index matches the expected
// one. Negative indexes (no selection) grade as incorrect.
func GradeChoice(given, expected int) bool {
	return given >= 0 && given == expected
}

// GradeChoiceText reports whether the selected option's display text matches
// the correct text exactly. An empty selection grades as incorrect.
func GradeChoiceText(given, correct string) bool {
	return given != "" && given == correct
}
