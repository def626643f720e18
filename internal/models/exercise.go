package models

// Mode identifies how an exercise is presented and graded
type Mode string

const (
	ModePractice     Mode = "practice"
	ModeGuidedLetter Mode = "guided-letter"
	ModeGuidedType   Mode = "guided-type"
	ModeMCQ          Mode = "mcq"
	ModeShortAnswer  Mode = "short"
)

// ScoreBand classifies a score for display purposes. It is presentation only
// and is independent of the level-unlock pass threshold.
type ScoreBand string

const (
	BandGood ScoreBand = "good"
	BandOK   ScoreBand = "ok"
	BandLow  ScoreBand = "low"
)

// BandFor classifies a score: perfect is "good", at most two misses is "ok",
// anything worse is "low".
func BandFor(correct, total int) ScoreBand {
	switch {
	case correct == total:
		return BandGood
	case total-correct <= 2:
		return BandOK
	default:
		return BandLow
	}
}

// WrongGap describes one missed gap in a graded exercise
type WrongGap struct {
	Ordinal     int    `json:"ordinal"`
	Expected    string `json:"expected"`
	Explanation string `json:"explanation,omitempty"`
}

// GradedAnswer is the per-gap outcome of a submission
type GradedAnswer struct {
	Given           string `json:"given"`
	NormalizedGiven string `json:"normalizedGiven"`
	Expected        string `json:"expected"`
	IsCorrect       bool   `json:"isCorrect"`
}
