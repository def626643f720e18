package models

import "time"

// AttemptKind identifies the type of exercise an attempt record came from
type AttemptKind string

const (
	KindGuided    AttemptKind = "guided"
	KindMCQ       AttemptKind = "mcq"
	KindFull      AttemptKind = "full"
	KindPrefix    AttemptKind = "prefix"
	KindSuffix    AttemptKind = "suffix"
	KindPos       AttemptKind = "pos"
	KindLevelTest AttemptKind = "level-test"
	KindCloze     AttemptKind = "cloze"
	KindCategory  AttemptKind = "category"
)

// AttemptRecord is one logged outcome of a completed exercise. Records are
// append-only; the store trims the oldest entries past its capacity bound.
// The date is stored as unix milliseconds to stay compatible with logs
// persisted by earlier versions of the app.
type AttemptRecord struct {
	Kind  AttemptKind `json:"type"`
	ID    string      `json:"id"`
	Score int         `json:"score"`
	Total int         `json:"total"`
	Date  int64       `json:"date"`
}

// Time returns the record date as a time.Time
func (r AttemptRecord) Time() time.Time {
	return time.UnixMilli(r.Date)
}

// Percent returns the record score as a rounded percentage, 0 for an empty total
func (r AttemptRecord) Percent() int {
	return PercentOf(r.Score, r.Total)
}

// PercentOf computes round(100 * part / whole), reporting 0 when whole is zero
func PercentOf(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// ProgressSummary aggregates the attempt log into headline statistics
type ProgressSummary struct {
	TotalCorrect    int `json:"totalCorrect"`
	TotalQuestions  int `json:"totalQuestions"`
	AccuracyPercent int `json:"accuracyPercent"`
	AttemptCount    int `json:"attemptCount"`
}

// SeriesPoint is one bucket of the recent-history chart series
type SeriesPoint struct {
	Kind    AttemptKind `json:"type"`
	ID      string      `json:"id"`
	Score   int         `json:"score"`
	Total   int         `json:"total"`
	Percent int         `json:"percent"`
	Band    ScoreBand   `json:"band"`
}

// SeriesBandFor classifies a chart bucket: 80% and up is "good", under 50% is
// "low", everything between is neutral (empty band).
func SeriesBandFor(percent int) ScoreBand {
	switch {
	case percent >= 80:
		return BandGood
	case percent < 50:
		return BandLow
	default:
		return ""
	}
}
