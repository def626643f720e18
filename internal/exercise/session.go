package exercise

import (
	"strconv"

	"clozedrill/internal/gaptext"
	"clozedrill/internal/grading"
	"clozedrill/internal/models"
)

// Content is everything a session needs to present and grade one exercise.
// Answers holds the expected text per gap (gap N reads answers[N-1]); choice
// exercises use AnswerIndexes and Options instead.
type Content struct {
	ID            string
	Text          string
	Answers       []string
	AnswerIndexes []int
	Options       [][]string
	WordTypes     []string
	BaseWords     []string
	PosHints      []string
	Explanations  []string
}

// Result is the outcome of grading one submission
type Result struct {
	CorrectCount int                   `json:"correctCount"`
	Total        int                   `json:"total"`
	Band         models.ScoreBand      `json:"band"`
	Wrong        []models.WrongGap     `json:"wrong"`
	Graded       []models.GradedAnswer `json:"graded"`
}

// Session is the state machine for one active exercise. It starts
// unsubmitted, grades exactly once, and then stays locked: repeated submits
// return the first result unchanged.
type Session struct {
	content  Content
	mode     models.Mode
	segments []gaptext.Segment
	result   *Result
}

// NewSession builds a session for the given content and mode. Starting is a
// hard reset, so callers reuse this for "retry" by constructing a fresh one
// or calling Restart.
func NewSession(content Content, mode models.Mode) *Session {
	s := &Session{}
	s.Start(content, mode)
	return s
}

// Start resets the session to unsubmitted and tokenizes the template. Valid
// from any state.
func (s *Session) Start(content Content, mode models.Mode) {
	s.content = content
	s.mode = mode
	s.segments = gaptext.Parse(content.Text)
	s.result = nil
}

// Restart re-enters the unsubmitted state with the same content and mode
func (s *Session) Restart() {
	s.Start(s.content, s.mode)
}

// Graded reports whether the session has already been submitted
func (s *Session) Graded() bool {
	return s.result != nil
}

// Mode returns the declared exercise mode
func (s *Session) Mode() models.Mode {
	return s.mode
}

// Content returns the active exercise content
func (s *Session) Content() Content {
	return s.content
}

// Segments returns the parsed template segments in order
func (s *Session) Segments() []gaptext.Segment {
	return s.segments
}

// Total returns the number of gaps in the active exercise
func (s *Session) Total() int {
	return gaptext.GapCount(s.segments)
}

// Submit grades the responses, one per gap in appearance order, and locks the
// session. Submitting an already-graded session returns the prior result.
func (s *Session) Submit(responses []string) Result {
	if s.result != nil {
		return *s.result
	}

	result := Result{Total: s.Total()}

	i := 0
	for _, segment := range s.segments {
		if !segment.IsGap {
			continue
		}

		given := ""
		if i < len(responses) {
			given = responses[i]
		}
		i++

		graded := s.gradeGap(segment.Ordinal, given)
		result.Graded = append(result.Graded, graded)
		if graded.IsCorrect {
			result.CorrectCount++
			continue
		}
		result.Wrong = append(result.Wrong, models.WrongGap{
			Ordinal:     segment.Ordinal,
			Expected:    graded.Expected,
			Explanation: s.explanationFor(segment.Ordinal),
		})
	}

	result.Band = models.BandFor(result.CorrectCount, result.Total)
	s.result = &result
	return result
}

// gradeGap grades a single gap according to the session mode. A gap ordinal
// with no matching answer grades against an empty expected value rather than
// faulting.
func (s *Session) gradeGap(ordinal int, given string) models.GradedAnswer {
	idx := ordinal - 1

	if s.mode == models.ModeMCQ {
		expectedIdx := -1
		if idx >= 0 && idx < len(s.content.AnswerIndexes) {
			expectedIdx = s.content.AnswerIndexes[idx]
		}
		givenIdx, err := strconv.Atoi(grading.NormalizeFreeText(given))
		correct := err == nil && expectedIdx >= 0 && grading.GradeChoice(givenIdx, expectedIdx)
		return models.GradedAnswer{
			Given:           given,
			NormalizedGiven: grading.NormalizeFreeText(given),
			Expected:        s.optionText(idx, expectedIdx),
			IsCorrect:       correct,
		}
	}

	expected := ""
	if idx >= 0 && idx < len(s.content.Answers) {
		expected = s.content.Answers[idx]
	}

	var correct bool
	if s.mode == models.ModeShortAnswer {
		correct = grading.GradeShortAnswer(given, []string{expected})
	} else {
		correct = expected != "" && grading.GradeFreeText(given, expected)
	}

	return models.GradedAnswer{
		Given:           given,
		NormalizedGiven: grading.NormalizeFreeText(given),
		Expected:        expected,
		IsCorrect:       correct,
	}
}

// optionText resolves the display text of an expected option for feedback
func (s *Session) optionText(gapIdx, optionIdx int) string {
	if gapIdx < 0 || gapIdx >= len(s.content.Options) || optionIdx < 0 {
		return ""
	}
	options := s.content.Options[gapIdx]
	if optionIdx >= len(options) {
		return ""
	}
	return options[optionIdx]
}

func (s *Session) explanationFor(ordinal int) string {
	idx := ordinal - 1
	if idx < 0 || idx >= len(s.content.Explanations) {
		return ""
	}
	return s.content.Explanations[idx]
}
