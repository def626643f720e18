// Package quizflow implements the category drill flow: intro pages, then a
// multiple-choice quiz, then a short-answer quiz, then an optional question
// bank served in shuffled batches. One Flow is instantiated per category
// document, replacing per-category copies of the same logic.
package quizflow

import (
	"errors"
	"math/rand"

	"clozedrill/internal/grading"
	"clozedrill/internal/models"
)

// Stage identifies where a learner is within a category flow
type Stage string

const (
	StageIntro     Stage = "intro"
	StageMCQuiz    Stage = "mc-quiz"
	StageShortQuiz Stage = "short-quiz"
	StageOptional  Stage = "optional"
)

// ErrWrongStage is returned when a submission does not match the current stage
var ErrWrongStage = errors.New("submission does not match the current stage")

const defaultBatchSize = 5

// StageResult is the graded outcome of one quiz stage
type StageResult struct {
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
	Band    models.ScoreBand `json:"band"`
}

// Flow is one learner's progress through a category. It is owned by the
// caller and lives for the whole session; Reset starts the category over.
type Flow struct {
	doc   models.CategoryDocument
	stage Stage
	page  int
	bag   *Bag
}

// New creates a flow positioned at the first intro page. Categories without
// intro pages start directly at the multiple-choice quiz.
func New(doc models.CategoryDocument, rng *rand.Rand) *Flow {
	f := &Flow{
		doc: doc,
		bag: NewBag(len(doc.OptionalQuestionsBank), rng),
	}
	f.Reset()
	return f
}

// Reset returns the flow to its starting stage
func (f *Flow) Reset() {
	f.page = 0
	if len(f.doc.IntroPages) > 0 {
		f.stage = StageIntro
	} else {
		f.stage = StageMCQuiz
	}
}

// Stage returns the current stage
func (f *Flow) Stage() Stage {
	return f.stage
}

// Document returns the category document driving this flow
func (f *Flow) Document() models.CategoryDocument {
	return f.doc
}

// CurrentPage returns the intro page under the cursor, if the flow is in the
// intro stage.
func (f *Flow) CurrentPage() (string, bool) {
	if f.stage != StageIntro || f.page >= len(f.doc.IntroPages) {
		return "", false
	}
	return f.doc.IntroPages[f.page], true
}

// PageNumber returns the 1-based number of the intro page under the cursor
func (f *Flow) PageNumber() int {
	return f.page + 1
}

// Advance moves to the next intro page, entering the multiple-choice quiz
// after the last one. Outside the intro stage it is a no-op.
func (f *Flow) Advance() {
	if f.stage != StageIntro {
		return
	}
	f.page++
	if f.page >= len(f.doc.IntroPages) {
		f.stage = StageMCQuiz
	}
}

// SubmitMCQuiz grades the multiple-choice quiz, one selected option index per
// question, and moves the flow to the short-answer quiz.
func (f *Flow) SubmitMCQuiz(choices []int) (StageResult, error) {
	if f.stage != StageMCQuiz {
		return StageResult{}, ErrWrongStage
	}

	result := StageResult{Total: len(f.doc.MCQuiz)}
	for i, q := range f.doc.MCQuiz {
		given := -1
		if i < len(choices) {
			given = choices[i]
		}
		if grading.GradeChoice(given, q.Answer) {
			result.Correct++
		}
	}
	result.Band = models.BandFor(result.Correct, result.Total)

	f.stage = StageShortQuiz
	return result, nil
}

// SubmitShortQuiz grades the short-answer quiz against each question's
// accepted list and moves the flow to the optional bank.
func (f *Flow) SubmitShortQuiz(answers []string) (StageResult, error) {
	if f.stage != StageShortQuiz {
		return StageResult{}, ErrWrongStage
	}

	result := StageResult{Total: len(f.doc.ShortQuestions)}
	for i, q := range f.doc.ShortQuestions {
		given := ""
		if i < len(answers) {
			given = answers[i]
		}
		if grading.GradeShortAnswer(given, q.Accepted) {
			result.Correct++
		}
	}
	result.Band = models.BandFor(result.Correct, result.Total)

	f.stage = StageOptional
	return result, nil
}

// NextBatch deals the next batch of optional questions from the shuffled
// bag, returning the questions and their bank indexes. Answers to a batch
// are graded with GradeOptional against those indexes. The bank is drawn
// without replacement until exhausted, then refilled and reshuffled.
func (f *Flow) NextBatch() ([]models.ShortQuestion, []int) {
	size := f.doc.OptionalBatchSize
	if size <= 0 {
		size = defaultBatchSize
	}

	indexes := f.bag.Draw(size)
	batch := make([]models.ShortQuestion, 0, len(indexes))
	for _, idx := range indexes {
		batch = append(batch, f.doc.OptionalQuestionsBank[idx])
	}
	return batch, indexes
}

// GradeOptional grades a batch of optional answers against the bank entries
// they were dealt from. Optional practice never feeds level progression.
func (f *Flow) GradeOptional(indexes []int, answers []string) StageResult {
	result := StageResult{Total: len(indexes)}
	for i, idx := range indexes {
		if idx < 0 || idx >= len(f.doc.OptionalQuestionsBank) {
			continue
		}
		given := ""
		if i < len(answers) {
			given = answers[i]
		}
		if grading.GradeShortAnswer(given, f.doc.OptionalQuestionsBank[idx].Accepted) {
			result.Correct++
		}
	}
	result.Band = models.BandFor(result.Correct, result.Total)
	return result
}
