package handlers

import (
	"log"
	"net/http"
	"strconv"

	"clozedrill/internal/content"
	"clozedrill/internal/exercise"
	"clozedrill/internal/gaptext"
	"clozedrill/internal/grading"
	"clozedrill/internal/models"
	"clozedrill/internal/service"
)

// WordFormationHandler serves the word-formation exercise suite: prefix and
// suffix drills, part-of-speech choices, and the guided/mcq/full gapped tests.
type WordFormationHandler struct {
	loader   *content.Loader
	progress *service.ProgressService
}

// NewWordFormationHandler creates a new word-formation handler
func NewWordFormationHandler(loader *content.Loader, progress *service.ProgressService) *WordFormationHandler {
	return &WordFormationHandler{loader: loader, progress: progress}
}

// Summary returns the word-formation catalogue
func (h *WordFormationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	doc, err := h.loader.WordFormation()
	if err != nil {
		respondContentError(w, err)
		return
	}

	summary := wordFormationSummary{
		PrefixCount: len(doc.PrefixExercises),
		SuffixCount: len(doc.SuffixExercises),
		PosCount:    len(doc.PosExercises),
		McqTests:    make([]testSummary, 0, len(doc.McqTests)),
		FullTests:   make([]testSummary, 0, len(doc.FullTests)),
	}
	if doc.GuidedTest != nil {
		summary.GuidedTest = &testSummary{
			ID:       doc.GuidedTest.ID,
			Title:    doc.GuidedTest.Title,
			GapCount: gaptext.GapCount(gaptext.Parse(doc.GuidedTest.Text)),
		}
	}
	for _, t := range doc.McqTests {
		summary.McqTests = append(summary.McqTests, testSummary{
			ID:       t.ID,
			Title:    t.Title,
			GapCount: gaptext.GapCount(gaptext.Parse(t.Text)),
		})
	}
	for _, t := range doc.FullTests {
		summary.FullTests = append(summary.FullTests, testSummary{
			ID:       t.ID,
			Title:    t.Title,
			GapCount: gaptext.GapCount(gaptext.Parse(t.Text)),
		})
	}
	respondJSON(w, http.StatusOK, summary)
}

// Submit grades one word-formation exercise kind
func (h *WordFormationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req formationSubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.loader.WordFormation()
	if err != nil {
		respondContentError(w, err)
		return
	}

	var (
		result exercise.Result
		kind   models.AttemptKind
		id     string
	)

	switch r.PathValue("kind") {
	case "prefix":
		result = gradeWordParts(doc.PrefixExercises, req.Answers)
		kind, id = models.KindPrefix, "prefix"
	case "suffix":
		result = gradeWordParts(doc.SuffixExercises, req.Answers)
		kind, id = models.KindSuffix, "suffix"
	case "pos":
		result = gradePosChoices(doc.PosExercises, req.Answers)
		kind, id = models.KindPos, "pos"
	case "guided":
		if doc.GuidedTest == nil {
			respondWithError(w, http.StatusNotFound, "No guided test available", "", nil)
			return
		}
		result = gradeFormationTest(*doc.GuidedTest, req.Answers)
		kind, id = models.KindGuided, doc.GuidedTest.ID
	case "mcq":
		test, found := findMCQTest(doc.McqTests, req.TestID)
		if !found {
			respondWithError(w, http.StatusNotFound, "Test not found", "", nil)
			return
		}
		result = gradeMCQTest(test, req.Choices)
		kind, id = models.KindMCQ, test.ID
	case "full":
		test, found := findFormationTest(doc.FullTests, req.TestID)
		if !found {
			respondWithError(w, http.StatusNotFound, "Test not found", "", nil)
			return
		}
		result = gradeFormationTest(test, req.Answers)
		kind, id = models.KindFull, test.ID
	default:
		respondWithError(w, http.StatusNotFound, "Unknown exercise kind", "", nil)
		return
	}

	if err := h.progress.Append(kind, id, result.CorrectCount, result.Total); err != nil {
		log.Printf("Error recording attempt: %v", err)
	}
	respondJSON(w, http.StatusOK, resultResponse{Result: result})
}

// gradeWordParts grades a prefix or suffix drill: one free-text answer per item
func gradeWordParts(items []models.WordPartExercise, answers []string) exercise.Result {
	result := exercise.Result{Total: len(items)}
	for i, item := range items {
		given := ""
		if i < len(answers) {
			given = answers[i]
		}
		graded := models.GradedAnswer{
			Given:           given,
			NormalizedGiven: grading.NormalizeFreeText(given),
			Expected:        item.Answer,
			IsCorrect:       grading.GradeFreeText(given, item.Answer),
		}
		result.Graded = append(result.Graded, graded)
		if graded.IsCorrect {
			result.CorrectCount++
		} else {
			result.Wrong = append(result.Wrong, models.WrongGap{Ordinal: i + 1, Expected: item.Answer})
		}
	}
	result.Band = models.BandFor(result.CorrectCount, result.Total)
	return result
}

// gradePosChoices grades the part-of-speech drill. The content stores the
// correct option as display text, so selections compare by text.
func gradePosChoices(items []models.PosExercise, answers []string) exercise.Result {
	result := exercise.Result{Total: len(items)}
	for i, item := range items {
		given := ""
		if i < len(answers) {
			given = answers[i]
		}
		graded := models.GradedAnswer{
			Given:           given,
			NormalizedGiven: grading.NormalizeFreeText(given),
			Expected:        item.Correct,
			IsCorrect:       grading.GradeChoiceText(given, item.Correct),
		}
		result.Graded = append(result.Graded, graded)
		if graded.IsCorrect {
			result.CorrectCount++
		} else {
			result.Wrong = append(result.Wrong, models.WrongGap{Ordinal: i + 1, Expected: item.Correct})
		}
	}
	result.Band = models.BandFor(result.CorrectCount, result.Total)
	return result
}

func gradeFormationTest(test models.FormationTest, answers []string) exercise.Result {
	session := exercise.NewSession(exercise.Content{
		ID:           test.ID,
		Text:         test.Text,
		Answers:      test.Answers,
		BaseWords:    test.BaseWords,
		PosHints:     test.PosHints,
		Explanations: test.Explanations,
	}, models.ModePractice)
	return session.Submit(answers)
}

func gradeMCQTest(test models.FormationMCQTest, choices []int) exercise.Result {
	responses := make([]string, len(choices))
	for i, c := range choices {
		responses[i] = strconv.Itoa(c)
	}
	session := exercise.NewSession(exercise.Content{
		ID:            test.ID,
		Text:          test.Text,
		AnswerIndexes: test.Answers,
		Options:       test.Options,
		BaseWords:     test.BaseWords,
		Explanations:  test.Explanations,
	}, models.ModeMCQ)
	return session.Submit(responses)
}

func findFormationTest(tests []models.FormationTest, id string) (models.FormationTest, bool) {
	for _, t := range tests {
		if t.ID == id {
			return t, true
		}
	}
	return models.FormationTest{}, false
}

func findMCQTest(tests []models.FormationMCQTest, id string) (models.FormationMCQTest, bool) {
	for _, t := range tests {
		if t.ID == id {
			return t, true
		}
	}
	return models.FormationMCQTest{}, false
}
