// Package handlers contains the HTTP layer
package handlers

import (
	"errors"
	"log"
	"net/http"

	"clozedrill/internal/content"
	"clozedrill/internal/exercise"
	"clozedrill/internal/gaptext"
	"clozedrill/internal/models"
	"clozedrill/internal/service"
)

// PracticeHandler serves the open-cloze practice exercises
type PracticeHandler struct {
	loader   *content.Loader
	sessions *exercise.Manager
	progress *service.ProgressService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(loader *content.Loader, sessions *exercise.Manager, progress *service.ProgressService) *PracticeHandler {
	return &PracticeHandler{loader: loader, sessions: sessions, progress: progress}
}

// ListTests returns the open-cloze test catalogue
func (h *PracticeHandler) ListTests(w http.ResponseWriter, r *http.Request) {
	doc, err := h.loader.ClozeTests()
	if err != nil {
		respondContentError(w, err)
		return
	}

	summaries := make([]testSummary, 0, len(doc.Tests))
	for _, t := range doc.Tests {
		summaries = append(summaries, testSummary{
			ID:       t.ID,
			Title:    t.Title,
			GapCount: gaptext.GapCount(gaptext.Parse(t.Text)),
		})
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Start begins a practice session for one test, replacing any session the
// learner already has.
func (h *PracticeHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mode, ok := practiceMode(req.Mode)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Unknown practice mode", "", nil)
		return
	}

	doc, err := h.loader.ClozeTests()
	if err != nil {
		respondContentError(w, err)
		return
	}

	testID := r.PathValue("testId")
	test, found := findClozeTest(doc.Tests, testID)
	if !found {
		respondWithError(w, http.StatusNotFound, "Test not found", "", nil)
		return
	}

	learnerID := LearnerFromContext(r.Context())
	token, session := h.sessions.Begin(learnerID, exercise.Content{
		ID:        test.ID,
		Text:      test.Text,
		Answers:   test.Answers,
		WordTypes: test.WordTypes,
	}, mode)

	respondJSON(w, http.StatusOK, startResponse{
		Token:    token,
		TestID:   test.ID,
		Title:    test.Title,
		Mode:     mode,
		Segments: segmentViews(session.Segments()),
		Hints:    practiceHints(mode, test),
	})
}

// Submit grades the learner's active session. The request token must be the
// one issued when the session started; a token from a replaced session is
// rejected so a late submission cannot land on the wrong exercise.
func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	learnerID := LearnerFromContext(r.Context())
	session, _, ok := h.sessions.Current(learnerID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "No active exercise", "", nil)
		return
	}
	alreadyGraded := session.Graded()

	result, err := h.sessions.Submit(learnerID, req.Token, req.Responses)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	// A resubmit of a graded session returns the prior result without
	// logging a second attempt
	if !alreadyGraded {
		h.appendAttempt(session, result)
	}
	respondJSON(w, http.StatusOK, resultResponse{Result: result})
}

// Retry resets the learner's active session for another attempt
func (h *PracticeHandler) Retry(w http.ResponseWriter, r *http.Request) {
	var req retryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	learnerID := LearnerFromContext(r.Context())
	token, err := h.sessions.Retry(learnerID, req.Token)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, retryResponse{Token: token})
}

func (h *PracticeHandler) appendAttempt(session *exercise.Session, result exercise.Result) {
	kind := models.KindFull
	switch session.Mode() {
	case models.ModeGuidedLetter, models.ModeGuidedType:
		kind = models.KindGuided
	}
	if err := h.progress.Append(kind, session.Content().ID, result.CorrectCount, result.Total); err != nil {
		log.Printf("Error recording attempt: %v", err)
	}
}

func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, exercise.ErrNoSession):
		respondWithError(w, http.StatusNotFound, "No active exercise", "", nil)
	case errors.Is(err, exercise.ErrStaleToken):
		respondWithError(w, http.StatusConflict, "Exercise session has been replaced", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "", err)
	}
}

func practiceMode(s string) (models.Mode, bool) {
	switch models.Mode(s) {
	case models.ModePractice, "":
		return models.ModePractice, true
	case models.ModeGuidedLetter:
		return models.ModeGuidedLetter, true
	case models.ModeGuidedType:
		return models.ModeGuidedType, true
	default:
		return "", false
	}
}

// practiceHints returns the per-gap presentation hints for guided modes:
// the answer's first letter, or its word type. Grading is unaffected.
func practiceHints(mode models.Mode, test models.ClozeTest) []string {
	switch mode {
	case models.ModeGuidedLetter:
		hints := make([]string, 0, len(test.Answers))
		for _, answer := range test.Answers {
			hints = append(hints, firstLetter(answer))
		}
		return hints
	case models.ModeGuidedType:
		return test.WordTypes
	default:
		return nil
	}
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func findClozeTest(tests []models.ClozeTest, id string) (models.ClozeTest, bool) {
	for _, t := range tests {
		if t.ID == id {
			return t, true
		}
	}
	return models.ClozeTest{}, false
}
