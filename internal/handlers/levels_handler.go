package handlers

import (
	"errors"
	"log"
	"net/http"

	"clozedrill/internal/content"
	"clozedrill/internal/exercise"
	"clozedrill/internal/grading"
	"clozedrill/internal/models"
	"clozedrill/internal/service"
)

// LevelsHandler serves the level progression: the entry quiz, the gated level
// tests, and the ungated cloze drills.
type LevelsHandler struct {
	loader   *content.Loader
	levels   *service.LevelService
	progress *service.ProgressService
}

// NewLevelsHandler creates a new levels handler
func NewLevelsHandler(loader *content.Loader, levels *service.LevelService, progress *service.ProgressService) *LevelsHandler {
	return &LevelsHandler{loader: loader, levels: levels, progress: progress}
}

// List returns the unlock state of every level
func (h *LevelsHandler) List(w http.ResponseWriter, r *http.Request) {
	progress := h.levels.Progress()

	resp := levelsResponse{
		IntroQuizPassed: progress.IntroQuizPassed,
		Levels:          make([]levelView, 0, len(models.Levels)),
	}
	for _, level := range models.Levels {
		resp.Levels = append(resp.Levels, levelView{
			Name:        level,
			Unlocked:    progress.Unlocked(level),
			Passed:      progress.Passed(level),
			SessionMean: h.levels.SessionMean(level),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// SubmitIntroQuiz grades the one-time entry quiz
func (h *LevelsHandler) SubmitIntroQuiz(w http.ResponseWriter, r *http.Request) {
	var req introSubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.loader.IntroQuiz()
	if err != nil {
		respondContentError(w, err)
		return
	}

	correct := 0
	for i, q := range doc.Questions {
		given := -1
		if i < len(req.Choices) {
			given = req.Choices[i]
		}
		if grading.GradeChoice(given, q.Answer) {
			correct++
		}
	}

	outcome, err := h.levels.RecordIntroQuiz(correct, len(doc.Questions))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to record entry quiz", err)
		return
	}

	if appendErr := h.progress.Append(models.KindLevelTest, "intro-quiz", correct, len(doc.Questions)); appendErr != nil {
		log.Printf("Error recording attempt: %v", appendErr)
	}
	respondJSON(w, http.StatusOK, outcome)
}

// SubmitTest grades one level test and feeds its score into the level's
// rolling average. Locked levels reject the submission.
func (h *LevelsHandler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	level, ok := models.ParseLevel(r.PathValue("level"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown level", "", nil)
		return
	}

	var req levelTestSubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Reject before grading so a locked level leaks nothing about its answers
	if !h.levels.Unlocked(level) {
		respondWithError(w, http.StatusForbidden, "Level is locked", "", nil)
		return
	}

	doc, err := h.loader.Level(level)
	if err != nil {
		respondContentError(w, err)
		return
	}
	test, found := findClozeTest(doc.Tests, req.TestID)
	if !found {
		respondWithError(w, http.StatusNotFound, "Test not found", "", nil)
		return
	}

	result := gradeCloze(test, req.Answers)

	outcome, err := h.levels.RecordTestScore(level, result.CorrectCount, result.Total)
	if err != nil {
		if errors.Is(err, service.ErrLevelLocked) {
			respondWithError(w, http.StatusForbidden, "Level is locked", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to record level test", err)
		return
	}

	if appendErr := h.progress.Append(models.KindLevelTest, test.ID, result.CorrectCount, result.Total); appendErr != nil {
		log.Printf("Error recording attempt: %v", appendErr)
	}
	respondJSON(w, http.StatusOK, levelOutcomeResponse{Outcome: outcome, Result: result})
}

// SubmitCloze grades an ungated cloze drill. Drills are pure practice: they
// are logged but never feed the pass average, and locked levels allow them.
func (h *LevelsHandler) SubmitCloze(w http.ResponseWriter, r *http.Request) {
	level, ok := models.ParseLevel(r.PathValue("level"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown level", "", nil)
		return
	}

	var req levelTestSubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.loader.Level(level)
	if err != nil {
		respondContentError(w, err)
		return
	}
	test, found := findClozeTest(doc.ClozeDrills, req.TestID)
	if !found {
		respondWithError(w, http.StatusNotFound, "Drill not found", "", nil)
		return
	}

	result := gradeCloze(test, req.Answers)
	if appendErr := h.progress.Append(models.KindCloze, test.ID, result.CorrectCount, result.Total); appendErr != nil {
		log.Printf("Error recording attempt: %v", appendErr)
	}
	respondJSON(w, http.StatusOK, resultResponse{Result: result})
}

func gradeCloze(test models.ClozeTest, answers []string) exercise.Result {
	session := exercise.NewSession(exercise.Content{
		ID:        test.ID,
		Text:      test.Text,
		Answers:   test.Answers,
		WordTypes: test.WordTypes,
	}, models.ModePractice)
	return session.Submit(answers)
}
