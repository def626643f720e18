package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"clozedrill/internal/content"
	"clozedrill/internal/models"
	"clozedrill/internal/quizflow"
	"clozedrill/internal/service"
)

// CategoryHandler serves the category drill flows. Each learner gets one flow
// per category, created on first entry and kept for the life of the process;
// a flow is reset only through the explicit reset endpoint.
type CategoryHandler struct {
	loader   *content.Loader
	progress *service.ProgressService
	newRand  func() *rand.Rand

	mu    sync.Mutex
	flows map[string]*quizflow.Flow
}

// NewCategoryHandler creates a new category handler. newRand supplies the
// randomness source for each flow's question bag; nil seeds from the clock.
func NewCategoryHandler(loader *content.Loader, progress *service.ProgressService, newRand func() *rand.Rand) *CategoryHandler {
	if newRand == nil {
		newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &CategoryHandler{
		loader:   loader,
		progress: progress,
		newRand:  newRand,
		flows:    make(map[string]*quizflow.Flow),
	}
}

// State returns the learner's position in a category flow
func (h *CategoryHandler) State(w http.ResponseWriter, r *http.Request) {
	flow, name, ok := h.flowFor(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, stateView(name, flow))
}

// Advance moves past the current intro page
func (h *CategoryHandler) Advance(w http.ResponseWriter, r *http.Request) {
	flow, name, ok := h.flowFor(w, r)
	if !ok {
		return
	}
	flow.Advance()
	respondJSON(w, http.StatusOK, stateView(name, flow))
}

// Submit grades the answers for the current quiz stage
func (h *CategoryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req categorySubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	flow, name, ok := h.flowFor(w, r)
	if !ok {
		return
	}

	var (
		result quizflow.StageResult
		err    error
	)
	switch flow.Stage() {
	case quizflow.StageMCQuiz:
		result, err = flow.SubmitMCQuiz(req.Choices)
	case quizflow.StageShortQuiz:
		result, err = flow.SubmitShortQuiz(req.Answers)
	case quizflow.StageOptional:
		result = flow.GradeOptional(req.Indexes, req.Answers)
	default:
		respondWithError(w, http.StatusBadRequest, "Nothing to submit at this stage", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Submission does not match the current stage", "", err)
		return
	}

	// Category practice is logged for history but never counted in the
	// headline statistics
	if appendErr := h.progress.Append(models.KindCategory, name, result.Correct, result.Total); appendErr != nil {
		log.Printf("Error recording attempt: %v", appendErr)
	}
	respondJSON(w, http.StatusOK, result)
}

// More deals the next batch of optional questions
func (h *CategoryHandler) More(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flowFor(w, r)
	if !ok {
		return
	}

	questions, indexes := flow.NextBatch()
	prompts := make([]string, 0, len(questions))
	for _, q := range questions {
		prompts = append(prompts, q.Prompt)
	}
	respondJSON(w, http.StatusOK, optionalBatchResponse{Indexes: indexes, Prompts: prompts})
}

// Reset starts the category over from its first intro page
func (h *CategoryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	flow, name, ok := h.flowFor(w, r)
	if !ok {
		return
	}
	flow.Reset()
	respondJSON(w, http.StatusOK, stateView(name, flow))
}

// flowFor returns the learner's flow for the requested category, creating it
// on first entry. A false return means the response has been written.
func (h *CategoryHandler) flowFor(w http.ResponseWriter, r *http.Request) (*quizflow.Flow, string, bool) {
	name := r.PathValue("name")
	key := LearnerFromContext(r.Context()) + "/" + name

	h.mu.Lock()
	defer h.mu.Unlock()

	if flow, ok := h.flows[key]; ok {
		return flow, name, true
	}

	doc, err := h.loader.Category(name)
	if err != nil {
		respondContentError(w, err)
		return nil, "", false
	}

	flow := quizflow.New(*doc, h.newRand())
	h.flows[key] = flow
	return flow, name, true
}

func stateView(name string, flow *quizflow.Flow) categoryStateResponse {
	doc := flow.Document()
	view := categoryStateResponse{Name: name, Stage: flow.Stage()}

	switch flow.Stage() {
	case quizflow.StageIntro:
		if page, ok := flow.CurrentPage(); ok {
			view.Page = page
		}
		view.PageNumber = flow.PageNumber()
		view.PageCount = len(doc.IntroPages)
	case quizflow.StageMCQuiz:
		// Questions go out without their answers
		view.MCQuiz = make([]mcQuestionView, 0, len(doc.MCQuiz))
		for _, q := range doc.MCQuiz {
			view.MCQuiz = append(view.MCQuiz, mcQuestionView{Prompt: q.Prompt, Options: q.Options})
		}
	case quizflow.StageShortQuiz:
		view.ShortPrompts = make([]string, 0, len(doc.ShortQuestions))
		for _, q := range doc.ShortQuestions {
			view.ShortPrompts = append(view.ShortPrompts, q.Prompt)
		}
	}
	return view
}
