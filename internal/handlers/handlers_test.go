package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clozedrill/internal/content"
	"clozedrill/internal/exercise"
	"clozedrill/internal/repository"
	"clozedrill/internal/service"
)

// memoryStore is an in-memory DocumentStore for handler tests
type memoryStore struct {
	docs map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string]string)}
}

func (s *memoryStore) Get(key string, out interface{}) (repository.LoadStatus, error) {
	raw, ok := s.docs[key]
	if !ok {
		return repository.LoadEmpty, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return repository.LoadCorrupt, nil
	}
	return repository.LoadOK, nil
}

func (s *memoryStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.docs[key] = string(raw)
	return nil
}

func writeContent(t *testing.T, dir, name, data string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func contentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeContent(t, dir, "tests.json", `{
		"tests": [
			{"id": "t1", "title": "Getting around", "text": "I go (1) school (2) bus.",
			 "answers": ["to", "by"], "wordTypes": ["preposition", "preposition"]}
		]
	}`)
	writeContent(t, dir, "intro-quiz.json", `{
		"questions": [
			{"prompt": "q1", "options": ["a", "b"], "answer": 0},
			{"prompt": "q2", "options": ["a", "b"], "answer": 1},
			{"prompt": "q3", "options": ["a", "b"], "answer": 0},
			{"prompt": "q4", "options": ["a", "b"], "answer": 1},
			{"prompt": "q5", "options": ["a", "b"], "answer": 0}
		]
	}`)
	writeContent(t, dir, filepath.Join("levels", "easy.json"), `{
		"level": "easy",
		"tests": [
			{"id": "e1", "title": "Easy 1", "text": "She went (1) home.", "answers": ["straight"]}
		],
		"clozeDrills": [
			{"id": "e-drill-1", "title": "Drill", "text": "He gave (1).", "answers": ["up"]}
		]
	}`)
	writeContent(t, dir, filepath.Join("levels", "medium.json"), `{
		"level": "medium",
		"tests": [
			{"id": "m1", "title": "Medium 1", "text": "Hand (1) your essay.", "answers": ["in"]}
		],
		"clozeDrills": []
	}`)
	return dir
}

func learnerRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), LearnerContextKey, "learner-1")
	return r.WithContext(ctx)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v (body %q)", err, w.Body.String())
	}
}

func TestPracticeStartSubmitRetry(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	progress := service.NewProgressService(newMemoryStore())
	h := NewPracticeHandler(loader, exercise.NewManager(), progress)

	// Start
	r := learnerRequest("POST", "/api/practice/start/t1", `{"mode": "practice"}`)
	r.SetPathValue("testId", "t1")
	w := httptest.NewRecorder()
	h.Start(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", w.Code, w.Body.String())
	}

	var started startResponse
	decodeResponse(t, w, &started)
	if started.Token == "" || len(started.Segments) != 5 {
		t.Fatalf("start response = %+v", started)
	}

	// Submit with one wrong answer
	w = httptest.NewRecorder()
	h.Submit(w, learnerRequest("POST", "/api/practice/submit",
		`{"token": "`+started.Token+`", "responses": ["To", "bus"]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}

	var submitted resultResponse
	decodeResponse(t, w, &submitted)
	if submitted.Result.CorrectCount != 1 || submitted.Result.Total != 2 {
		t.Errorf("result = %d/%d, want 1/2", submitted.Result.CorrectCount, submitted.Result.Total)
	}
	if len(submitted.Result.Wrong) != 1 || submitted.Result.Wrong[0].Ordinal != 2 {
		t.Errorf("wrong gaps = %+v", submitted.Result.Wrong)
	}

	// The attempt is logged once
	if got := len(progress.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}

	// Retry issues a fresh token
	w = httptest.NewRecorder()
	h.Retry(w, learnerRequest("POST", "/api/practice/retry", `{"token": "`+started.Token+`"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("retry status = %d, body %s", w.Code, w.Body.String())
	}
	var retried retryResponse
	decodeResponse(t, w, &retried)
	if retried.Token == "" || retried.Token == started.Token {
		t.Error("retry must rotate the session token")
	}

	// The old token is now stale
	w = httptest.NewRecorder()
	h.Submit(w, learnerRequest("POST", "/api/practice/submit",
		`{"token": "`+started.Token+`", "responses": ["to", "by"]}`))
	if w.Code != http.StatusConflict {
		t.Errorf("stale submit status = %d, want 409", w.Code)
	}
}

func TestPracticeResubmitIsNotLoggedTwice(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	progress := service.NewProgressService(newMemoryStore())
	h := NewPracticeHandler(loader, exercise.NewManager(), progress)

	r := learnerRequest("POST", "/api/practice/start/t1", `{"mode": "practice"}`)
	r.SetPathValue("testId", "t1")
	w := httptest.NewRecorder()
	h.Start(w, r)
	var started startResponse
	decodeResponse(t, w, &started)

	body := `{"token": "` + started.Token + `", "responses": ["to", "by"]}`
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		h.Submit(w, learnerRequest("POST", "/api/practice/submit", body))
		if w.Code != http.StatusOK {
			t.Fatalf("submit %d status = %d", i, w.Code)
		}
	}

	if got := len(progress.History()); got != 1 {
		t.Errorf("history length = %d, want 1 (resubmit is idempotent)", got)
	}
}

func TestPracticeGuidedLetterHints(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	h := NewPracticeHandler(loader, exercise.NewManager(), service.NewProgressService(newMemoryStore()))

	r := learnerRequest("POST", "/api/practice/start/t1", `{"mode": "guided-letter"}`)
	r.SetPathValue("testId", "t1")
	w := httptest.NewRecorder()
	h.Start(w, r)

	var started startResponse
	decodeResponse(t, w, &started)
	if len(started.Hints) != 2 || started.Hints[0] != "t" || started.Hints[1] != "b" {
		t.Errorf("hints = %v, want first letters", started.Hints)
	}
}

func TestPracticeUnknownMode(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	h := NewPracticeHandler(loader, exercise.NewManager(), service.NewProgressService(newMemoryStore()))

	r := learnerRequest("POST", "/api/practice/start/t1", `{"mode": "telepathy"}`)
	r.SetPathValue("testId", "t1")
	w := httptest.NewRecorder()
	h.Start(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLevelsLockedTestRejected(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	store := newMemoryStore()
	levels := service.NewLevelService(store, 70)
	progress := service.NewProgressService(store)
	h := NewLevelsHandler(loader, levels, progress)

	r := learnerRequest("POST", "/api/levels/easy/test/submit",
		`{"testId": "e1", "answers": ["straight"]}`)
	r.SetPathValue("level", "easy")
	w := httptest.NewRecorder()
	h.SubmitTest(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("locked level status = %d, want 403", w.Code)
	}
}

func TestLevelsIntroQuizUnlocksEasy(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	store := newMemoryStore()
	levels := service.NewLevelService(store, 70)
	progress := service.NewProgressService(store)
	h := NewLevelsHandler(loader, levels, progress)

	// 4 of 5 correct: 80% passes
	w := httptest.NewRecorder()
	h.SubmitIntroQuiz(w, learnerRequest("POST", "/api/levels/intro-quiz/submit",
		`{"choices": [0, 1, 0, 1, 1]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("intro quiz status = %d, body %s", w.Code, w.Body.String())
	}

	var outcome service.LevelOutcome
	decodeResponse(t, w, &outcome)
	if outcome.Percent != 80 || !outcome.PassedNow {
		t.Errorf("outcome = %+v, want 80%% passed", outcome)
	}

	// Easy is now open; a failing attempt keeps its mean below the pass mark
	r := learnerRequest("POST", "/api/levels/easy/test/submit",
		`{"testId": "e1", "answers": ["wrong"]}`)
	r.SetPathValue("level", "easy")
	w = httptest.NewRecorder()
	h.SubmitTest(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("easy test status = %d, body %s", w.Code, w.Body.String())
	}

	r = learnerRequest("POST", "/api/levels/medium/test/submit",
		`{"testId": "m1", "answers": ["in"]}`)
	r.SetPathValue("level", "medium")
	w = httptest.NewRecorder()
	h.SubmitTest(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("medium status = %d, want 403", w.Code)
	}
}

func TestLevelsClozeDrillIsUngated(t *testing.T) {
	loader := content.NewLoader(contentDir(t))
	store := newMemoryStore()
	levels := service.NewLevelService(store, 70)
	progress := service.NewProgressService(store)
	h := NewLevelsHandler(loader, levels, progress)

	// No entry quiz passed, drill still allowed
	r := learnerRequest("POST", "/api/levels/easy/cloze/submit",
		`{"testId": "e-drill-1", "answers": ["up"]}`)
	r.SetPathValue("level", "easy")
	w := httptest.NewRecorder()
	h.SubmitCloze(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("cloze drill status = %d, body %s", w.Code, w.Body.String())
	}

	// Logged but never counted toward the pass average or headline stats
	if got := len(progress.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
	if summary := progress.Aggregate(); summary.AttemptCount != 0 {
		t.Errorf("drill must not count in aggregate, got %+v", summary)
	}
}

func TestProgressSummaryEmpty(t *testing.T) {
	h := NewProgressHandler(service.NewProgressService(newMemoryStore()))

	w := httptest.NewRecorder()
	h.Summary(w, learnerRequest("GET", "/api/progress", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp progressResponse
	decodeResponse(t, w, &resp)
	if resp.Summary.AccuracyPercent != 0 || len(resp.History) != 0 {
		t.Errorf("empty progress = %+v", resp)
	}
}
