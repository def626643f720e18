package handlers

import (
	"clozedrill/internal/exercise"
	"clozedrill/internal/gaptext"
	"clozedrill/internal/models"
	"clozedrill/internal/quizflow"
	"clozedrill/internal/service"
)

// --- practice ---

type startRequest struct {
	Mode string `json:"mode"`
}

type submitRequest struct {
	Token     string   `json:"token"`
	Responses []string `json:"responses"`
}

type retryRequest struct {
	Token string `json:"token"`
}

type segmentView struct {
	Literal string `json:"literal,omitempty"`
	Ordinal int    `json:"ordinal,omitempty"`
	IsGap   bool   `json:"isGap"`
}

func segmentViews(segments []gaptext.Segment) []segmentView {
	views := make([]segmentView, 0, len(segments))
	for _, s := range segments {
		views = append(views, segmentView{Literal: s.Literal, Ordinal: s.Ordinal, IsGap: s.IsGap})
	}
	return views
}

type testSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	GapCount int    `json:"gapCount"`
}

type startResponse struct {
	Token    string        `json:"token"`
	TestID   string        `json:"testId"`
	Title    string        `json:"title"`
	Mode     models.Mode   `json:"mode"`
	Segments []segmentView `json:"segments"`
	Hints    []string      `json:"hints,omitempty"`
}

type resultResponse struct {
	Result exercise.Result `json:"result"`
}

type retryResponse struct {
	Token string `json:"token"`
}

// --- word formation ---

type wordFormationSummary struct {
	PrefixCount int           `json:"prefixCount"`
	SuffixCount int           `json:"suffixCount"`
	PosCount    int           `json:"posCount"`
	GuidedTest  *testSummary  `json:"guidedTest,omitempty"`
	McqTests    []testSummary `json:"mcqTests"`
	FullTests   []testSummary `json:"fullTests"`
}

type formationSubmitRequest struct {
	TestID  string   `json:"testId,omitempty"`
	Answers []string `json:"answers,omitempty"`
	Choices []int    `json:"choices,omitempty"`
}

// --- categories ---

type mcQuestionView struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type categoryStateResponse struct {
	Name         string           `json:"name"`
	Stage        quizflow.Stage   `json:"stage"`
	Page         string           `json:"page,omitempty"`
	PageNumber   int              `json:"pageNumber,omitempty"`
	PageCount    int              `json:"pageCount,omitempty"`
	MCQuiz       []mcQuestionView `json:"mcQuiz,omitempty"`
	ShortPrompts []string         `json:"shortPrompts,omitempty"`
}

type categorySubmitRequest struct {
	Choices []int    `json:"choices,omitempty"`
	Answers []string `json:"answers,omitempty"`
	Indexes []int    `json:"indexes,omitempty"`
}

type optionalBatchResponse struct {
	Indexes []int    `json:"indexes"`
	Prompts []string `json:"prompts"`
}

// --- levels ---

type introSubmitRequest struct {
	Choices []int `json:"choices"`
}

type levelTestSubmitRequest struct {
	TestID  string   `json:"testId"`
	Answers []string `json:"answers"`
}

type levelView struct {
	Name        models.Level `json:"name"`
	Unlocked    bool         `json:"unlocked"`
	Passed      bool         `json:"passed"`
	SessionMean int          `json:"sessionMean"`
}

type levelsResponse struct {
	IntroQuizPassed bool        `json:"introQuizPassed"`
	Levels          []levelView `json:"levels"`
}

type levelOutcomeResponse struct {
	Outcome service.LevelOutcome `json:"outcome"`
	Result  exercise.Result      `json:"result"`
}

// --- progress ---

type progressResponse struct {
	Summary models.ProgressSummary `json:"summary"`
	Series  []models.SeriesPoint   `json:"series"`
	History []models.AttemptRecord `json:"history"`
}
