package service

import (
	"errors"
	"log"
	"sync"

	"clozedrill/internal/models"
	"clozedrill/internal/repository"
)

const levelProgressKey = "level_progress"

// ErrLevelLocked is returned when a score is submitted for a level the
// learner has not unlocked yet.
var ErrLevelLocked = errors.New("level is locked")

// LevelOutcome reports what one graded level test did to the progression
type LevelOutcome struct {
	Percent     int  `json:"percent"`
	SessionMean int  `json:"sessionMean"`
	PassedNow   bool `json:"passedNow"`
}

// LevelService owns the level progression: the entry quiz gate, the
// easy-through-expert unlock chain, and the rolling per-level averages that
// decide when a level is passed. Unlock flags persist across restarts; the
// rolling averages are per process and start fresh with it.
type LevelService struct {
	mu          sync.Mutex
	store       DocumentStore
	passPercent int
	scores      map[models.Level][]int
}

// NewLevelService creates a new level service. passPercent is the mean score
// required to pass the entry quiz or a level.
func NewLevelService(store DocumentStore, passPercent int) *LevelService {
	return &LevelService{
		store:       store,
		passPercent: passPercent,
		scores:      make(map[models.Level][]int),
	}
}

// Progress returns the persisted unlock flags
func (s *LevelService) Progress() models.LevelProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Unlocked reports whether a level is open for testing
func (s *LevelService) Unlocked(level models.Level) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Unlocked(level)
}

// RecordIntroQuiz grades the entry quiz outcome. Reaching the pass mark sets
// the intro flag and opens the easy level; the flag is never cleared by a
// later failing run.
func (s *LevelService) RecordIntroQuiz(correct, total int) (LevelOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	percent := models.PercentOf(correct, total)
	outcome := LevelOutcome{Percent: percent, SessionMean: percent}
	if percent < s.passPercent {
		return outcome, nil
	}

	progress := s.load()
	if !progress.IntroQuizPassed {
		outcome.PassedNow = true
	}
	progress.IntroQuizPassed = true
	if err := s.persist(progress); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// RecordTestScore grades one level test. The score joins the level's rolling
// average for this process; when the mean reaches the pass mark the level's
// flag is set and persisted. Scores against locked levels are rejected.
func (s *LevelService) RecordTestScore(level models.Level, correct, total int) (LevelOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := s.load()
	if !progress.Unlocked(level) {
		return LevelOutcome{}, ErrLevelLocked
	}

	percent := models.PercentOf(correct, total)
	s.scores[level] = append(s.scores[level], percent)
	mean := meanOf(s.scores[level])

	outcome := LevelOutcome{Percent: percent, SessionMean: mean}
	if mean < s.passPercent || progress.Passed(level) {
		return outcome, nil
	}

	progress.SetPassed(level)
	outcome.PassedNow = true
	if err := s.persist(progress); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// SessionMean returns the rolling average for a level in this process,
// 0 when no tests have been taken yet.
func (s *LevelService) SessionMean(level models.Level) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return meanOf(s.scores[level])
}

// meanOf recomputes the arithmetic mean from the kept scores each time,
// avoiding drift from an incremental accumulator.
func meanOf(percents []int) int {
	if len(percents) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percents {
		sum += p
	}
	return models.PercentOf(sum, 100*len(percents))
}

// load reads the persisted flags, treating missing or corrupt documents as
// a fresh start.
func (s *LevelService) load() models.LevelProgress {
	var progress models.LevelProgress
	status, err := s.store.Get(levelProgressKey, &progress)
	if err != nil {
		log.Printf("Error loading level progress: %v", err)
		return models.LevelProgress{}
	}
	if status == repository.LoadCorrupt {
		log.Printf("Stored level progress is corrupt, starting over")
		return models.LevelProgress{}
	}
	return progress
}

// persist merges the new flags with whatever is stored before writing, so a
// concurrent writer's flags survive.
func (s *LevelService) persist(progress models.LevelProgress) error {
	var stored models.LevelProgress
	if status, err := s.store.Get(levelProgressKey, &stored); err == nil && status == repository.LoadOK {
		progress = progress.Merge(stored)
	}
	return s.store.Set(levelProgressKey, progress)
}
