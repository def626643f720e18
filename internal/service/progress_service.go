// Package service contains the business logic layer
package service

import (
	"log"
	"sync"
	"time"

	"clozedrill/internal/models"
	"clozedrill/internal/repository"
)

// DocumentStore is the persistence surface the services need. Satisfied by
// repository.DocumentRepository.
type DocumentStore interface {
	Get(key string, out interface{}) (repository.LoadStatus, error)
	Set(key string, v interface{}) error
}

const (
	attemptLogKey = "attempt_log"

	// maxAttempts bounds the stored log; the oldest records are dropped first
	maxAttempts = 500

	// recentWindow is how many recent attempts the chart series covers
	recentWindow = 20
)

// countedKinds are the attempt kinds that feed the aggregate statistics and
// the recent-history series. Cloze drills and category practice are logged
// for the raw history but excluded from the headline numbers.
var countedKinds = map[models.AttemptKind]bool{
	models.KindGuided:    true,
	models.KindMCQ:       true,
	models.KindFull:      true,
	models.KindPrefix:    true,
	models.KindSuffix:    true,
	models.KindPos:       true,
	models.KindLevelTest: true,
}

// ProgressService maintains the learner's attempt log and derives summary
// statistics from it. A log that comes back missing or corrupt is replaced
// with an empty one rather than blocking new attempts.
type ProgressService struct {
	mu    sync.Mutex
	store DocumentStore
}

// NewProgressService creates a new progress service
func NewProgressService(store DocumentStore) *ProgressService {
	return &ProgressService{store: store}
}

// Append logs one completed attempt, stamping it with the current time and
// trimming the log to its capacity bound.
func (s *ProgressService) Append(kind models.AttemptKind, id string, score, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	records = append(records, models.AttemptRecord{
		Kind:  kind,
		ID:    id,
		Score: score,
		Total: total,
		Date:  time.Now().UnixMilli(),
	})
	if len(records) > maxAttempts {
		records = records[len(records)-maxAttempts:]
	}

	return s.store.Set(attemptLogKey, records)
}

// History returns the full stored attempt log, oldest first
func (s *ProgressService) History() []models.AttemptRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Aggregate computes the headline statistics over the counted attempt kinds
func (s *ProgressService) Aggregate() models.ProgressSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary models.ProgressSummary
	for _, r := range s.load() {
		if !countedKinds[r.Kind] {
			continue
		}
		summary.TotalCorrect += r.Score
		summary.TotalQuestions += r.Total
		summary.AttemptCount++
	}
	summary.AccuracyPercent = models.PercentOf(summary.TotalCorrect, summary.TotalQuestions)
	return summary
}

// RecentSeries returns the chart series for the most recent counted attempts,
// oldest first, at most recentWindow entries.
func (s *ProgressService) RecentSeries() []models.SeriesPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counted []models.AttemptRecord
	for _, r := range s.load() {
		if countedKinds[r.Kind] {
			counted = append(counted, r)
		}
	}
	if len(counted) > recentWindow {
		counted = counted[len(counted)-recentWindow:]
	}

	series := make([]models.SeriesPoint, 0, len(counted))
	for _, r := range counted {
		percent := r.Percent()
		series = append(series, models.SeriesPoint{
			Kind:    r.Kind,
			ID:      r.ID,
			Score:   r.Score,
			Total:   r.Total,
			Percent: percent,
			Band:    models.SeriesBandFor(percent),
		})
	}
	return series
}

// load reads the stored log. Missing and corrupt documents both start the
// learner over with an empty log; a corrupt one is logged so the data loss
// is visible in the server output.
func (s *ProgressService) load() []models.AttemptRecord {
	var records []models.AttemptRecord
	status, err := s.store.Get(attemptLogKey, &records)
	if err != nil {
		log.Printf("Error loading attempt log: %v", err)
		return nil
	}
	if status == repository.LoadCorrupt {
		log.Printf("Stored attempt log is corrupt, starting a fresh log")
		return nil
	}
	return records
}
