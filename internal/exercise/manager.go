package exercise

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"clozedrill/internal/models"
)

// ErrStaleToken is returned when a submission carries a token that no longer
// identifies the learner's current session, e.g. after navigating to another
// exercise before the first one finished.
var ErrStaleToken = errors.New("exercise session token is stale")

// ErrNoSession is returned when a learner has no active exercise
var ErrNoSession = errors.New("no active exercise session")

// Manager owns at most one active exercise session per learner. Every Begin
// issues a fresh token; operations carrying an older token are rejected, which
// keeps a late-arriving submission from being applied to a replaced session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	token   string
	session *Session
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*entry)}
}

// Begin replaces the learner's current session with a new one and returns the
// token that subsequent operations must present.
func (m *Manager) Begin(learnerID string, content Content, mode models.Mode) (string, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := NewSession(content, mode)
	token := uuid.NewString()
	m.sessions[learnerID] = &entry{token: token, session: session}
	return token, session
}

// Current returns the learner's active session and its token
func (m *Manager) Current(learnerID string) (*Session, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[learnerID]
	if !ok {
		return nil, "", false
	}
	return e.session, e.token, true
}

// Submit grades the learner's current session. The token must match the one
// issued by the Begin that created the session.
func (m *Manager) Submit(learnerID, token string, responses []string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[learnerID]
	if !ok {
		return Result{}, ErrNoSession
	}
	if e.token != token {
		return Result{}, ErrStaleToken
	}
	return e.session.Submit(responses), nil
}

// Retry resets the learner's current session for another attempt, issuing a
// new token so a submission of the abandoned attempt cannot land.
func (m *Manager) Retry(learnerID, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[learnerID]
	if !ok {
		return "", ErrNoSession
	}
	if e.token != token {
		return "", ErrStaleToken
	}

	e.session.Restart()
	e.token = uuid.NewString()
	return e.token, nil
}
