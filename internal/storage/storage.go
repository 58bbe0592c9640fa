package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/pairing"
)

// Session is one UI session's pair state. Callers hold the session lock for
// the whole of each operation so a session's calls run strictly in sequence.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	state *pairing.State
}

// Do runs fn with exclusive access to the session's state.
func (s *Session) Do(fn func(state *pairing.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

func (s *Session) Snapshot() models.PairSnapshot {
	var snap models.PairSnapshot
	s.Do(func(state *pairing.State) {
		snap = state.Snapshot()
	})
	snap.ID = s.ID
	snap.CreatedAt = s.CreatedAt
	return snap
}

type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	newState func() *pairing.State
}

// New returns an empty store. newState builds the pair state for each
// created session; nil means pairing.New with defaults.
func New(newState func() *pairing.State) *SessionStore {
	if newState == nil {
		newState = func() *pairing.State { return pairing.New() }
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		newState: newState,
	}
}

// Create registers a fresh session under a random id.
func (s *SessionStore) Create() *Session {
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		state:     s.newState(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

func (s *SessionStore) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) GetAll() map[string]*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Session, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}
