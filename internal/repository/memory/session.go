package memory

import (
	"sync"
	"time"

	"polarproperty/internal/domain"
)

// SessionStore is an in-memory repository.SessionStore with expiry
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.StateData
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store whose awaiting states expire after ttl
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]domain.StateData),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns user's current state, or idle if none or expired
func (s *SessionStore) Get(userID int64) (domain.UserState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.sessions[userID]
	if !ok || data.Expired(s.now(), s.ttl) {
		return domain.StateIdle, nil
	}
	return data.State, nil
}

// Set overwrites user's state
func (s *SessionStore) Set(userID int64, state domain.UserState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == domain.StateIdle {
		delete(s.sessions, userID)
		return nil
	}
	s.sessions[userID] = domain.StateData{State: state, UpdatedAt: s.now()}
	return nil
}

// Clear resets user to idle
func (s *SessionStore) Clear(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Cleanup removes expired sessions
func (s *SessionStore) Cleanup() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for userID, data := range s.sessions {
		if data.Expired(now, s.ttl) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
