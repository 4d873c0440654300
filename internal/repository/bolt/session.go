package bolt

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"polarproperty/internal/domain"

	bolt "go.etcd.io/bbolt"
)

var sessionBucketName = []byte("sessions")

// SessionStore is a repository.SessionStore backed by a bbolt file,
// so awaiting states survive a restart
type SessionStore struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// NewSessionStore creates the sessions bucket if needed
func NewSessionStore(db *bolt.DB, ttl time.Duration) (*SessionStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucketName)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions bucket: %w", err)
	}

	return &SessionStore{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns user's current state, or idle if none or expired
func (s *SessionStore) Get(userID int64) (domain.UserState, error) {
	data, err := s.load(userID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.StateIdle, nil
	}
	if err != nil {
		return domain.StateIdle, err
	}

	if data.Expired(s.now(), s.ttl) {
		return domain.StateIdle, nil
	}
	return data.State, nil
}

// Set overwrites user's state
func (s *SessionStore) Set(userID int64, state domain.UserState) error {
	if state == domain.StateIdle {
		return s.Clear(userID)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		raw, err := json.Marshal(domain.StateData{State: state, UpdatedAt: s.now()})
		if err != nil {
			return err
		}
		return tx.Bucket(sessionBucketName).Put(itob(userID), raw)
	})
}

// Clear resets user to idle
func (s *SessionStore) Clear(userID int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucketName).Delete(itob(userID))
	})
}

// Cleanup removes expired and unreadable sessions
func (s *SessionStore) Cleanup() (int, error) {
	removed := 0
	now := s.now()

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucketName)

		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var data domain.StateData
			if err := json.Unmarshal(v, &data); err != nil || data.Expired(now, s.ttl) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		// keys can't be deleted while iterating
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *SessionStore) load(userID int64) (domain.StateData, error) {
	var data domain.StateData

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionBucketName).Get(itob(userID))
		if raw == nil {
			return domain.ErrSessionNotFound
		}
		return json.Unmarshal(raw, &data)
	})
	if err != nil {
		return domain.StateData{}, err
	}
	return data, nil
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
