// Package session keeps the table uploaded by each client of the HTTP server.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// ErrNotFound indicates an unknown or expired session.
var ErrNotFound = errors.New("session not found")

// Session is one client's loaded table. A Session is never modified after
// it is stored; uploads and accesses store a new value.
type Session struct {
	ID       string
	Table    *models.Table
	LoadedAt time.Time
	LastSeen time.Time
}

// Store maps session ids to sessions. Sessions idle for longer than the TTL
// are dropped on access and by Sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.New().String()
}

// Put stores t as the table of session id, replacing any previous table.
func (s *Store) Put(id string, t *models.Table) *Session {
	now := s.now()
	sess := &Session{ID: id, Table: t, LoadedAt: now, LastSeen: now}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session and marks it as seen.
func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}

	seen := *sess
	seen.LastSeen = now
	s.sessions[id] = &seen
	return &seen, nil
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops every expired session and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps the store every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastSeen) > s.ttl
}
