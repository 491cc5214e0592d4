package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/youruser/talingchan-deck/internal/deck"
	"go.uber.org/zap"
)

// Store keeps the live sessions of a server process in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	rules    deck.Rules
	routing  Routing
	log      *zap.Logger
}

// NewStore returns an empty store whose sessions use rules and routing.
func NewStore(rules deck.Rules, routing Routing, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		sessions: map[uuid.UUID]*Session{},
		rules:    rules,
		routing:  routing,
		log:      log,
	}
}

// Create starts and registers a new session.
func (st *Store) Create() *Session {
	s := New(st.rules, st.routing, st.log)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	st.log.Info("session created", zap.String("session", s.ID.String()))
	return s
}

// Get looks up a session by its string ID.
func (st *Store) Get(id string) (*Session, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[uid]
	return s, ok
}

// Delete closes and forgets a session.
func (st *Store) Delete(id string) bool {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	st.mu.Lock()
	s, ok := st.sessions[uid]
	delete(st.sessions, uid)
	st.mu.Unlock()
	if ok {
		s.Close()
		st.log.Info("session closed", zap.String("session", id))
	}
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close closes every session.
func (st *Store) Close() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = map[uuid.UUID]*Session{}
	st.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
