package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/engine"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrFull     = errors.New("too many sessions")
)

// ResolveFunc turns per-session overrides into an engine config.
type ResolveFunc func(config.Overrides) (engine.Config, error)

// Store keeps one independent board per session id, in memory only.
type Store struct {
	mu      sync.RWMutex
	boards  map[string]*engine.Engine
	resolve ResolveFunc
	max     int
}

// NewStore creates a store; limit <= 0 means unlimited.
func NewStore(resolve ResolveFunc, limit int) *Store {
	return &Store{
		boards:  make(map[string]*engine.Engine),
		resolve: resolve,
		max:     limit,
	}
}

// Create builds a fresh board and returns its id.
func (s *Store) Create(o config.Overrides) (string, *engine.Engine, error) {
	cfg, err := s.resolve(o)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.boards) >= s.max {
		return "", nil, ErrFull
	}
	id := uuid.NewString()
	e := engine.New(cfg)
	s.boards[id] = e
	return id, e, nil
}

func (s *Store) Get(id string) (*engine.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Delete drops a board and disarms its reveal timer.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.boards[id]
	delete(s.boards, id)
	s.mu.Unlock()
	if ok {
		e.Close()
	}
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boards)
}

// Close disarms every board.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.boards {
		e.Close()
		delete(s.boards, id)
	}
}
