package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/respondentai/backend/internal/model/dialog"
)

// Store owns the per-user dialog states. Events for one user are serialized:
// Acquire locks that user's entry so the caller can mutate the state and call
// the completion backend without interleaving; states of different users stay
// independent.
type Store struct {
	mu            sync.Mutex
	sessions      map[string]*entry
	defaultPrompt string
	historyLimit  int
}

type entry struct {
	mu    sync.Mutex
	state *dialog.State
}

// NewStore creates a session store seeded with the default persona prompt.
func NewStore(defaultPrompt string, historyLimit int) *Store {
	if historyLimit <= 0 {
		historyLimit = dialog.DefaultHistoryLimit
	}
	return &Store{
		sessions:      make(map[string]*entry),
		defaultPrompt: defaultPrompt,
		historyLimit:  historyLimit,
	}
}

// Acquire returns the state for userID, creating it on first contact, locked
// for exclusive use. The release func must be called once the event has been
// fully handled.
func (s *Store) Acquire(userID string) (*dialog.State, func()) {
	s.mu.Lock()
	e, ok := s.sessions[userID]
	if !ok {
		e = &entry{state: s.freshState()}
		s.sessions[userID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	return e.state, e.mu.Unlock
}

// Reset reinitializes a held state: default system prompt, no persona, empty
// history, closed clarification window. The caller must hold the state via
// Acquire.
func (s *Store) Reset(st *dialog.State) {
	*st = *s.freshState()
}

// Len reports how many user sessions the store tracks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) freshState() *dialog.State {
	return &dialog.State{
		ID:           uuid.NewString(),
		SystemPrompt: s.defaultPrompt,
		HistoryLimit: s.historyLimit,
	}
}
