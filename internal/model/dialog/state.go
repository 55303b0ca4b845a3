package dialog

import "github.com/respondentai/backend/internal/model/persona"

// DefaultHistoryLimit caps how many user/assistant turns a session retains.
const DefaultHistoryLimit = 8

// State captures one user's transient conversation: the active persona, the
// audience clarification and the bounded history. It is mutated only while
// the per-user session lock is held.
type State struct {
	ID                    string    `json:"id"`
	PersonaID             string    `json:"personaId,omitempty"`
	PersonaTitle          string    `json:"personaTitle,omitempty"`
	SystemPrompt          string    `json:"systemPrompt"`
	SegmentDetail         string    `json:"segmentDetail,omitempty"`
	AwaitingSegmentDetail bool      `json:"awaitingSegmentDetail"`
	History               []Message `json:"history"`
	HistoryLimit          int       `json:"-"`
}

// Push appends a turn and evicts the oldest entries once the cap is exceeded.
func (s *State) Push(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
	if s.HistoryLimit > 0 && len(s.History) > s.HistoryLimit {
		s.History = s.History[len(s.History)-s.HistoryLimit:]
	}
}

// ApplyPersona switches the session to the given persona. The history and any
// previous audience clarification are discarded and the clarification window
// opens for the next free-text message.
func (s *State) ApplyPersona(p persona.Persona) {
	s.PersonaID = p.ID
	s.PersonaTitle = p.Title
	s.SystemPrompt = p.Prompt
	s.SegmentDetail = ""
	s.AwaitingSegmentDetail = true
	s.History = nil
}
