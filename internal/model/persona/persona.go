package persona

// Persona is a named system prompt defining a synthetic respondent.
// The default persona carries only the fallback prompt; library personas
// additionally have an identifier and a human-readable title.
type Persona struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title,omitempty"`
	Prompt string `json:"prompt"`
}
