package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog exposes persona retrieval for the dialog flow and HTTP handlers.
type Catalog interface {
	Default() Persona
	FindByID(id string) (Persona, bool)
	List() []Persona
}

// MemoryCatalog implements Catalog with an in-memory snapshot loaded at startup.
type MemoryCatalog struct {
	def   Persona
	items []Persona
}

// NewMemoryCatalog returns a MemoryCatalog with the supplied default persona
// and selectable library.
func NewMemoryCatalog(def Persona, items []Persona) *MemoryCatalog {
	return &MemoryCatalog{def: def, items: append([]Persona(nil), items...)}
}

// Default returns the persona used before any explicit selection.
func (c *MemoryCatalog) Default() Persona {
	return c.def
}

// FindByID looks up a library persona by identifier.
func (c *MemoryCatalog) FindByID(id string) (Persona, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}

// List returns the library personas in catalog order.
func (c *MemoryCatalog) List() []Persona {
	return append([]Persona(nil), c.items...)
}

// Load reads the default persona and the selectable library from two JSON
// files. Any unreadable or malformed source is an error; the caller treats
// that as fatal at startup.
func Load(defaultPath, libraryPath string) (*MemoryCatalog, error) {
	def, err := loadDefault(defaultPath)
	if err != nil {
		return nil, err
	}
	items, err := loadLibrary(libraryPath)
	if err != nil {
		return nil, err
	}
	return NewMemoryCatalog(def, items), nil
}

func loadDefault(path string) (Persona, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("read default persona: %w", err)
	}
	var def Persona
	if err := json.Unmarshal(raw, &def); err != nil {
		return Persona{}, fmt.Errorf("parse default persona %s: %w", path, err)
	}
	if strings.TrimSpace(def.Prompt) == "" {
		return Persona{}, fmt.Errorf("default persona %s: prompt is required", path)
	}
	return def, nil
}

func loadLibrary(path string) ([]Persona, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona library: %w", err)
	}
	var items []Persona
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse persona library %s: %w", path, err)
	}
	for i, item := range items {
		if item.ID == "" || item.Title == "" || strings.TrimSpace(item.Prompt) == "" {
			return nil, fmt.Errorf("persona library %s: entry %d must have id, title and prompt", path, i)
		}
	}
	return items, nil
}
