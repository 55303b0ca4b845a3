package dialog

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	dialogModel "github.com/respondentai/backend/internal/model/dialog"
	"github.com/respondentai/backend/internal/model/persona"
	dialogService "github.com/respondentai/backend/internal/service/dialog"
	"github.com/respondentai/backend/internal/service/session"
)

func setupWebSocketHandler(completer staticCompleter) *WebSocketHandler {
	catalog := persona.NewMemoryCatalog(
		persona.Persona{Prompt: "Ты — респондент."},
		[]persona.Persona{{ID: "it_engineer", Title: "IT-инженер", Prompt: "Ты — инженер."}},
	)
	sessions := session.NewStore(catalog.Default().Prompt, dialogModel.DefaultHistoryLimit)
	return NewWebSocketHandler(dialogService.NewService(catalog, sessions, completer, nopTranscript{}))
}

func TestDispatchMessageEvent(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{text: "ответ"})

	evt := inboundEvent{Type: "message", Data: json.RawMessage(`{"text":"вопрос"}`)}
	reply, err := h.dispatch(context.Background(), "u1", evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "ответ" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatchResetEvent(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{})

	reply, err := h.dispatch(context.Background(), "u1", inboundEvent{Type: "reset"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Options) != 3 {
		t.Fatalf("expected start menu options, got %+v", reply.Options)
	}
}

func TestDispatchPersonaEvent(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{})

	evt := inboundEvent{Type: "persona", Data: json.RawMessage(`{"personaId":"it_engineer"}`)}
	reply, err := h.dispatch(context.Background(), "u1", evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "Персона установлена: *IT-инженер*") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestDispatchPersonaEventRequiresID(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{})

	evt := inboundEvent{Type: "persona", Data: json.RawMessage(`{}`)}
	if _, err := h.dispatch(context.Background(), "u1", evt); err == nil {
		t.Fatal("expected error for missing personaId")
	}
}

func TestDispatchMessageEventRequiresText(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{})

	evt := inboundEvent{Type: "message", Data: json.RawMessage(`{"text":" "}`)}
	if _, err := h.dispatch(context.Background(), "u1", evt); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestDispatchUnsupportedEvent(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{})

	_, err := h.dispatch(context.Background(), "u1", inboundEvent{Type: "audio"})
	if err == nil || !strings.Contains(err.Error(), "unsupported event type") {
		t.Fatalf("expected unsupported event error, got %v", err)
	}
}

func TestDispatchSelectEvent(t *testing.T) {
	h := setupWebSocketHandler(staticCompleter{})

	evt := inboundEvent{Type: "select", Data: json.RawMessage(`{"option":"back_home"}`)}
	reply, err := h.dispatch(context.Background(), "u1", evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "Готово. Можешь начать чат или выбрать персону." {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}
