package dialog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	dialogModel "github.com/respondentai/backend/internal/model/dialog"
	"github.com/respondentai/backend/internal/model/persona"
	dialogService "github.com/respondentai/backend/internal/service/dialog"
	"github.com/respondentai/backend/internal/service/session"
)

type staticCompleter struct {
	text string
	err  error
}

func (c staticCompleter) Complete(context.Context, []*schema.Message, int) (string, error) {
	return c.text, c.err
}

type nopTranscript struct{}

func (nopTranscript) Append(string, string, string) {}

func setupRouter(completer staticCompleter) *chi.Mux {
	catalog := persona.NewMemoryCatalog(
		persona.Persona{Prompt: "Ты — респондент."},
		[]persona.Persona{{ID: "it_engineer", Title: "IT-инженер", Prompt: "Ты — инженер."}},
	)
	sessions := session.NewStore(catalog.Default().Prompt, dialogModel.DefaultHistoryLimit)
	svc := dialogService.NewService(catalog, sessions, completer, nopTranscript{})

	r := chi.NewRouter()
	r.Route("/dialog/{userID}", func(d chi.Router) {
		New(svc).RegisterRoutes(d)
	})
	return r
}

func postJSON(r *chi.Mux, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeReply(t *testing.T, resp *httptest.ResponseRecorder) dialogModel.Reply {
	t.Helper()
	var reply dialogModel.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return reply
}

func TestResetEndpoint(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/reset", nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	reply := decodeReply(t, resp)
	if !strings.HasPrefix(reply.Text, "Привет!") {
		t.Fatalf("expected greeting, got %q", reply.Text)
	}
	if len(reply.Options) != 3 {
		t.Fatalf("expected 3 menu options, got %d", len(reply.Options))
	}
}

func TestMessageEndpoint(t *testing.T) {
	r := setupRouter(staticCompleter{text: "ответ от персоны"})

	resp := postJSON(r, "/dialog/u1/message", map[string]string{"text": "почему этот тариф?"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if reply := decodeReply(t, resp); reply.Text != "ответ от персоны" {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestMessageEndpointRequiresText(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/message", map[string]string{"text": "   "})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChoosePersonaEndpoint(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/persona", map[string]string{"personaId": "it_engineer"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if reply := decodeReply(t, resp); !strings.Contains(reply.Text, "Персона установлена") {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestChoosePersonaEndpointUnknownID(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/persona", map[string]string{"personaId": "nobody"})

	// Lookup misses are a handled reply, not a transport error.
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if reply := decodeReply(t, resp); reply.Text != "Не нашёл такую персону. Попробуй ещё раз." {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestChoosePersonaEndpointMissingID(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/persona", map[string]string{})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSummaryEndpointEmptyHistory(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/summary", nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if reply := decodeReply(t, resp); reply.Text != "Пока нечего суммировать — напиши пару вопросов." {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestSelectEndpoint(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/select", map[string]string{"option": "begin_chat"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if reply := decodeReply(t, resp); reply.Text != "Ок, пиши вопрос. Я отвечу от лица выбранной персоны." {
		t.Fatalf("unexpected reply: %q", reply.Text)
	}
}

func TestSelectEndpointUnknownOption(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/u1/select", map[string]string{"option": "mystery"})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHelpEndpoint(t *testing.T) {
	r := setupRouter(staticCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/dialog/u1/help", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if reply := decodeReply(t, resp); !strings.Contains(reply.Text, "/summary") {
		t.Fatalf("unexpected help text: %q", reply.Text)
	}
}

func TestListPersonasEndpoint(t *testing.T) {
	r := setupRouter(staticCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/dialog/u1/personas", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	reply := decodeReply(t, resp)
	if len(reply.Options) != 2 {
		t.Fatalf("expected persona plus back option, got %+v", reply.Options)
	}
	if reply.Options[0].ID != "persona:it_engineer" {
		t.Fatalf("unexpected option id: %q", reply.Options[0].ID)
	}
}

func TestRejectsInvalidUserID(t *testing.T) {
	r := setupRouter(staticCompleter{})

	resp := postJSON(r, "/dialog/bad%20id/reset", nil)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
