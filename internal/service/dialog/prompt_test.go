package dialog

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/respondentai/backend/internal/model/dialog"
)

func TestBuildMessagesAppendsSegmentSuffix(t *testing.T) {
	st := &dialog.State{
		SystemPrompt:  "Ты — респондент.",
		SegmentDetail: "мамы детей до года",
		HistoryLimit:  dialog.DefaultHistoryLimit,
	}

	msgs := BuildMessages(st)

	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != schema.System {
		t.Fatalf("expected system role, got %q", msgs[0].Role)
	}
	if !strings.HasSuffix(msgs[0].Content, "\nКонтекст уточнения аудитории: мамы детей до года") {
		t.Fatalf("missing segment suffix in system prompt: %q", msgs[0].Content)
	}
}

func TestBuildMessagesWithoutSegmentDetail(t *testing.T) {
	st := &dialog.State{SystemPrompt: "Ты — респондент.", HistoryLimit: dialog.DefaultHistoryLimit}

	msgs := BuildMessages(st)

	if msgs[0].Content != "Ты — респондент." {
		t.Fatalf("expected raw system prompt, got %q", msgs[0].Content)
	}
}

func TestBuildMessagesKeepsHistoryOrder(t *testing.T) {
	st := &dialog.State{SystemPrompt: "база", HistoryLimit: dialog.DefaultHistoryLimit}
	st.Push(dialog.RoleUser, "первый вопрос")
	st.Push(dialog.RoleAssistant, "первый ответ")
	st.Push(dialog.RoleUser, "второй вопрос")

	msgs := BuildMessages(st)

	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	wantRoles := []schema.RoleType{schema.System, schema.User, schema.Assistant, schema.User}
	for i, role := range wantRoles {
		if msgs[i].Role != role {
			t.Fatalf("message %d: expected role %q, got %q", i, role, msgs[i].Role)
		}
	}
	if msgs[1].Content != "первый вопрос" || msgs[3].Content != "второй вопрос" {
		t.Fatalf("history order lost: %q, %q", msgs[1].Content, msgs[3].Content)
	}
}

func TestBuildSummaryMessagesUsesRawPromptAndInstruction(t *testing.T) {
	st := &dialog.State{
		SystemPrompt:  "Ты — инженер.",
		SegmentDetail: "senior backend",
		HistoryLimit:  dialog.DefaultHistoryLimit,
	}
	st.Push(dialog.RoleUser, "вопрос")
	st.Push(dialog.RoleAssistant, "ответ")

	msgs := BuildSummaryMessages(st)

	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "Ты — инженер." {
		t.Fatalf("summary must use the raw system prompt, got %q", msgs[0].Content)
	}

	last := msgs[len(msgs)-1]
	if last.Role != schema.User {
		t.Fatalf("expected trailing user instruction, got role %q", last.Role)
	}
	if !strings.Contains(last.Content, "3–5 пунктов инсайтов") {
		t.Fatalf("unexpected summary instruction: %q", last.Content)
	}
}
