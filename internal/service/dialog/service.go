package dialog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/respondentai/backend/internal/model/dialog"
	"github.com/respondentai/backend/internal/model/persona"
	"github.com/respondentai/backend/internal/service/llm"
	"github.com/respondentai/backend/internal/service/session"
	"github.com/respondentai/backend/internal/service/transcript"
)

// Token budgets for the two request kinds.
const (
	chatMaxTokens    = 200
	summaryMaxTokens = 350
)

// ErrUnknownOption reports a select event whose option id was never offered.
var ErrUnknownOption = errors.New("unknown option")

// Service is the conversation state machine: it owns the session store and
// turns transport events into replies. Backend failures surface as fallback
// texts and never escape to the transport layer.
type Service struct {
	catalog     persona.Catalog
	sessions    *session.Store
	completer   llm.Completer
	transcripts transcript.Logger
}

// NewService wires the conversation controller.
func NewService(catalog persona.Catalog, sessions *session.Store, completer llm.Completer, transcripts transcript.Logger) *Service {
	return &Service{
		catalog:     catalog,
		sessions:    sessions,
		completer:   completer,
		transcripts: transcripts,
	}
}

// Reset reinitializes the user's session and replies with the greeting and
// the start menu.
func (s *Service) Reset(_ context.Context, userID string) dialog.Reply {
	st, release := s.sessions.Acquire(userID)
	defer release()

	s.sessions.Reset(st)
	log.Printf("[dialog] session reset user=%s session=%s", userID, st.ID)

	return startMenuReply()
}

// Help replies with the command reference. No state change.
func (s *Service) Help(_ context.Context, _ string) dialog.Reply {
	return dialog.Reply{Text: helpText}
}

// ListPersonas replies with the selectable persona titles plus a back option.
// No state change.
func (s *Service) ListPersonas(_ context.Context, _ string) dialog.Reply {
	personas := s.catalog.List()

	options := make([]dialog.Option, 0, len(personas)+1)
	for _, p := range personas {
		options = append(options, dialog.Option{ID: personaOptionPrefix + p.ID, Label: p.Title})
	}
	options = append(options, dialog.Option{ID: optionBackHome, Label: backLabel})

	return dialog.Reply{Text: pickPersonaText, Options: options}
}

// ChoosePersona switches the session to the persona with the given id, clears
// the conversation and opens the clarification window. An unknown id leaves
// the session untouched.
func (s *Service) ChoosePersona(_ context.Context, userID, personaID string) dialog.Reply {
	p, ok := s.catalog.FindByID(personaID)
	if !ok {
		log.Printf("[dialog] persona lookup miss user=%s persona=%s", userID, personaID)
		return dialog.Reply{Text: personaNotFoundText}
	}

	st, release := s.sessions.Acquire(userID)
	defer release()

	st.ApplyPersona(p)
	log.Printf("[dialog] persona set user=%s session=%s persona=%s", userID, st.ID, p.ID)

	return dialog.Reply{Text: fmt.Sprintf(personaAppliedFormat, p.Title, segmentQuestion(p.ID))}
}

// HandleText processes a free-text message: a restart phrase resets the
// session, an open clarification window captures the text as segment detail,
// anything else is a chat turn answered by the completion backend.
func (s *Service) HandleText(ctx context.Context, userID, text string) dialog.Reply {
	text = strings.TrimSpace(text)

	st, release := s.sessions.Acquire(userID)
	defer release()

	if isRestartPhrase(text) {
		s.sessions.Reset(st)
		log.Printf("[dialog] session restarted by phrase user=%s session=%s", userID, st.ID)
		return startMenuReply()
	}

	if st.AwaitingSegmentDetail {
		st.AwaitingSegmentDetail = false
		st.SegmentDetail = text
		log.Printf("[dialog] segment detail captured user=%s session=%s", userID, st.ID)
		return dialog.Reply{Text: detailCapturedText}
	}

	st.Push(dialog.RoleUser, text)

	answer, err := s.completer.Complete(ctx, BuildMessages(st), chatMaxTokens)
	if err != nil {
		log.Printf("[dialog] chat completion failed user=%s session=%s: %v", userID, st.ID, err)
		answer = chatFailureText
	} else {
		st.Push(dialog.RoleAssistant, answer)
	}

	s.transcripts.Append(userID, text, answer)
	return dialog.Reply{Text: answer}
}

// Summarize builds the structured debrief of the current conversation. The
// exchange is recorded in the transcript but never enters the history.
func (s *Service) Summarize(ctx context.Context, userID string) dialog.Reply {
	st, release := s.sessions.Acquire(userID)
	defer release()

	if len(st.History) == 0 {
		return dialog.Reply{Text: nothingToSummarizeText}
	}

	report, err := s.completer.Complete(ctx, BuildSummaryMessages(st), summaryMaxTokens)
	if err != nil {
		log.Printf("[dialog] summary completion failed user=%s session=%s: %v", userID, st.ID, err)
		s.transcripts.Append(userID, summaryLogMarker, summaryFailureText)
		return dialog.Reply{Text: summaryFailureText}
	}

	s.transcripts.Append(userID, summaryLogMarker, report)
	log.Printf("[dialog] summary built user=%s session=%s length=%d", userID, st.ID, len(report))

	title := st.PersonaTitle
	if title == "" {
		title = noPersonaTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, summaryIntroFormat, title)
	if st.SegmentDetail != "" {
		b.WriteString(summarySegmentLabel)
		b.WriteString(st.SegmentDetail)
	}
	b.WriteString(summaryReportHeader)
	b.WriteString(report)

	return dialog.Reply{Text: b.String()}
}

// HandleOption dispatches a selected menu option. The transport echoes the
// option id from a previous reply; ids that were never offered yield
// ErrUnknownOption.
func (s *Service) HandleOption(ctx context.Context, userID, option string) (dialog.Reply, error) {
	switch {
	case option == optionPickPersona:
		return s.ListPersonas(ctx, userID), nil
	case strings.HasPrefix(option, personaOptionPrefix):
		return s.ChoosePersona(ctx, userID, strings.TrimPrefix(option, personaOptionPrefix)), nil
	case option == optionBeginChat:
		return dialog.Reply{Text: beginChatText}, nil
	case option == optionSummaryHint:
		return dialog.Reply{Text: summaryHintText}, nil
	case option == optionBackHome:
		return dialog.Reply{Text: backHomeText}, nil
	default:
		return dialog.Reply{}, fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
}

func startMenuReply() dialog.Reply {
	return dialog.Reply{
		Text: greetingText,
		Options: []dialog.Option{
			{ID: optionPickPersona, Label: pickPersonaLabel},
			{ID: optionBeginChat, Label: beginChatLabel},
			{ID: optionSummaryHint, Label: summaryHintLabel},
		},
	}
}

func isRestartPhrase(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range restartPhrases {
		if lowered == phrase {
			return true
		}
	}
	return false
}
