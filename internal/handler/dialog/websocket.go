package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/respondentai/backend/internal/model/dialog"
	dialogService "github.com/respondentai/backend/internal/service/dialog"
)

// WebSocketHandler drives the dialog over a websocket connection: inbound
// frames carry events, outbound frames carry replies. The read loop handles
// one event at a time, so a user's events stay ordered per connection.
type WebSocketHandler struct {
	dialogSvc *dialogService.Service
	upgrader  websocket.Upgrader
}

// NewWebSocketHandler creates the websocket dialog handler.
func NewWebSocketHandler(dialogSvc *dialogService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		dialogSvc: dialogSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint. The router is expected to
// carry the {userID} URL parameter.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outgoingEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// wsConn serializes writes: the ping loop and the reply path share the
// connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !userIDPattern.MatchString(userID) {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer raw.Close()

	log.Printf("[websocket] connected user=%s", userID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	raw.SetReadDeadline(time.Now().Add(readTimeout))
	raw.SetPongHandler(func(string) error {
		raw.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	conn := &wsConn{conn: raw}
	go h.pingLoop(ctx, conn)

	h.send(conn, outgoingEvent{
		Type:      "connected",
		Data:      map[string]string{"userId": userID},
		Timestamp: time.Now().Unix(),
	})

	for {
		var evt inboundEvent
		if err := raw.ReadJSON(&evt); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[websocket] read error user=%s: %v", userID, err)
			}
			return
		}

		raw.SetReadDeadline(time.Now().Add(readTimeout))

		reply, err := h.dispatch(ctx, userID, evt)
		if err != nil {
			h.sendError(conn, err.Error())
			continue
		}
		h.sendReply(conn, reply)
	}
}

// dispatch maps an inbound frame to a dialog event.
func (h *WebSocketHandler) dispatch(ctx context.Context, userID string, evt inboundEvent) (dialog.Reply, error) {
	switch evt.Type {
	case "reset":
		return h.dialogSvc.Reset(ctx, userID), nil
	case "help":
		return h.dialogSvc.Help(ctx, userID), nil
	case "personas":
		return h.dialogSvc.ListPersonas(ctx, userID), nil
	case "persona":
		var payload struct {
			PersonaID string `json:"personaId"`
		}
		if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.PersonaID == "" {
			return dialog.Reply{}, fmt.Errorf("personaId is required")
		}
		return h.dialogSvc.ChoosePersona(ctx, userID, payload.PersonaID), nil
	case "message":
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(evt.Data, &payload); err != nil || strings.TrimSpace(payload.Text) == "" {
			return dialog.Reply{}, fmt.Errorf("text is required")
		}
		return h.dialogSvc.HandleText(ctx, userID, payload.Text), nil
	case "summary":
		return h.dialogSvc.Summarize(ctx, userID), nil
	case "select":
		var payload struct {
			Option string `json:"option"`
		}
		if err := json.Unmarshal(evt.Data, &payload); err != nil || payload.Option == "" {
			return dialog.Reply{}, fmt.Errorf("option is required")
		}
		return h.dialogSvc.HandleOption(ctx, userID, payload.Option)
	default:
		return dialog.Reply{}, fmt.Errorf("unsupported event type: %s", evt.Type)
	}
}

func (h *WebSocketHandler) sendReply(conn *wsConn, reply dialog.Reply) {
	h.send(conn, outgoingEvent{
		Type:      "reply",
		Data:      reply,
		Timestamp: time.Now().Unix(),
	})
}

func (h *WebSocketHandler) sendError(conn *wsConn, message string) {
	h.send(conn, outgoingEvent{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	})
}

func (h *WebSocketHandler) send(conn *wsConn, evt outgoingEvent) {
	if err := conn.writeJSON(evt); err != nil {
		log.Printf("[websocket] write failed: %v", err)
	}
}

// pingLoop keeps the connection alive until the context ends.
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *wsConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
