package dialog

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	dialogService "github.com/respondentai/backend/internal/service/dialog"
	"github.com/respondentai/backend/pkg/utils"
)

// Handler exposes the dialog events over HTTP. Every route is keyed by the
// user identifier so independent users never share a session.
type Handler struct {
	dialogSvc *dialogService.Service
}

// New creates the dialog handler.
func New(dialogSvc *dialogService.Service) *Handler {
	return &Handler{dialogSvc: dialogSvc}
}

// userIDPattern bounds user identifiers to path- and file-safe names.
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// RegisterRoutes mounts the dialog event routes. The router is expected to
// carry the {userID} URL parameter.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reset", h.handleReset)
	r.Get("/help", h.handleHelp)
	r.Get("/personas", h.handleListPersonas)
	r.Post("/persona", h.handleChoosePersona)
	r.Post("/message", h.handleMessage)
	r.Post("/summary", h.handleSummary)
	r.Post("/select", h.handleSelect)
}

// handleReset reinitializes the session and returns the greeting menu.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.dialogSvc.Reset(r.Context(), userID))
}

// handleHelp returns the command reference.
func (h *Handler) handleHelp(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.dialogSvc.Help(r.Context(), userID))
}

// handleListPersonas returns the selectable personas as reply options.
func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.dialogSvc.ListPersonas(r.Context(), userID))
}

// handleChoosePersona switches the active persona.
func (h *Handler) handleChoosePersona(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var payload struct {
		PersonaID string `json:"personaId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.PersonaID == "" {
		utils.RespondError(w, http.StatusBadRequest, "personaId is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.dialogSvc.ChoosePersona(r.Context(), userID, payload.PersonaID))
}

// handleMessage processes one free-text message.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.dialogSvc.HandleText(r.Context(), userID, payload.Text))
}

// handleSummary builds the conversation debrief.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.dialogSvc.Summarize(r.Context(), userID))
}

// handleSelect dispatches a menu option echoed back by the client.
func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var payload struct {
		Option string `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Option == "" {
		utils.RespondError(w, http.StatusBadRequest, "option is required")
		return
	}

	reply, err := h.dialogSvc.HandleOption(r.Context(), userID, payload.Option)
	if err != nil {
		if errors.Is(err, dialogService.ErrUnknownOption) {
			utils.RespondError(w, http.StatusBadRequest, "unknown option")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if !userIDPattern.MatchString(userID) {
		utils.RespondError(w, http.StatusBadRequest, "invalid user id")
		return "", false
	}
	return userID, true
}
