package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	dialogHandler "github.com/respondentai/backend/internal/handler/dialog"
	personaHandler "github.com/respondentai/backend/internal/handler/persona"
	middlewarePkg "github.com/respondentai/backend/internal/middleware"
	personaModel "github.com/respondentai/backend/internal/model/persona"
	dialogService "github.com/respondentai/backend/internal/service/dialog"
	"github.com/respondentai/backend/internal/service/session"
	"github.com/respondentai/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the dialog services.
func NewRouter(personas personaModel.Catalog, sessions *session.Store, dialogSvc *dialogService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	personaH := personaHandler.New(personas)
	dialogH := dialogHandler.New(dialogSvc)
	wsH := dialogHandler.NewWebSocketHandler(dialogSvc)

	r.Route("/api", func(api chi.Router) {
		personaH.RegisterRoutes(api)

		api.Route("/dialog/{userID}", func(d chi.Router) {
			dialogH.RegisterRoutes(d)
			wsH.RegisterRoutes(d)
		})

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": sessions.Len(),
			})
		})
	})

	return r
}
