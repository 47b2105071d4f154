package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrojas/tienda-backend/internal/httpx"
	"github.com/davidrojas/tienda-backend/internal/modules/user"
	"github.com/davidrojas/tienda-backend/internal/session"
)

type Handler struct {
	service  Service
	sessions *session.Manager
}

func NewHandler(service Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.With(h.sessions.RequireUser).Get("/dashboard", h.dashboard)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	view, err := h.service.ForUser(r.Context(), s.Identity.UserID, user.ParseRole(s.Identity.Role))
	if errors.Is(err, ErrUnknownRole) {
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Rol de usuario no reconocido.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"dashboard": view,
		"notices":   h.sessions.PopFlashes(r.Context(), s.ID),
	})
}
