package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrojas/tienda-backend/internal/httpx"
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
	router.Get("/register", h.registerPage)
	router.Post("/register", h.register)
	router.With(h.sessions.RequireRole(string(RoleAdministrator))).
		Post("/eliminar_usuario/{id}", h.deleteUser)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"roles":   []Role{RoleAdministrator, RoleEmployee, RoleClient},
		"notices": h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	role := ParseRole(r.FormValue("rol"))
	_, err := h.service.RegisterUser(r.Context(),
		r.FormValue("nombre"), r.FormValue("mail"), r.FormValue("password"), role)
	switch {
	case errors.Is(err, ErrEmailTaken):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Ese correo ya está registrado.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, ErrInvalidInput):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Completa todos los campos.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Error al registrar usuario.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeSuccess, "Usuario registrado con éxito.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	switch err := h.service.DeleteUser(r.Context(), id); {
	case errors.Is(err, ErrNotFound):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Usuario no encontrado.")
	case err != nil:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Error al eliminar usuario.")
	default:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeSuccess, "Usuario eliminado correctamente.")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
