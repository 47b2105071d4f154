package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrojas/tienda-backend/internal/httpx"
	"github.com/davidrojas/tienda-backend/internal/session"
)

// CartClearer empties the session's cart when its owner logs out.
type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type Handler struct {
	service  Service
	sessions *session.Manager
	carts    CartClearer
}

func NewHandler(service Service, sessions *session.Manager, carts CartClearer) *Handler {
	return &Handler{service: service, sessions: sessions, carts: carts}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/login", h.loginPage)
	router.Post("/login", h.login)
	router.With(h.sessions.RequireUser).Get("/logout", h.logout)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notices": h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.service.Login(r.Context(), r.FormValue("mail"), r.FormValue("password"))
	if errors.Is(err, ErrInvalidCredentials) {
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Correo o contraseña incorrectos.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Printf("login: %v", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	// Fresh session ID on login; the anonymous session is discarded.
	_ = h.sessions.Destroy(r.Context(), w, s)
	newID, err := h.sessions.Issue(r.Context(), w, session.Identity{
		UserID: u.ID,
		Name:   u.Name,
		Role:   string(u.Role),
	})
	if err != nil {
		log.Printf("issue session: %v", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	h.sessions.Flash(r.Context(), newID, session.NoticeSuccess, "Sesión iniciada.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	if err := h.carts.Clear(r.Context(), s.ID); err != nil {
		log.Printf("clear cart on logout: %v", err)
	}
	if err := h.sessions.Destroy(r.Context(), w, s); err != nil {
		log.Printf("destroy session: %v", err)
	}

	newID, err := h.sessions.Issue(r.Context(), w, session.Identity{})
	if err == nil {
		h.sessions.Flash(r.Context(), newID, session.NoticeSuccess, "Sesión cerrada.")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
