package cart

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

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
	router.Group(func(r chi.Router) {
		r.Use(h.sessions.RequireUser)
		r.Get("/carrito", h.view)
		r.Post("/agregar_carrito/{id}", h.add)
		r.Post("/actualizar_carrito/{id}", h.setQuantity)
		r.Get("/eliminar_carrito/{id}", h.remove)
	})
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	items, err := h.service.Get(r.Context(), s.ID)
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"total":   items.Total(),
		"notices": h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	item, created, err := h.service.Add(r.Context(), s.ID, id)
	switch {
	case errors.Is(err, ErrProductNotFound):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Producto no encontrado.")
	case errors.Is(err, ErrOutOfStock):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Producto sin stock disponible.")
	case errors.Is(err, ErrStockInsufficient):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Stock insuficiente.")
	case err != nil:
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	case created:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeSuccess,
			fmt.Sprintf("%s agregado al carrito.", item.Name))
	default:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeInfo,
			fmt.Sprintf("%s +1 en el carrito.", item.Name))
	}
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := strconv.Atoi(r.FormValue("cantidad"))
	if err != nil {
		// Malformed quantity: reject and keep the cart as it was.
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Cantidad no válida.")
		http.Redirect(w, r, "/carrito", http.StatusSeeOther)
		return
	}

	removed, err := h.service.SetQuantity(r.Context(), s.ID, id, n)
	switch {
	case errors.Is(err, ErrStockInsufficient):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Stock insuficiente.")
	case errors.Is(err, ErrProductNotFound):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Producto no encontrado.")
	case err != nil:
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	case removed:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Producto eliminado del carrito.")
	default:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeInfo, "Cantidad actualizada en el carrito.")
	}
	http.Redirect(w, r, "/carrito", http.StatusSeeOther)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), s.ID, id); err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Producto eliminado del carrito.")
	http.Redirect(w, r, "/carrito", http.StatusSeeOther)
}
