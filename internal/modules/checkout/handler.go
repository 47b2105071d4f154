package checkout

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrojas/tienda-backend/internal/httpx"
	"github.com/davidrojas/tienda-backend/internal/modules/cart"
	"github.com/davidrojas/tienda-backend/internal/modules/user"
	"github.com/davidrojas/tienda-backend/internal/session"
)

type Handler struct {
	service  Service
	carts    cart.Service
	sessions *session.Manager
}

func NewHandler(service Service, carts cart.Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, carts: carts, sessions: sessions}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Group(func(r chi.Router) {
		r.Use(h.sessions.RequireUser)
		r.Post("/finalizar_compra", h.checkout)
		r.Get("/detalle_venta/{id}", h.saleDetail)
	})
	router.With(h.sessions.RequireRole(string(user.RoleAdministrator))).
		Post("/eliminar_venta/{id}", h.deleteSale)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	items, err := h.carts.Get(r.Context(), s.ID)
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	_, err = h.service.Checkout(r.Context(), s.Identity.UserID, items)
	switch {
	case errors.Is(err, ErrEmptyCart):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Tu carrito está vacío.")
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	case errors.Is(err, ErrStockDepleted):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger,
			"Stock insuficiente: otro cliente se adelantó. Revisa tu carrito.")
		http.Redirect(w, r, "/carrito", http.StatusSeeOther)
		return
	case err != nil:
		log.Printf("checkout: %v", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := h.carts.Clear(r.Context(), s.ID); err != nil {
		log.Printf("clear cart after checkout: %v", err)
	}
	h.sessions.Flash(r.Context(), s.ID, session.NoticeSuccess, "¡Compra realizada con éxito!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) saleDetail(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid sale id", http.StatusBadRequest)
		return
	}

	detail, err := h.service.SaleDetail(r.Context(), id)
	if errors.Is(err, ErrSaleNotFound) {
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Venta no encontrada.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"detail":  detail,
		"notices": h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid sale id", http.StatusBadRequest)
		return
	}

	switch err := h.service.DeleteSale(r.Context(), id); {
	case errors.Is(err, ErrSaleNotFound):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Venta no encontrada.")
	case err != nil:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Error al eliminar la venta.")
	default:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeSuccess, "Venta eliminada correctamente.")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
