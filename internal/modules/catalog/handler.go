package catalog

import (
	"errors"
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
	router.Get("/", h.index)
	router.Get("/about", h.about)

	router.Group(func(r chi.Router) {
		r.Use(h.sessions.RequireUser)
		r.Get("/productos", h.storefront)
		r.Post("/crear", h.create)
		r.Get("/editar/{id}", h.editPage)
		r.Post("/editar/{id}", h.edit)
		r.Post("/actualizar/{id}", h.update)
		r.Post("/eliminar/{id}", h.delete)
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"notices":  h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"name":        "Tienda",
		"description": "Catálogo, carrito y ventas con inventario sincronizado a archivos.",
	})
}

// storefront lists only products with stock, the shop view.
func (h *Handler) storefront(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	products, err := h.service.ListAvailableProducts(r.Context())
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"notices":  h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	name, category, quantity, price, err := productForm(r)
	if err != nil {
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Cantidad o precio no válidos.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if _, err := h.service.CreateProduct(r.Context(), name, category, quantity, price); err != nil {
		h.flashError(w, r, err, "/dashboard")
		return
	}
	h.sessions.Flash(r.Context(), s.ID, session.NoticeSuccess, "Producto agregado correctamente.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// editPage returns the product to prefill the edit form.
func (h *Handler) editPage(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.service.GetProduct(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Producto no encontrado.")
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"product": p,
		"notices": h.sessions.PopFlashes(r.Context(), s.ID),
	})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	h.applyUpdate(w, r, "/productos", "Producto actualizado correctamente.")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.applyUpdate(w, r, "/dashboard", "Producto actualizado correctamente.")
}

func (h *Handler) applyUpdate(w http.ResponseWriter, r *http.Request, redirect, success string) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	name, category, quantity, price, err := productForm(r)
	if err != nil {
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Cantidad o precio no válidos.")
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	if err := h.service.UpdateProduct(r.Context(), id, name, category, quantity, price); err != nil {
		h.flashError(w, r, err, redirect)
		return
	}
	h.sessions.Flash(r.Context(), s.ID, session.NoticeInfo, success)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := httpx.IDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.flashError(w, r, err, "/productos")
		return
	}
	h.sessions.Flash(r.Context(), s.ID, session.NoticeInfo, "Producto eliminado.")
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *Handler) flashError(w http.ResponseWriter, r *http.Request, err error, redirect string) {
	s := session.FromContext(r.Context())
	switch {
	case errors.Is(err, ErrNotFound):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Producto no encontrado.")
	case errors.Is(err, ErrInvalidProduct):
		h.sessions.Flash(r.Context(), s.ID, session.NoticeWarning, "Datos del producto no válidos.")
	default:
		h.sessions.Flash(r.Context(), s.ID, session.NoticeDanger, "Error al guardar el producto.")
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func productForm(r *http.Request) (name, category string, quantity int, price float64, err error) {
	if err = r.ParseForm(); err != nil {
		return
	}
	quantity, err = strconv.Atoi(r.FormValue("cantidad"))
	if err != nil {
		return
	}
	price, err = strconv.ParseFloat(r.FormValue("precio"), 64)
	if err != nil {
		return
	}
	return r.FormValue("nombre"), r.FormValue("categoria"), quantity, price, nil
}
