package mirror

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrojas/tienda-backend/internal/httpx"
)

// Handler serves the read-only report routes backed by the mirror files.
type Handler struct {
	mirror *Mirror
}

func NewHandler(m *Mirror) *Handler {
	return &Handler{mirror: m}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/productos_txt", h.fromText)
	router.Get("/productos_json", h.fromJSON)
	router.Get("/productos_csv", h.fromCSV)
}

func (h *Handler) fromText(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"source":   "txt",
		"products": h.mirror.ReadText(),
	})
}

func (h *Handler) fromJSON(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"source":   "json",
		"products": h.mirror.ReadJSON(),
	})
}

func (h *Handler) fromCSV(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"source":   "csv",
		"products": h.mirror.ReadCSV(),
	})
}
