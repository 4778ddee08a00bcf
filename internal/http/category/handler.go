package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/category"
)

type Handler struct {
	categorySvc *category.Service
}

func NewHandler(categorySvc *category.Service) *Handler {
	return &Handler{categorySvc: categorySvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type categoryResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	MonthlyCeilingCents int64     `json:"monthly_ceiling_cents"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categorySvc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, categoryResponse{
			ID:                  c.ID,
			Name:                c.Name,
			Type:                string(c.Type),
			MonthlyCeilingCents: c.MonthlyCeilingCents,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
