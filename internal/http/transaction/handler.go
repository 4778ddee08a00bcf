package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/ledger"
)

type Handler struct {
	ledgerSvc *ledger.Service
}

func NewHandler(ledgerSvc *ledger.Service) *Handler {
	return &Handler{ledgerSvc: ledgerSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Patch("/{id}/classification", h.reclassify)
}

// list returns persisted transactions, optionally filtered by type and date
// range. Future installments are excluded unless include_future=true, since
// dashboards usually want realized activity only.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter ledger.ListFilter

	if v := r.URL.Query().Get("type"); v != "" {
		t := ledger.Type(v)
		if t != ledger.TypeIncome && t != ledger.TypeExpense {
			http.Error(w, "type must be income or expense", http.StatusBadRequest)
			return
		}

		filter.Type = &t
	}

	if v := r.URL.Query().Get("start_date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			http.Error(w, "bad start_date: "+err.Error(), http.StatusBadRequest)
			return
		}

		filter.StartDate = &d
	}

	if v := r.URL.Query().Get("end_date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			http.Error(w, "bad end_date: "+err.Error(), http.StatusBadRequest)
			return
		}

		filter.EndDate = &d
	}

	filter.IncludeFuture = r.URL.Query().Get("include_future") == "true"

	txs, err := h.ledgerSvc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type reclassifyRequest struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (h *Handler) reclassify(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req reclassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ledgerSvc.Reclassify(r.Context(), id, req.Category, req.Tags); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
