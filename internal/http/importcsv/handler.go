package importcsv

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/centavo-app/centavo/internal/importer"
	"github.com/centavo-app/centavo/internal/ledger"
	"github.com/centavo-app/centavo/internal/statement"
)

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
	r.Post("/confirm", h.confirm)
}

type candidateDTO struct {
	Date              string   `json:"date"`
	Description       string   `json:"description"`
	AmountCents       int64    `json:"amount_cents"`
	Category          string   `json:"category"`
	Tags              []string `json:"tags"`
	Type              string   `json:"type"`
	Skipped           bool     `json:"skipped"`
	DisableEdit       bool     `json:"disable_edit"`
	FutureInstallment bool     `json:"future_installment"`
	Line              int      `json:"line"`
}

type rowErrorDTO struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type previewResponse struct {
	Format     statement.Format `json:"format"`
	Candidates []candidateDTO   `json:"candidates"`
	Errors     []rowErrorDTO    `json:"errors"`
}

type confirmRequest struct {
	Candidates []candidateDTO `json:"candidates"`
}

type resultResponse struct {
	Tier               importer.Tier `json:"tier"`
	Message            string        `json:"message"`
	Imported           int           `json:"imported"`
	Duplicates         int           `json:"duplicates"`
	FutureInstallments int           `json:"future_installments"`
	Errors             []rowErrorDTO `json:"errors"`
}

// preview accepts a multipart upload ("file" plus optional "format") and
// returns the classified candidates for the review grid without persisting
// anything.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := statement.Format(r.FormValue("format"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	preview, err := h.importSvc.Preview(r.Context(), format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := previewResponse{
		Format:     preview.Format,
		Candidates: make([]candidateDTO, 0, len(preview.Candidates)),
		Errors:     toErrorDTOs(preview.Errors),
	}
	for _, c := range preview.Candidates {
		resp.Candidates = append(resp.Candidates, toCandidateDTO(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// confirm persists a reviewed batch and answers with the tiered outcome. The
// tier is success, info or danger — a file that is already fully present is
// info, never danger.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	preview := &importer.Preview{}

	for _, dto := range req.Candidates {
		cand, err := fromCandidateDTO(dto)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		preview.Candidates = append(preview.Candidates, cand)
	}

	result, err := h.importSvc.Commit(r.Context(), preview)
	if err != nil {
		// Candidates the client mangled are the client's problem; only
		// storage faults are ours.
		status := http.StatusInternalServerError
		if errors.Is(err, ledger.ErrInvalidCandidate) {
			status = http.StatusBadRequest
		}

		http.Error(w, err.Error(), status)

		return
	}

	outcome := result.Outcome()

	writeJSON(w, http.StatusCreated, resultResponse{
		Tier:               outcome.Tier,
		Message:            outcome.Message(),
		Imported:           outcome.Imported,
		Duplicates:         outcome.Duplicates,
		FutureInstallments: outcome.FutureInstallments,
		Errors:             toErrorDTOs(result.Errors),
	})
}

func toCandidateDTO(c ledger.Candidate) candidateDTO {
	return candidateDTO{
		Date:              c.Date.Format(time.DateOnly),
		Description:       c.Description,
		AmountCents:       c.AmountCents,
		Category:          c.Category,
		Tags:              c.Tags,
		Type:              string(c.Type),
		Skipped:           c.Skipped,
		DisableEdit:       c.DisableEdit,
		FutureInstallment: c.FutureInstallment,
		Line:              c.Line,
	}
}

func fromCandidateDTO(dto candidateDTO) (ledger.Candidate, error) {
	date, err := time.Parse(time.DateOnly, dto.Date)
	if err != nil {
		return ledger.Candidate{}, fmt.Errorf("bad date %q: %w", dto.Date, err)
	}

	category := dto.Category
	if category == "" {
		category = ledger.CategoryUncategorized
	}

	return ledger.Candidate{
		Date:              date,
		Description:       dto.Description,
		AmountCents:       dto.AmountCents,
		Category:          category,
		Tags:              dto.Tags,
		Type:              ledger.Type(dto.Type),
		Skipped:           dto.Skipped,
		DisableEdit:       dto.DisableEdit,
		FutureInstallment: dto.FutureInstallment,
		Line:              dto.Line,
	}, nil
}

func toErrorDTOs(errs []statement.RowError) []rowErrorDTO {
	dtos := make([]rowErrorDTO, 0, len(errs))
	for _, e := range errs {
		dtos = append(dtos, rowErrorDTO{Line: e.Line, Message: e.Err.Error()})
	}

	return dtos
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
