package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/ledger"
)

type transactionResponse struct {
	ID                uuid.UUID `json:"id"`
	Date              string    `json:"date"`
	Description       string    `json:"description"`
	AmountCents       int64     `json:"amount_cents"`
	Category          string    `json:"category"`
	Tags              []string  `json:"tags"`
	Type              string    `json:"type"`
	FutureInstallment bool      `json:"future_installment"`
	CreatedAt         time.Time `json:"created_at"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:                tx.ID,
		Date:              tx.Date.Format(time.DateOnly),
		Description:       tx.Description,
		AmountCents:       tx.AmountCents,
		Category:          tx.Category,
		Tags:              tx.Tags,
		Type:              string(tx.Type),
		FutureInstallment: tx.FutureInstallment,
		CreatedAt:         tx.CreatedAt,
	}
}
