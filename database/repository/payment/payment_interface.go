package paymentRepo

import (
	"context"

	"decorhub/models"
)

// PaymentRepository is the append-only payment ledger keyed by transaction id.
type PaymentRepository interface {
	// GetByTransactionID returns nil, nil when no payment carries the id.
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// Insert stores p unless a payment with the same transaction id exists.
	// It returns the stored record and whether this call created it.
	Insert(ctx context.Context, p *models.Payment) (*models.Payment, bool, error)
	ListByCustomer(ctx context.Context, email string) ([]models.Payment, error)
}
