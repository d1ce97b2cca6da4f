package payment

import (
	"context"
	"strings"
	"time"

	"decorhub/database"
	bookingRepo "decorhub/database/repository/booking"
	paymentRepo "decorhub/database/repository/payment"
	"decorhub/events"
	"decorhub/models"
	"decorhub/services/guard"

	"go.uber.org/zap"
)

// Settings are the payment knobs read from configuration.
type Settings struct {
	Currency      string
	ClientDomain  string
	RecordStatus  string
	Timeout       time.Duration
	WebhookSecret string
}

// Service creates checkouts and reconciles completed ones into bookings and
// the payment ledger.
type Service struct {
	Bookings  bookingRepo.BookingRepository
	Payments  paymentRepo.PaymentRepository
	Processor Processor
	Guard     guard.RoleResolver
	Tx        database.Transactor
	Events    events.Publisher
	Settings  Settings
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// processorContext bounds one processor round trip.
func (s *Service) processorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.Settings.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *Service) recordStatus() string {
	if strings.EqualFold(s.Settings.RecordStatus, models.PaymentRecordPending) {
		return models.PaymentRecordPending
	}
	return models.PaymentRecordCompleted
}

// ListPayments returns a customer's payments, newest first (owner or admin).
func (s *Service) ListPayments(ctx context.Context, email, actorEmail string) ([]models.Payment, error) {
	if err := s.requireOwnerOrAdmin(ctx, email, actorEmail); err != nil {
		return nil, err
	}
	return s.Payments.ListByCustomer(ctx, email)
}
