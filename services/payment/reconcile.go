package payment

import (
	"context"
	"strings"

	"decorhub/events"
	"decorhub/models"
	"decorhub/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReconcileResult identifies the ledger entry of a reconciled checkout.
type ReconcileResult struct {
	TransactionID string          `json:"transactionId"`
	PaymentID     string          `json:"paymentId"`
	BookingID     string          `json:"bookingId"`
	Duplicate     bool            `json:"duplicate"`
	Payment       *models.Payment `json:"payment"`
}

func resultOf(p *models.Payment, duplicate bool) *ReconcileResult {
	return &ReconcileResult{
		TransactionID: p.TransactionID,
		PaymentID:     p.ID,
		BookingID:     p.PaymentID,
		Duplicate:     duplicate,
		Payment:       p,
	}
}

// MinorToMajor converts an amount in minor currency units to decimal currency.
func MinorToMajor(amount int64) float64 {
	return decimal.New(amount, -2).InexactFloat64()
}

// Reconcile reflects a completed checkout into the booking and the payment
// ledger exactly once, however many times it is called for the same session.
func (s *Service) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	if sessionID == "" {
		return nil, utils.Validation("session id is required")
	}

	pctx, cancel := s.processorContext(ctx)
	sess, err := s.Processor.RetrieveSession(pctx, sessionID)
	cancel()
	if err != nil {
		return nil, err
	}
	return s.ReconcileSession(ctx, sess)
}

// ReconcileSession applies an already retrieved session; the webhook path
// uses it directly with the signed event payload.
func (s *Service) ReconcileSession(ctx context.Context, sess *CheckoutSession) (*ReconcileResult, error) {
	if !sess.IsPaid() {
		return nil, utils.PaymentIncomplete("checkout session %s is %s", sess.ID, sess.PaymentStatus)
	}
	txID := sess.PaymentIntent
	if txID == "" {
		return nil, utils.PaymentIncomplete("checkout session %s has no payment intent yet", sess.ID)
	}
	logger := s.Logger.With(zap.String("sessionId", sess.ID), zap.String("transactionId", txID))

	existing, err := s.Payments.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("checkout already reconciled", zap.String("paymentId", existing.ID))
		return resultOf(existing, true), nil
	}

	bookingID := sess.Metadata[metaBookingID]
	if bookingID == "" {
		return nil, utils.Validation("checkout session %s carries no booking reference", sess.ID)
	}

	var (
		stored  *models.Payment
		created bool
		booking *models.Booking
	)
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		booking, err = s.Bookings.MarkPaid(ctx, bookingID, txID, now)
		if err != nil {
			return err
		}
		if booking == nil {
			current, err := s.Bookings.GetByID(ctx, bookingID)
			if err != nil {
				return err
			}
			return utils.Conflict("booking %s was already paid by transaction %s", current.ID, current.TransactionID)
		}

		customer := sess.Metadata[metaCustomer]
		if customer == "" {
			customer = booking.UserEmail
		}
		serviceName := sess.Metadata[metaServiceName]
		if serviceName == "" {
			serviceName = booking.ServiceName
		}

		stored, created, err = s.Payments.Insert(ctx, &models.Payment{
			ID:            uuid.New().String(),
			PaymentID:     booking.ID,
			TransactionID: txID,
			Customer:      customer,
			Status:        s.recordStatus(),
			ServiceName:   serviceName,
			Quantity:      1,
			Price:         MinorToMajor(sess.AmountTotal),
			Currency:      strings.ToUpper(sess.Currency),
			PaymentDate:   now,
		})
		return err
	})
	if err != nil {
		logger.Warn("reconciliation failed", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, err
	}

	if created {
		logger.Info("checkout reconciled",
			zap.String("bookingId", bookingID),
			zap.String("paymentId", stored.ID),
			zap.Float64("price", stored.Price),
			zap.String("currency", stored.Currency))
		if s.Events != nil {
			if err := s.Events.Publish(ctx, events.NewBookingEvent(events.BookingPaid, booking)); err != nil {
				logger.Warn("failed to publish booking event", zap.Error(err))
			}
		}
	}
	return resultOf(stored, !created), nil
}
