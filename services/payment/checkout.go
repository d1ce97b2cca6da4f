package payment

import (
	"context"
	"strings"

	"decorhub/models"
	"decorhub/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MajorToMinor converts a decimal price to minor currency units.
func MajorToMinor(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateCheckout opens a hosted checkout for an unpaid, open booking of the caller.
func (s *Service) CreateCheckout(ctx context.Context, bookingID, actorEmail string) (*CheckoutSession, error) {
	if bookingID == "" {
		return nil, utils.Validation("bookingId is required")
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserEmail != actorEmail {
		return nil, utils.Forbidden("booking belongs to another user")
	}
	if b.IsPaid() {
		return nil, utils.ImmutableBooking("booking is already paid")
	}
	if b.Status.IsTerminal() {
		return nil, utils.InvalidTransition("booking is %s", b.Status)
	}
	amount := MajorToMinor(b.ServicePrice)
	if amount <= 0 {
		return nil, utils.Validation("booking has no payable amount")
	}

	domain := strings.TrimRight(s.Settings.ClientDomain, "/")
	req := CheckoutRequest{
		BookingID:     b.ID,
		CustomerEmail: b.UserEmail,
		ServiceName:   b.ServiceName,
		ServiceImage:  b.ServiceImage,
		UnitAmount:    amount,
		Currency:      strings.ToLower(s.Settings.Currency),
		SuccessURL:    domain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     domain + "/dashboard/my-bookings",
	}

	pctx, cancel := s.processorContext(ctx)
	defer cancel()
	sess, err := s.Processor.CreateCheckoutSession(pctx, req)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("checkout session created",
		zap.String("bookingId", b.ID),
		zap.String("sessionId", sess.ID),
		zap.Int64("amount", amount))
	return sess, nil
}

func (s *Service) requireOwnerOrAdmin(ctx context.Context, email, actorEmail string) error {
	if email == "" {
		return utils.Validation("email is required")
	}
	if email == actorEmail {
		return nil
	}
	role, err := s.Guard.RoleOf(ctx, actorEmail)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		return utils.Forbidden("cannot read another user's payments")
	}
	return nil
}
