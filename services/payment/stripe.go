package payment

import (
	"context"
	"errors"
	"net/http"

	"decorhub/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProcessor talks to Stripe Checkout.
type StripeProcessor struct {
	sessions *session.Client
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	return &StripeProcessor{
		sessions: &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ServiceName),
	}
	if req.ServiceImage != "" {
		product.Images = []*string{stripe.String(req.ServiceImage)}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(req.Currency),
					UnitAmount:  stripe.Int64(req.UnitAmount),
					ProductData: product,
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(metaBookingID, req.BookingID)
	params.AddMetadata(metaCustomer, req.CustomerEmail)
	params.AddMetadata(metaServiceName, req.ServiceName)

	s, err := p.sessions.New(params)
	if err != nil {
		return nil, classifyStripeError(err, "failed to create checkout session")
	}
	return fromStripe(s), nil
}

func (p *StripeProcessor) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := p.sessions.Get(sessionID, params)
	if err != nil {
		return nil, classifyStripeError(err, "failed to retrieve checkout session")
	}
	return fromStripe(s), nil
}

func fromStripe(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntent = s.PaymentIntent.ID
	}
	return out
}

// classifyStripeError separates caller mistakes from retryable upstream failures.
func classifyStripeError(err error, msg string) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.HTTPStatusCode {
		case http.StatusNotFound:
			return utils.NotFound("checkout session not found")
		case http.StatusBadRequest:
			return utils.Validation("%s: %s", msg, stripeErr.Msg)
		}
	}
	return utils.Upstream(err, "%s", msg)
}
