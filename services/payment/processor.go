package payment

import "context"

// CheckoutSession is the processor's view of a hosted checkout.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	PaymentIntent string
	AmountTotal   int64 // minor units
	Currency      string
	Metadata      map[string]string
}

// IsPaid reports whether the processor confirmed the payment.
func (s *CheckoutSession) IsPaid() bool {
	return s.PaymentStatus == "paid"
}

// CheckoutRequest describes one booking to be paid through hosted checkout.
type CheckoutRequest struct {
	BookingID     string
	CustomerEmail string
	ServiceName   string
	ServiceImage  string
	UnitAmount    int64 // minor units
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// Processor is the external payment processor.
type Processor interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// Metadata keys attached to every checkout session.
const (
	metaBookingID   = "bookingId"
	metaCustomer    = "customer"
	metaServiceName = "serviceName"
)
