package events

import (
	"context"
	"time"

	"decorhub/models"
)

// Booking event types.
const (
	BookingCreated           = "booking.created"
	BookingPaid              = "booking.paid"
	BookingDecoratorAssigned = "booking.decorator_assigned"
	BookingDecoratorReleased = "booking.decorator_released"
	BookingStatusChanged     = "booking.status_changed"
	BookingCancelled         = "booking.cancelled"
)

// BookingEvent is published after a booking write commits.
type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     string               `json:"bookingId"`
	UserEmail     string               `json:"userEmail"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	DecoratorID   string               `json:"decoratorId,omitempty"`
	TransactionID string               `json:"transactionId,omitempty"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// NewBookingEvent snapshots b under the given event type.
func NewBookingEvent(eventType string, b *models.Booking) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserEmail:     b.UserEmail,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		DecoratorID:   b.DecoratorID,
		TransactionID: b.TransactionID,
		OccurredAt:    time.Now().UTC(),
	}
}

// Publisher delivers booking events. Failures are reported, never retried here.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NoopPublisher drops every event; used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NoopPublisher) Close() error                                { return nil }
