package bookingRepo

import (
	"context"
	"errors"
	"time"

	"decorhub/models"
)

// ErrActiveBookingExists is returned by Create when the user already holds an
// open booking for the same service.
var ErrActiveBookingExists = errors.New("an active booking for this service already exists")

// BookingRepository defines booking persistence. Every mutating method is a
// single-document conditional write; methods returning (nil, nil) mean the
// condition did not match.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindActive returns the open booking of a user for a service, or nil.
	FindActive(ctx context.Context, userEmail, serviceID string) (*models.Booking, error)
	// UpdateSchedule changes date and location of a non-terminal booking.
	UpdateSchedule(ctx context.Context, id string, change ScheduleChange) (*models.Booking, error)
	// Transition moves a booking between statuses when t matches.
	Transition(ctx context.Context, id string, t Transition) (*models.Booking, error)
	// MarkPaid settles an unpaid booking, or re-applies the same transaction id.
	MarkPaid(ctx context.Context, id, transactionID string, at time.Time) (*models.Booking, error)
	List(ctx context.Context, q models.BookingQuery) ([]models.Booking, int64, error)
}

// ScheduleChange is a conditional date/location edit.
type ScheduleChange struct {
	BookingDate   time.Time
	Location      string
	RequireUnpaid bool
	At            time.Time
}
