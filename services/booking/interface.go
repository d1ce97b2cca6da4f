package booking

import (
	"context"
	"time"

	"decorhub/models"
)

// BookingService is the booking lifecycle: creation, scheduling, assignment,
// progress and cancellation.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id, actorEmail string) (*models.Booking, error)
	UpdateSchedule(ctx context.Context, id string, change ScheduleRequest, actorEmail string) (*models.Booking, error)
	Cancel(ctx context.Context, id, actorEmail string) (*models.Booking, error)
	AssignDecorator(ctx context.Context, id, decoratorID, actorEmail string) (*models.Booking, error)
	UnassignDecorator(ctx context.Context, id, actorEmail string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status, actorEmail string) (*models.Booking, error)

	ListAll(ctx context.Context, q models.BookingQuery, actorEmail string) (*models.BookingPage, error)
	ListForUser(ctx context.Context, userEmail, actorEmail string) ([]models.Booking, error)
	ListForDecorator(ctx context.Context, actorEmail string) ([]models.Booking, error)
}

// CreateBookingRequest is a customer's booking of a catalog service.
type CreateBookingRequest struct {
	ServiceID   string    `json:"serviceId"`
	UserEmail   string    `json:"-"`
	UserName    string    `json:"userName"`
	BookingDate time.Time `json:"bookingDate"`
	Location    string    `json:"location"`
	// TransactionID is required when payment is collected before booking.
	TransactionID string `json:"transactionId"`
}

// ScheduleRequest changes when and where a booking takes place.
type ScheduleRequest struct {
	BookingDate time.Time `json:"bookingDate"`
	Location    string    `json:"location"`
}
