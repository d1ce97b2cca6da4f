package models

import "time"

// Booking is a customer's reservation of a decoration service.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ServiceID       string        `bson:"serviceId" json:"serviceId"`
	UserEmail       string        `bson:"userEmail" json:"userEmail"`
	UserName        string        `bson:"userName,omitempty" json:"userName,omitempty"`
	ServiceName     string        `bson:"serviceName" json:"serviceName"`
	ServiceCategory string        `bson:"serviceCategory" json:"serviceCategory"`
	ServicePrice    float64       `bson:"servicePrice" json:"servicePrice"`
	ServiceImage    string        `bson:"serviceImage,omitempty" json:"serviceImage,omitempty"`
	BookingDate     time.Time     `bson:"bookingDate" json:"bookingDate"`
	Location        string        `bson:"location" json:"location"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	DecoratorID     string        `bson:"decoratorId,omitempty" json:"decoratorId,omitempty"`
	DecoratorName   string        `bson:"decoratorName,omitempty" json:"decoratorName,omitempty"`
	DecoratorEmail  string        `bson:"decoratorEmail,omitempty" json:"decoratorEmail,omitempty"`
	TransactionID   string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	// ActiveKey is set while the booking is not cancelled; a unique index on it
	// rejects a second open booking of the same service by the same user.
	ActiveKey   string     `bson:"activeKey,omitempty" json:"-"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// IsPaid reports whether reconciliation has settled the booking.
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// ActiveBookingKey builds the uniqueness key for an open booking.
func ActiveBookingKey(userEmail, serviceID string) string {
	return userEmail + "|" + serviceID
}

// DecoratorRef is the decorator snapshot copied onto a booking at assignment.
type DecoratorRef struct {
	ID    string
	Name  string
	Email string
}

// BookingQuery filters and pages booking listings.
type BookingQuery struct {
	UserEmail      string
	DecoratorEmail string
	Statuses       []BookingStatus
	PaymentStatus  PaymentStatus
	DecoratorID    string

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Sortable booking fields for admin listings.
var BookingSortFields = map[string]bool{
	"createdAt":    true,
	"bookingDate":  true,
	"servicePrice": true,
	"status":       true,
}

// BookingPage is one page of an admin booking listing.
type BookingPage struct {
	Items      []Booking `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}
