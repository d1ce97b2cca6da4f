package models

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingAwaitingDecorator BookingStatus = "awaiting_decorator"
	BookingDecoratorAssigned BookingStatus = "decorator_assigned"
	BookingInProgress        BookingStatus = "in_progress"
	BookingCompleted         BookingStatus = "completed"
	BookingCancelledByAdmin  BookingStatus = "cancelled_by_admin"
	BookingCancelledByUser   BookingStatus = "cancelled_by_user"
)

var bookingStatuses = []BookingStatus{
	BookingAwaitingDecorator,
	BookingDecoratorAssigned,
	BookingInProgress,
	BookingCompleted,
	BookingCancelledByAdmin,
	BookingCancelledByUser,
}

// ActiveBookingStatuses are the states in which a booking still counts as open.
var ActiveBookingStatuses = []BookingStatus{
	BookingAwaitingDecorator,
	BookingDecoratorAssigned,
	BookingInProgress,
}

func (s BookingStatus) IsValid() bool {
	for _, st := range bookingStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsCancelled() bool {
	return s == BookingCancelledByAdmin || s == BookingCancelledByUser
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s.IsCancelled()
}

// HoldsDecorator reports whether a booking in this state keeps its decorator busy.
func (s BookingStatus) HoldsDecorator() bool {
	return s == BookingDecoratorAssigned || s == BookingInProgress
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus accepts any casing and maps it to the canonical value.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid booking status: %q", raw)
	}
	return s, nil
}

// PaymentStatus records whether a booking has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// ParsePaymentStatus normalises legacy spellings such as "Paid".
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentPaid:
		return PaymentPaid, nil
	case PaymentUnpaid:
		return PaymentUnpaid, nil
	}
	return "", fmt.Errorf("invalid payment status: %q", raw)
}

// Role is the authorisation role attached to a user.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleDecorator Role = "decorator"
	RoleAdmin     Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleCustomer, RoleDecorator, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("invalid role: %q", raw)
}

// DecoratorStatus is the approval state of a decorator application.
type DecoratorStatus string

const (
	DecoratorPending  DecoratorStatus = "pending"
	DecoratorApproved DecoratorStatus = "approved"
	DecoratorRejected DecoratorStatus = "rejected"
	DecoratorDisabled DecoratorStatus = "disabled"
)

func ParseDecoratorStatus(raw string) (DecoratorStatus, error) {
	switch s := DecoratorStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case DecoratorPending, DecoratorApproved, DecoratorRejected, DecoratorDisabled:
		return s, nil
	}
	return "", fmt.Errorf("invalid decorator status: %q", raw)
}

// WorkStatus is a decorator's availability for new assignments.
type WorkStatus string

const (
	WorkAvailable   WorkStatus = "available"
	WorkAssigned    WorkStatus = "assigned"
	WorkUnavailable WorkStatus = "unavailable"
)

func ParseWorkStatus(raw string) (WorkStatus, error) {
	switch s := WorkStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case WorkAvailable, WorkAssigned, WorkUnavailable:
		return s, nil
	}
	return "", fmt.Errorf("invalid work status: %q", raw)
}

// PaymentFlow selects when a booking is paid for.
type PaymentFlow string

const (
	// FlowCheckout creates unpaid bookings that are settled by reconciliation.
	FlowCheckout PaymentFlow = "checkout"
	// FlowPrepaid expects the payment to be collected before the booking is created.
	FlowPrepaid PaymentFlow = "prepaid"
)
