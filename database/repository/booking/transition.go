package bookingRepo

import (
	"time"

	"decorhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Transition is a conditional status change of one booking.
type Transition struct {
	From []models.BookingStatus
	To   models.BookingStatus

	// Optional preconditions on the assigned decorator.
	DecoratorID    string
	DecoratorEmail string
	// UnpaidOnly restricts the transition to unpaid bookings.
	UnpaidOnly bool

	Assign         *models.DecoratorRef
	ClearDecorator bool
	At             time.Time
}

// Matches reports whether b satisfies the transition's preconditions.
func (t Transition) Matches(b *models.Booking) bool {
	allowed := false
	for _, s := range t.From {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	if t.DecoratorID != "" && b.DecoratorID != t.DecoratorID {
		return false
	}
	if t.DecoratorEmail != "" && b.DecoratorEmail != t.DecoratorEmail {
		return false
	}
	if t.UnpaidOnly && b.PaymentStatus != models.PaymentUnpaid {
		return false
	}
	return true
}

// Apply mutates b the same way the Mongo update document does.
func (t Transition) Apply(b *models.Booking) {
	b.Status = t.To
	b.UpdatedAt = t.At
	if t.Assign != nil {
		b.DecoratorID = t.Assign.ID
		b.DecoratorName = t.Assign.Name
		b.DecoratorEmail = t.Assign.Email
	}
	if t.ClearDecorator {
		b.DecoratorID, b.DecoratorName, b.DecoratorEmail = "", "", ""
	}
	at := t.At
	switch {
	case t.To.IsCancelled():
		b.CancelledAt = &at
		b.ActiveKey = ""
	case t.To == models.BookingCompleted:
		b.CompletedAt = &at
	}
}

func (t Transition) filter(id string) bson.M {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": t.From},
	}
	if t.DecoratorID != "" {
		filter["decoratorId"] = t.DecoratorID
	}
	if t.DecoratorEmail != "" {
		filter["decoratorEmail"] = t.DecoratorEmail
	}
	if t.UnpaidOnly {
		filter["paymentStatus"] = models.PaymentUnpaid
	}
	return filter
}

func (t Transition) update() bson.M {
	set := bson.M{
		"status":    t.To,
		"updatedAt": t.At,
	}
	unset := bson.M{}
	if t.Assign != nil {
		set["decoratorId"] = t.Assign.ID
		set["decoratorName"] = t.Assign.Name
		set["decoratorEmail"] = t.Assign.Email
	}
	if t.ClearDecorator {
		unset["decoratorId"] = ""
		unset["decoratorName"] = ""
		unset["decoratorEmail"] = ""
	}
	switch {
	case t.To.IsCancelled():
		set["cancelledAt"] = t.At
		unset["activeKey"] = ""
	case t.To == models.BookingCompleted:
		set["completedAt"] = t.At
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
