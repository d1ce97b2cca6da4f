package bookingRepo

import (
	"testing"
	"time"

	"decorhub/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func openBooking() *models.Booking {
	return &models.Booking{
		ID:            "b-1",
		UserEmail:     "amina@decorhub.test",
		Status:        models.BookingAwaitingDecorator,
		PaymentStatus: models.PaymentUnpaid,
		ActiveKey:     models.ActiveBookingKey("amina@decorhub.test", "svc-1"),
	}
}

func TestTransition_Matches(t *testing.T) {
	cancel := Transition{From: models.ActiveBookingStatuses, To: models.BookingCancelledByUser, UnpaidOnly: true}

	b := openBooking()
	assert.True(t, cancel.Matches(b))

	b.PaymentStatus = models.PaymentPaid
	assert.False(t, cancel.Matches(b), "owner cancel must not match a paid booking")

	b = openBooking()
	b.Status = models.BookingCompleted
	assert.False(t, cancel.Matches(b))

	progress := Transition{
		From:           []models.BookingStatus{models.BookingDecoratorAssigned},
		To:             models.BookingInProgress,
		DecoratorEmail: "nadia@decorhub.test",
	}
	b = openBooking()
	b.Status = models.BookingDecoratorAssigned
	b.DecoratorEmail = "other@decorhub.test"
	assert.False(t, progress.Matches(b))
	b.DecoratorEmail = "nadia@decorhub.test"
	assert.True(t, progress.Matches(b))
}

func TestTransition_ApplyCancelClearsActiveKey(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	b := openBooking()

	Transition{From: models.ActiveBookingStatuses, To: models.BookingCancelledByAdmin, At: at}.Apply(b)

	assert.Equal(t, models.BookingCancelledByAdmin, b.Status)
	assert.Empty(t, b.ActiveKey)
	if assert.NotNil(t, b.CancelledAt) {
		assert.True(t, at.Equal(*b.CancelledAt))
	}
	assert.Nil(t, b.CompletedAt)
}

func TestTransition_ApplyAssignAndClear(t *testing.T) {
	b := openBooking()
	ref := models.DecoratorRef{ID: "dec-1", Name: "Nadia", Email: "nadia@decorhub.test"}

	Transition{To: models.BookingDecoratorAssigned, Assign: &ref}.Apply(b)
	assert.Equal(t, "dec-1", b.DecoratorID)
	assert.Equal(t, "nadia@decorhub.test", b.DecoratorEmail)

	Transition{To: models.BookingAwaitingDecorator, ClearDecorator: true}.Apply(b)
	assert.Empty(t, b.DecoratorID)
	assert.Empty(t, b.DecoratorName)
	assert.Empty(t, b.DecoratorEmail)
	assert.NotEmpty(t, b.ActiveKey)
}

func TestTransition_MongoDocuments(t *testing.T) {
	at := time.Now().UTC()
	tr := Transition{
		From:           []models.BookingStatus{models.BookingDecoratorAssigned},
		To:             models.BookingAwaitingDecorator,
		DecoratorID:    "dec-1",
		UnpaidOnly:     true,
		ClearDecorator: true,
		At:             at,
	}

	filter := tr.filter("b-1")
	assert.Equal(t, "b-1", filter["id"])
	assert.Equal(t, "dec-1", filter["decoratorId"])
	assert.Equal(t, models.PaymentUnpaid, filter["paymentStatus"])

	update := tr.update()
	set := update["$set"].(bson.M)
	assert.Equal(t, models.BookingAwaitingDecorator, set["status"])
	unset := update["$unset"].(bson.M)
	assert.Contains(t, unset, "decoratorId")
	assert.NotContains(t, unset, "activeKey")

	cancel := Transition{From: models.ActiveBookingStatuses, To: models.BookingCancelledByUser, At: at}.update()
	assert.Contains(t, cancel["$unset"].(bson.M), "activeKey")
	assert.Contains(t, cancel["$set"].(bson.M), "cancelledAt")
}

func TestSortSpec(t *testing.T) {
	field, dir := SortSpec(models.BookingQuery{})
	assert.Equal(t, "createdAt", field)
	assert.Equal(t, -1, dir)

	field, dir = SortSpec(models.BookingQuery{SortBy: "bookingDate", SortOrder: "asc"})
	assert.Equal(t, "bookingDate", field)
	assert.Equal(t, 1, dir)
}
