package payment

import (
	"context"
	"testing"
	"time"

	"decorhub/models"
	"decorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMajorToMinor(t *testing.T) {
	assert.Equal(t, int64(50000), MajorToMinor(500))
	assert.Equal(t, int64(12055), MajorToMinor(120.55))
	assert.Equal(t, int64(1999), MajorToMinor(19.99))
}

func TestCreateCheckout(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	f.processor.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req CheckoutRequest) bool {
		return req.BookingID == "b-1" &&
			req.UnitAmount == 50000 &&
			req.Currency == "bdt" &&
			req.SuccessURL == "https://decorhub.test/payment-success?session_id={CHECKOUT_SESSION_ID}" &&
			req.CancelURL == "https://decorhub.test/dashboard/my-bookings"
	})).Return(&CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil)

	sess, err := f.svc.CreateCheckout(ctx, "b-1", "amina@decorhub.test")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_1", sess.URL)
	f.processor.AssertExpectations(t)
}

func TestCreateCheckout_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)

	_, err := f.svc.CreateCheckout(ctx, "b-1", "rafi@decorhub.test")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.svc.CreateCheckout(ctx, "", "amina@decorhub.test")
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = f.store.Bookings().MarkPaid(ctx, "b-1", "pi_1", time.Now())
	require.NoError(t, err)
	_, err = f.svc.CreateCheckout(ctx, "b-1", "amina@decorhub.test")
	assert.ErrorIs(t, err, utils.ErrImmutableBooking)

	require.NoError(t, f.store.Bookings().Create(ctx, &models.Booking{
		ID:            "b-closed",
		UserEmail:     "amina@decorhub.test",
		ServicePrice:  80,
		Status:        models.BookingCancelledByUser,
		PaymentStatus: models.PaymentUnpaid,
	}))
	_, err = f.svc.CreateCheckout(ctx, "b-closed", "amina@decorhub.test")
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	f.processor.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}
