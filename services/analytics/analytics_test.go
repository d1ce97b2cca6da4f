package analytics

import (
	"context"
	"testing"
	"time"

	"decorhub/database/repository/memory"
	"decorhub/models"
	"decorhub/services/guard"
	"decorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, _, err := store.Users().UpsertLogin(ctx, &models.User{Email: "admin@decorhub.test", Role: models.RoleAdmin}, time.Now())
	require.NoError(t, err)

	paidAt := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	for _, b := range []models.Booking{
		{ID: "b-1", ServiceName: "Wedding Stage", ServicePrice: 500.1, Status: models.BookingCompleted, PaymentStatus: models.PaymentPaid},
		{ID: "b-2", ServiceName: "Wedding Stage", ServicePrice: 500.2, Status: models.BookingAwaitingDecorator, PaymentStatus: models.PaymentUnpaid},
		{ID: "b-3", ServiceName: "Balloons", ServicePrice: 45, Status: models.BookingCancelledByUser, PaymentStatus: models.PaymentUnpaid},
	} {
		b := b
		b.UserEmail = "amina@decorhub.test"
		b.ServiceID = b.ID
		require.NoError(t, store.Bookings().Create(ctx, &b))
		if b.IsPaid() {
			_, _, err := store.Payments().Insert(ctx, &models.Payment{
				ID: "p-1", PaymentID: b.ID, TransactionID: "pi_" + b.ID,
				Price: b.ServicePrice, Currency: "BDT", PaymentDate: paidAt,
			})
			require.NoError(t, err)
		}
	}
	s := &Service{Repo: store.Analytics(), Guard: guard.NewRoleGuard(store.Users())}

	_, err = s.Report(ctx, "amina@decorhub.test")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	report, err := s.Report(ctx, "admin@decorhub.test")
	require.NoError(t, err)
	assert.Equal(t, 500.1, report.TotalRevenue)
	assert.Equal(t, int64(1), report.TotalPayments)
	assert.Equal(t, int64(3), report.TotalBookings)
	assert.Equal(t, int64(1), report.PaidBookings)
	assert.Equal(t, int64(1), report.BookingsByStatus[string(models.BookingCompleted)])

	require.Len(t, report.ServiceDemand, 2)
	assert.Equal(t, "Wedding Stage", report.ServiceDemand[0].ServiceName)
	assert.Equal(t, int64(2), report.ServiceDemand[0].Bookings)
	assert.Equal(t, 500.1, report.ServiceDemand[0].Revenue)

	require.Len(t, report.MonthlyRevenue, 1)
	assert.Equal(t, "2026-09", report.MonthlyRevenue[0].Month)
}
