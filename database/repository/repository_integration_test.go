//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"decorhub/database"
	bookingRepo "decorhub/database/repository/booking"
	"decorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupMongo(t *testing.T) *Repositories {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start mongo container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := database.Connect(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Disconnect(ctx)
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
	return NewMongoRepositories(ctx, client.Database("decorhub_test"))
}

func TestMongoRepositories(t *testing.T) {
	ctx := context.Background()
	repos := setupMongo(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	b := &models.Booking{
		ID: "b-1", ServiceID: "svc-1", UserEmail: "amina@decorhub.test",
		ServiceName: "Wedding Stage", ServicePrice: 500,
		Status: models.BookingAwaitingDecorator, PaymentStatus: models.PaymentUnpaid,
		ActiveKey: models.ActiveBookingKey("amina@decorhub.test", "svc-1"),
		CreatedAt: now,
	}

	t.Run("active booking is unique", func(t *testing.T) {
		require.NoError(t, repos.Bookings.Create(ctx, b))
		dup := *b
		dup.ID = "b-2"
		assert.ErrorIs(t, repos.Bookings.Create(ctx, &dup), bookingRepo.ErrActiveBookingExists)

		found, err := repos.Bookings.FindActive(ctx, b.UserEmail, b.ServiceID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "b-1", found.ID)
	})

	t.Run("mark paid is conditional", func(t *testing.T) {
		paid, err := repos.Bookings.MarkPaid(ctx, "b-1", "pi_1", now)
		require.NoError(t, err)
		require.NotNil(t, paid)
		assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)

		again, err := repos.Bookings.MarkPaid(ctx, "b-1", "pi_1", now)
		require.NoError(t, err)
		assert.NotNil(t, again)

		other, err := repos.Bookings.MarkPaid(ctx, "b-1", "pi_2", now)
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("payment insert is idempotent", func(t *testing.T) {
		p := &models.Payment{
			ID: "p-1", PaymentID: "b-1", TransactionID: "pi_1", Customer: "amina@decorhub.test",
			Status: models.PaymentRecordCompleted, ServiceName: "Wedding Stage", Quantity: 1,
			Price: 500, Currency: "BDT", PaymentDate: now,
		}
		_, inserted, err := repos.Payments.Insert(ctx, p)
		require.NoError(t, err)
		assert.True(t, inserted)

		retry := *p
		retry.ID = "p-2"
		stored, inserted, err := repos.Payments.Insert(ctx, &retry)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, "p-1", stored.ID)
	})

	t.Run("decorator claim is exclusive", func(t *testing.T) {
		require.NoError(t, repos.Decorators.Create(ctx, &models.Decorator{
			ID: "dec-1", Name: "Nadia", Email: "nadia@decorhub.test", District: "Dhaka",
			Status: models.DecoratorApproved, WorkStatus: models.WorkAvailable, CreatedAt: now,
		}))

		first, err := repos.Decorators.Claim(ctx, "dec-1")
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, models.WorkAssigned, first.WorkStatus)

		second, err := repos.Decorators.Claim(ctx, "dec-1")
		require.NoError(t, err)
		assert.Nil(t, second)

		require.NoError(t, repos.Decorators.Release(ctx, "dec-1"))
		d, err := repos.Decorators.GetByID(ctx, "dec-1")
		require.NoError(t, err)
		assert.Equal(t, models.WorkAvailable, d.WorkStatus)
	})

	t.Run("analytics report", func(t *testing.T) {
		report, err := repos.Analytics.Report(ctx)
		require.NoError(t, err)
		assert.Equal(t, 500.0, report.TotalRevenue)
		assert.Equal(t, int64(1), report.TotalPayments)
		assert.Equal(t, int64(1), report.PaidBookings)
	})
}
