package decorator

import (
	"context"
	"testing"
	"time"

	"decorhub/database"
	bookingRepo "decorhub/database/repository/booking"
	"decorhub/database/repository/memory"
	"decorhub/events"
	"decorhub/models"
	"decorhub/services/assignment"
	"decorhub/services/guard"
	"decorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	admin = "admin@decorhub.test"
	nadia = "nadia@decorhub.test"
)

func newDecoratorService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for email, role := range map[string]models.Role{admin: models.RoleAdmin, nadia: models.RoleCustomer} {
		_, _, err := store.Users().UpsertLogin(ctx, &models.User{Email: email, Role: role}, time.Now())
		require.NoError(t, err)
	}
	logger := zap.NewNop()
	return &Service{
		Decorators:  store.Decorators(),
		Bookings:    store.Bookings(),
		Users:       store.Users(),
		Guard:       guard.NewRoleGuard(store.Users()),
		Coordinator: assignment.NewCoordinator(store.Decorators(), logger),
		Tx:          database.NoopTransactor{},
		Events:      events.NoopPublisher{},
		Logger:      logger,
	}, store
}

func TestDecoratorApprovalSyncsRole(t *testing.T) {
	ctx := context.Background()
	s, store := newDecoratorService(t)

	d, err := s.Apply(ctx, Application{Name: "Nadia", District: "Dhaka"}, nadia)
	require.NoError(t, err)
	assert.Equal(t, models.DecoratorPending, d.Status)
	assert.Equal(t, models.WorkUnavailable, d.WorkStatus)

	_, err = s.Apply(ctx, Application{Name: "Nadia", District: "Dhaka"}, nadia)
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = s.UpdateStatus(ctx, d.ID, "approved", nadia)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	approved, err := s.UpdateStatus(ctx, d.ID, "Approved", admin)
	require.NoError(t, err)
	assert.Equal(t, models.DecoratorApproved, approved.Status)
	assert.Equal(t, models.WorkAvailable, approved.WorkStatus)
	u, err := store.Users().GetByEmail(ctx, nadia)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDecorator, u.Role)

	disabled, err := s.UpdateStatus(ctx, d.ID, "disabled", admin)
	require.NoError(t, err)
	assert.Equal(t, models.WorkUnavailable, disabled.WorkStatus)
	u, err = store.Users().GetByEmail(ctx, nadia)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, u.Role)

	listed, err := s.List(ctx, models.DecoratorFilter{Status: models.DecoratorDisabled})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestDeleteReopensHeldBookings(t *testing.T) {
	ctx := context.Background()
	s, store := newDecoratorService(t)
	require.NoError(t, store.Decorators().Create(ctx, &models.Decorator{
		ID: "dec-1", Name: "Nadia", Email: nadia,
		Status: models.DecoratorApproved, WorkStatus: models.WorkAssigned,
	}))
	require.NoError(t, store.Bookings().Create(ctx, &models.Booking{
		ID: "b-1", UserEmail: "amina@decorhub.test", ServiceID: "svc-1",
		Status:        models.BookingInProgress,
		PaymentStatus: models.PaymentPaid,
		DecoratorID:   "dec-1", DecoratorEmail: nadia,
	}))

	require.NoError(t, s.Delete(ctx, "dec-1", admin))

	b, err := store.Bookings().GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingAwaitingDecorator, b.Status)
	assert.Empty(t, b.DecoratorID)

	_, err = store.Decorators().GetByID(ctx, "dec-1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

// interleavedBookings runs onList once, right after the first listing, to
// stand in for an admin assignment that lands mid-delete.
type interleavedBookings struct {
	bookingRepo.BookingRepository
	onList func()
}

func (b *interleavedBookings) List(ctx context.Context, q models.BookingQuery) ([]models.Booking, int64, error) {
	items, total, err := b.BookingRepository.List(ctx, q)
	if b.onList != nil {
		hook := b.onList
		b.onList = nil
		hook()
	}
	return items, total, err
}

// assignDuringDelete claims dec-1 and, when the claim wins, moves b-2 to decorator_assigned.
func assignDuringDelete(t *testing.T, store *memory.Store) func() {
	return func() {
		ctx := context.Background()
		d, err := store.Decorators().Claim(ctx, "dec-1")
		require.NoError(t, err)
		if d == nil {
			return
		}
		ref := d.Ref()
		_, err = store.Bookings().Transition(ctx, "b-2", bookingRepo.Transition{
			From:   []models.BookingStatus{models.BookingAwaitingDecorator},
			To:     models.BookingDecoratorAssigned,
			Assign: &ref,
			At:     time.Now(),
		})
		require.NoError(t, err)
	}
}

func seedDeleteRace(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Decorators().Create(ctx, &models.Decorator{
		ID: "dec-1", Name: "Nadia", Email: nadia,
		Status: models.DecoratorApproved, WorkStatus: models.WorkAvailable,
	}))
	require.NoError(t, store.Bookings().Create(ctx, &models.Booking{
		ID: "b-2", UserEmail: "amina@decorhub.test", ServiceID: "svc-1",
		Status: models.BookingAwaitingDecorator, PaymentStatus: models.PaymentUnpaid,
	}))
}

func TestDeleteBlocksAssignmentInFlight(t *testing.T) {
	ctx := context.Background()
	s, store := newDecoratorService(t)
	seedDeleteRace(t, store)
	s.Bookings = &interleavedBookings{BookingRepository: store.Bookings(), onList: assignDuringDelete(t, store)}

	require.NoError(t, s.Delete(ctx, "dec-1", admin))

	b, err := store.Bookings().GetByID(ctx, "b-2")
	require.NoError(t, err)
	assert.Equal(t, models.BookingAwaitingDecorator, b.Status)
	assert.Empty(t, b.DecoratorID)
	_, err = store.Decorators().GetByID(ctx, "dec-1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteDetectsAssignmentClaimedEarlier(t *testing.T) {
	ctx := context.Background()
	s, store := newDecoratorService(t)
	seedDeleteRace(t, store)

	// The claim won before the delete started; only the booking write is late.
	d, err := store.Decorators().Claim(ctx, "dec-1")
	require.NoError(t, err)
	require.NotNil(t, d)
	ref := d.Ref()
	s.Bookings = &interleavedBookings{BookingRepository: store.Bookings(), onList: func() {
		_, err := store.Bookings().Transition(ctx, "b-2", bookingRepo.Transition{
			From:   []models.BookingStatus{models.BookingAwaitingDecorator},
			To:     models.BookingDecoratorAssigned,
			Assign: &ref,
			At:     time.Now(),
		})
		require.NoError(t, err)
	}}

	err = s.Delete(ctx, "dec-1", admin)
	assert.ErrorIs(t, err, utils.ErrConflict)
	_, err = store.Decorators().GetByID(ctx, "dec-1")
	require.NoError(t, err, "decorator must survive while a booking holds it")

	// A retry reopens the late booking and completes.
	require.NoError(t, s.Delete(ctx, "dec-1", admin))
	b, err := store.Bookings().GetByID(ctx, "b-2")
	require.NoError(t, err)
	assert.Equal(t, models.BookingAwaitingDecorator, b.Status)
	assert.Empty(t, b.DecoratorID)
}
