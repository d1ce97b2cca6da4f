package booking

import (
	"context"
	"errors"
	"time"

	"decorhub/database"
	bookingRepo "decorhub/database/repository/booking"
	decoratorRepo "decorhub/database/repository/decorator"
	serviceRepo "decorhub/database/repository/service"
	"decorhub/events"
	"decorhub/models"
	"decorhub/services/assignment"
	"decorhub/services/guard"
	"decorhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleManager owns the booking state machine. Every write is a
// conditional single-document update; multi-document steps run inside Tx and
// are ordered so that a retry finishes a partial run.
type LifecycleManager struct {
	Bookings    bookingRepo.BookingRepository
	Services    serviceRepo.ServiceRepository
	Decorators  decoratorRepo.DecoratorRepository
	Guard       guard.RoleResolver
	Coordinator *assignment.Coordinator
	Tx          database.Transactor
	Events      events.Publisher
	Flow        models.PaymentFlow
	Logger      *zap.Logger
	Now         func() time.Time
}

var _ BookingService = (*LifecycleManager)(nil)

func (m *LifecycleManager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *LifecycleManager) publish(ctx context.Context, eventType string, b *models.Booking) {
	if m.Events == nil || b == nil {
		return
	}
	if err := m.Events.Publish(ctx, events.NewBookingEvent(eventType, b)); err != nil {
		m.Logger.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.String("bookingId", b.ID),
			zap.Error(err))
	}
}

func (m *LifecycleManager) load(ctx context.Context, id string) (*models.Booking, error) {
	if id == "" {
		return nil, utils.Validation("booking id is required")
	}
	return m.Bookings.GetByID(ctx, id)
}

// actor resolves the caller's relation to a booking.
type actor struct {
	email string
	role  models.Role
}

func (a actor) isAdmin() bool { return a.role == models.RoleAdmin }

func (a actor) owns(b *models.Booking) bool { return b.UserEmail == a.email }

func (m *LifecycleManager) resolve(ctx context.Context, email string) (actor, error) {
	role, err := m.Guard.RoleOf(ctx, email)
	if err != nil {
		return actor{}, err
	}
	return actor{email: email, role: role}, nil
}

// CreateBooking snapshots the catalog service onto a new awaiting_decorator booking.
func (m *LifecycleManager) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	switch {
	case req.ServiceID == "":
		return nil, utils.Validation("serviceId is required")
	case req.UserEmail == "":
		return nil, utils.Validation("requesting user is required")
	case req.BookingDate.IsZero():
		return nil, utils.Validation("bookingDate is required")
	case req.Location == "":
		return nil, utils.Validation("location is required")
	}

	paymentStatus := models.PaymentUnpaid
	transactionID := ""
	if m.Flow == models.FlowPrepaid {
		if req.TransactionID == "" {
			return nil, utils.Validation("transactionId is required when payment is collected at booking")
		}
		paymentStatus = models.PaymentPaid
		transactionID = req.TransactionID
	}

	if existing, err := m.Bookings.FindActive(ctx, req.UserEmail, req.ServiceID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateBookingError{Existing: existing}
	}

	svc, err := m.Services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	b := &models.Booking{
		ID:              uuid.New().String(),
		ServiceID:       svc.ID,
		UserEmail:       req.UserEmail,
		UserName:        req.UserName,
		ServiceName:     svc.Name,
		ServiceCategory: svc.Category,
		ServicePrice:    svc.Price,
		ServiceImage:    svc.Image,
		BookingDate:     req.BookingDate.UTC(),
		Location:        req.Location,
		Status:          models.BookingAwaitingDecorator,
		PaymentStatus:   paymentStatus,
		TransactionID:   transactionID,
		ActiveKey:       models.ActiveBookingKey(req.UserEmail, svc.ID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := m.Bookings.Create(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrActiveBookingExists) {
			existing, findErr := m.Bookings.FindActive(ctx, req.UserEmail, req.ServiceID)
			if findErr == nil && existing != nil {
				return nil, &DuplicateBookingError{Existing: existing}
			}
			return nil, utils.Conflict("transaction %s is already attached to a booking", transactionID)
		}
		return nil, err
	}

	m.Logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("serviceId", b.ServiceID),
		zap.String("userEmail", b.UserEmail))
	m.publish(ctx, events.BookingCreated, b)
	return b, nil
}

// GetBooking is visible to the owner, the assigned decorator and admins.
func (m *LifecycleManager) GetBooking(ctx context.Context, id, actorEmail string) (*models.Booking, error) {
	b, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !a.isAdmin() && !a.owns(b) && (b.DecoratorEmail == "" || b.DecoratorEmail != a.email) {
		return nil, utils.Forbidden("booking belongs to another user")
	}
	return b, nil
}

// UpdateSchedule lets the owner edit an unpaid booking; admins may edit any open booking.
func (m *LifecycleManager) UpdateSchedule(ctx context.Context, id string, change ScheduleRequest, actorEmail string) (*models.Booking, error) {
	b, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !a.isAdmin() && !a.owns(b) {
		return nil, utils.Forbidden("only the owner or an admin may change this booking")
	}
	if change.BookingDate.IsZero() || change.Location == "" {
		return nil, utils.Validation("bookingDate and location are required")
	}
	if b.Status.IsTerminal() {
		return nil, utils.ImmutableBooking("booking is %s", b.Status)
	}
	if b.IsPaid() && !a.isAdmin() {
		return nil, utils.ImmutableBooking("paid bookings can only be changed by an admin")
	}

	updated, err := m.Bookings.UpdateSchedule(ctx, id, bookingRepo.ScheduleChange{
		BookingDate:   change.BookingDate.UTC(),
		Location:      change.Location,
		RequireUnpaid: !a.isAdmin(),
		At:            m.now(),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost a race with payment or closure.
		return nil, utils.ImmutableBooking("booking changed while updating; it is now paid or closed")
	}
	return updated, nil
}

// Cancel moves an open booking to cancelled_by_user or cancelled_by_admin and
// releases its decorator.
func (m *LifecycleManager) Cancel(ctx context.Context, id, actorEmail string) (*models.Booking, error) {
	b, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}

	var target models.BookingStatus
	switch {
	case a.isAdmin():
		target = models.BookingCancelledByAdmin
	case a.owns(b):
		target = models.BookingCancelledByUser
	default:
		return nil, utils.Forbidden("only the owner or an admin may cancel this booking")
	}

	if b.Status.IsCancelled() {
		// A previous cancel may have stopped before releasing the decorator.
		if err := m.releaseIfIdle(ctx, b.DecoratorID); err != nil {
			return nil, err
		}
		return b, nil
	}
	if b.Status == models.BookingCompleted {
		return nil, utils.InvalidTransition("completed bookings cannot be cancelled")
	}
	if b.IsPaid() && !a.isAdmin() {
		return nil, utils.ImmutableBooking("paid bookings can only be cancelled by an admin")
	}

	var cancelled *models.Booking
	err = m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		cancelled, err = m.Bookings.Transition(ctx, id, bookingRepo.Transition{
			From:       models.ActiveBookingStatuses,
			To:         target,
			UnpaidOnly: !a.isAdmin(),
			At:         m.now(),
		})
		if err != nil {
			return err
		}
		if cancelled == nil {
			return m.classifyLostCancel(ctx, id)
		}
		if cancelled.DecoratorID != "" {
			return m.Coordinator.Release(ctx, cancelled.DecoratorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("booking cancelled",
		zap.String("bookingId", id),
		zap.String("status", string(target)),
		zap.String("actor", actorEmail))
	m.publish(ctx, events.BookingCancelled, cancelled)
	if cancelled.DecoratorID != "" {
		m.publish(ctx, events.BookingDecoratorReleased, cancelled)
	}
	return cancelled, nil
}

func (m *LifecycleManager) classifyLostCancel(ctx context.Context, id string) error {
	current, err := m.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case current.Status.IsTerminal():
		return utils.InvalidTransition("booking is already %s", current.Status)
	case current.IsPaid():
		return utils.ImmutableBooking("paid bookings can only be cancelled by an admin")
	}
	return utils.Conflict("booking changed concurrently, retry")
}

// releaseIfIdle frees a decorator unless another open booking still holds it.
func (m *LifecycleManager) releaseIfIdle(ctx context.Context, decoratorID string) error {
	if decoratorID == "" {
		return nil
	}
	holding, _, err := m.Bookings.List(ctx, models.BookingQuery{
		DecoratorID: decoratorID,
		Statuses:    []models.BookingStatus{models.BookingDecoratorAssigned, models.BookingInProgress},
		Limit:       1,
	})
	if err != nil {
		return err
	}
	if len(holding) > 0 {
		return nil
	}
	if err := m.Coordinator.Release(ctx, decoratorID); err != nil && !errors.Is(err, utils.ErrNotFound) {
		return err
	}
	// A deleted decorator has nothing left to release.
	return nil
}

// AssignDecorator claims an available decorator for an awaiting booking (admin only).
func (m *LifecycleManager) AssignDecorator(ctx context.Context, id, decoratorID, actorEmail string) (*models.Booking, error) {
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !a.isAdmin() {
		return nil, utils.Forbidden("only admins may assign decorators")
	}
	if decoratorID == "" {
		return nil, utils.Validation("decoratorId is required")
	}
	b, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingAwaitingDecorator {
		return nil, utils.InvalidTransition("booking is %s, not awaiting a decorator", b.Status)
	}

	d, err := m.Decorators.GetByID(ctx, decoratorID)
	if err != nil {
		return nil, err
	}
	if d.Status != models.DecoratorApproved || d.WorkStatus != models.WorkAvailable {
		return nil, utils.DecoratorUnavailable("decorator %s is %s/%s", d.Name, d.Status, d.WorkStatus)
	}

	var assigned *models.Booking
	err = m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		claimed, err := m.Coordinator.Assign(ctx, decoratorID)
		if err != nil {
			return err
		}
		if claimed == nil {
			return utils.DecoratorUnavailable("decorator %s was assigned elsewhere", d.Name)
		}

		ref := claimed.Ref()
		assigned, err = m.Bookings.Transition(ctx, id, bookingRepo.Transition{
			From:   []models.BookingStatus{models.BookingAwaitingDecorator},
			To:     models.BookingDecoratorAssigned,
			Assign: &ref,
			At:     m.now(),
		})
		if err == nil && assigned == nil {
			err = utils.InvalidTransition("booking left awaiting_decorator while assigning")
		}
		if err != nil {
			if relErr := m.Coordinator.Release(ctx, decoratorID); relErr != nil {
				m.Logger.Error("failed to compensate decorator claim",
					zap.String("decoratorId", decoratorID),
					zap.Error(relErr))
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("decorator assigned",
		zap.String("bookingId", id),
		zap.String("decoratorId", decoratorID))
	m.publish(ctx, events.BookingDecoratorAssigned, assigned)
	return assigned, nil
}

// UnassignDecorator returns a decorator_assigned booking to awaiting_decorator (admin only).
func (m *LifecycleManager) UnassignDecorator(ctx context.Context, id, actorEmail string) (*models.Booking, error) {
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !a.isAdmin() {
		return nil, utils.Forbidden("only admins may unassign decorators")
	}
	b, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingDecoratorAssigned {
		return nil, utils.InvalidTransition("booking is %s, no decorator to unassign", b.Status)
	}

	var reopened *models.Booking
	err = m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		reopened, err = m.Bookings.Transition(ctx, id, bookingRepo.Transition{
			From:           []models.BookingStatus{models.BookingDecoratorAssigned},
			To:             models.BookingAwaitingDecorator,
			DecoratorID:    b.DecoratorID,
			ClearDecorator: true,
			At:             m.now(),
		})
		if err != nil {
			return err
		}
		if reopened == nil {
			return utils.InvalidTransition("booking changed while unassigning")
		}
		return m.Coordinator.Release(ctx, b.DecoratorID)
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("decorator unassigned", zap.String("bookingId", id), zap.String("decoratorId", b.DecoratorID))
	released := *reopened
	released.DecoratorID = b.DecoratorID
	m.publish(ctx, events.BookingDecoratorReleased, &released)
	return reopened, nil
}

// next is the only forward step a decorator may take from each state.
var next = map[models.BookingStatus]models.BookingStatus{
	models.BookingDecoratorAssigned: models.BookingInProgress,
	models.BookingInProgress:        models.BookingCompleted,
}

// UpdateStatus advances a booking one step; only its assigned decorator may do so.
func (m *LifecycleManager) UpdateStatus(ctx context.Context, id, status, actorEmail string) (*models.Booking, error) {
	target, err := models.ParseBookingStatus(status)
	if err != nil {
		return nil, utils.Validation("%v", err)
	}
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if a.role != models.RoleDecorator {
		return nil, utils.Forbidden("only decorators may update booking progress")
	}
	b, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch b.Status {
	case models.BookingDecoratorAssigned, models.BookingInProgress, models.BookingCompleted:
	default:
		return nil, utils.InvalidTransition("cannot move booking from %s to %s", b.Status, target)
	}
	if b.DecoratorEmail == "" {
		return nil, utils.InvalidTransition("booking has no assigned decorator")
	}
	if b.DecoratorEmail != a.email {
		return nil, utils.Forbidden("booking is not assigned to you")
	}

	if b.Status == models.BookingCompleted && target == models.BookingCompleted {
		// Finish a completion that stopped before releasing the decorator.
		if err := m.releaseIfIdle(ctx, b.DecoratorID); err != nil {
			return nil, err
		}
		return b, nil
	}
	if next[b.Status] != target {
		return nil, utils.InvalidTransition("cannot move booking from %s to %s", b.Status, target)
	}

	var updated *models.Booking
	err = m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		updated, err = m.Bookings.Transition(ctx, id, bookingRepo.Transition{
			From:           []models.BookingStatus{b.Status},
			To:             target,
			DecoratorEmail: a.email,
			At:             m.now(),
		})
		if err != nil {
			return err
		}
		if updated == nil {
			return utils.InvalidTransition("booking changed while updating status")
		}
		if target != models.BookingCompleted {
			return nil
		}
		if err := m.Decorators.IncrementCompleted(ctx, updated.DecoratorID); err != nil {
			return err
		}
		return m.Coordinator.Release(ctx, updated.DecoratorID)
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("booking status updated",
		zap.String("bookingId", id),
		zap.String("from", string(b.Status)),
		zap.String("to", string(target)))
	m.publish(ctx, events.BookingStatusChanged, updated)
	if target == models.BookingCompleted {
		m.publish(ctx, events.BookingDecoratorReleased, updated)
	}
	return updated, nil
}
