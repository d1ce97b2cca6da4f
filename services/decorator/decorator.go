package decorator

import (
	"context"
	"errors"
	"strings"
	"time"

	"decorhub/database"
	bookingRepo "decorhub/database/repository/booking"
	decoratorRepo "decorhub/database/repository/decorator"
	userRepo "decorhub/database/repository/user"
	"decorhub/events"
	"decorhub/models"
	"decorhub/services/assignment"
	"decorhub/services/guard"
	"decorhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles decorator applications and their approval workflow.
type Service struct {
	Decorators  decoratorRepo.DecoratorRepository
	Bookings    bookingRepo.BookingRepository
	Users       userRepo.UserRepository
	Guard       guard.RoleResolver
	Coordinator *assignment.Coordinator
	Tx          database.Transactor
	Events      events.Publisher
	Logger      *zap.Logger
}

// Application is the form a user submits to become a decorator.
type Application struct {
	Name        string   `json:"name"`
	District    string   `json:"district"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio"`
	Photo       string   `json:"photo"`
}

func (s *Service) requireAdmin(ctx context.Context, actorEmail string) error {
	role, err := s.Guard.RoleOf(ctx, actorEmail)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		return utils.Forbidden("only admins may manage decorators")
	}
	return nil
}

// Apply records a pending application for the caller.
func (s *Service) Apply(ctx context.Context, app Application, actorEmail string) (*models.Decorator, error) {
	if actorEmail == "" {
		return nil, utils.Unauthorized("missing verified email")
	}
	app.Name = strings.TrimSpace(app.Name)
	app.District = strings.TrimSpace(app.District)
	if app.Name == "" || app.District == "" {
		return nil, utils.Validation("name and district are required")
	}

	d := &models.Decorator{
		ID:          uuid.New().String(),
		Name:        app.Name,
		Email:       actorEmail,
		District:    app.District,
		Specialties: app.Specialties,
		Status:      models.DecoratorPending,
		WorkStatus:  models.WorkUnavailable,
		Bio:         app.Bio,
		Photo:       app.Photo,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Decorators.Create(ctx, d); err != nil {
		if errors.Is(err, decoratorRepo.ErrDecoratorExists) {
			return nil, utils.Conflict("you have already applied")
		}
		return nil, err
	}
	s.Logger.Info("decorator application received", zap.String("decoratorId", d.ID), zap.String("email", d.Email))
	return d, nil
}

func (s *Service) List(ctx context.Context, f models.DecoratorFilter) ([]models.Decorator, error) {
	return s.Decorators.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Decorator, error) {
	return s.Decorators.GetByID(ctx, id)
}

// UpdateStatus approves, rejects or disables a decorator and keeps the
// user's role in step. The work status follows only while no booking holds
// the decorator.
func (s *Service) UpdateStatus(ctx context.Context, id, status, actorEmail string) (*models.Decorator, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}
	target, err := models.ParseDecoratorStatus(status)
	if err != nil {
		return nil, utils.Validation("%v", err)
	}

	d, err := s.Decorators.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	role := models.RoleCustomer
	work := models.WorkUnavailable
	if target == models.DecoratorApproved {
		role = models.RoleDecorator
		work = models.WorkAvailable
	}
	if err := s.Decorators.SetWorkStatusIfIdle(ctx, id, work); err != nil {
		return nil, err
	}
	if _, err := s.Users.UpdateRole(ctx, d.Email, role); err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
		s.Logger.Warn("decorator has no user record; role not synced", zap.String("email", d.Email))
	}

	s.Logger.Info("decorator status updated",
		zap.String("decoratorId", id),
		zap.String("status", string(target)),
		zap.String("actor", actorEmail))
	return s.Decorators.GetByID(ctx, id)
}

// Delete disables the decorator so it cannot be claimed, unassigns it from
// every open booking, releases it and then removes the record.
func (s *Service) Delete(ctx context.Context, id, actorEmail string) error {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return err
	}
	d, err := s.Decorators.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Status != models.DecoratorDisabled {
		if _, err := s.Decorators.UpdateStatus(ctx, id, models.DecoratorDisabled); err != nil {
			return err
		}
	}

	holding, err := s.holding(ctx, id)
	if err != nil {
		return err
	}

	var reopened []*models.Booking
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		reopened = reopened[:0]
		for _, b := range holding {
			r, err := s.Bookings.Transition(ctx, b.ID, bookingRepo.Transition{
				From:           []models.BookingStatus{models.BookingDecoratorAssigned, models.BookingInProgress},
				To:             models.BookingAwaitingDecorator,
				DecoratorID:    id,
				ClearDecorator: true,
				At:             time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			if r != nil {
				reopened = append(reopened, r)
			}
		}
		if err := s.Coordinator.Release(ctx, id); err != nil {
			return err
		}
		// An assignment that claimed before the disable may have landed since the listing.
		late, err := s.holding(ctx, id)
		if err != nil {
			return err
		}
		if len(late) > 0 {
			return utils.Conflict("decorator was assigned to booking %s while being deleted, retry", late[0].ID)
		}
		return s.Decorators.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if _, err := s.Users.UpdateRole(ctx, d.Email, models.RoleCustomer); err != nil && !errors.Is(err, utils.ErrNotFound) {
		s.Logger.Warn("failed to reset role of deleted decorator", zap.String("email", d.Email), zap.Error(err))
	}
	for _, b := range reopened {
		if s.Events == nil {
			break
		}
		released := *b
		released.DecoratorID = id
		if err := s.Events.Publish(ctx, events.NewBookingEvent(events.BookingDecoratorReleased, &released)); err != nil {
			s.Logger.Warn("failed to publish booking event", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	s.Logger.Info("decorator deleted", zap.String("decoratorId", id), zap.Int("bookingsReopened", len(reopened)))
	return nil
}

func (s *Service) holding(ctx context.Context, id string) ([]models.Booking, error) {
	held, _, err := s.Bookings.List(ctx, models.BookingQuery{
		DecoratorID: id,
		Statuses:    []models.BookingStatus{models.BookingDecoratorAssigned, models.BookingInProgress},
	})
	return held, err
}
