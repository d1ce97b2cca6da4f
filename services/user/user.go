package user

import (
	"context"
	"time"

	userRepo "decorhub/database/repository/user"
	"decorhub/models"
	"decorhub/services/guard"
	"decorhub/utils"

	"go.uber.org/zap"
)

// UserService manages accounts created from verified identities.
type UserService interface {
	Login(ctx context.Context, req LoginRequest, verifiedEmail string) (*models.User, bool, error)
	RoleOf(ctx context.Context, email string) (models.Role, error)
	UpdateRole(ctx context.Context, email, role, actorEmail string) (*models.User, error)
	List(ctx context.Context, actorEmail string) ([]models.User, error)
}

// LoginRequest is the profile the client reports at sign-in.
type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Guard  *guard.RoleGuard
	Logger *zap.Logger
}

var _ UserService = (*DefaultUserService)(nil)

// Login creates the user as a customer on first sign-in and refreshes
// last_loggedIn afterwards. The body email must match the verified one.
func (s *DefaultUserService) Login(ctx context.Context, req LoginRequest, verifiedEmail string) (*models.User, bool, error) {
	if verifiedEmail == "" {
		return nil, false, utils.Unauthorized("missing verified email")
	}
	if req.Email != "" && req.Email != verifiedEmail {
		return nil, false, utils.Forbidden("email does not match the signed-in account")
	}
	u, created, err := s.Repo.UpsertLogin(ctx, &models.User{
		Email: verifiedEmail,
		Name:  req.Name,
		Image: req.Image,
		Role:  models.RoleCustomer,
	}, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	if created {
		s.Logger.Info("user registered", zap.String("email", verifiedEmail))
	}
	return u, created, nil
}

func (s *DefaultUserService) RoleOf(ctx context.Context, email string) (models.Role, error) {
	if email == "" {
		return "", utils.Validation("email is required")
	}
	return s.Guard.RoleOf(ctx, email)
}

// UpdateRole changes a user's role (admin only).
func (s *DefaultUserService) UpdateRole(ctx context.Context, email, role, actorEmail string) (*models.User, error) {
	if _, err := s.Guard.Require(ctx, actorEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, utils.Validation("email is required")
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, utils.Validation("%v", err)
	}
	u, err := s.Repo.UpdateRole(ctx, email, r)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("user role updated", zap.String("email", email), zap.String("role", string(r)), zap.String("actor", actorEmail))
	return u, nil
}

func (s *DefaultUserService) List(ctx context.Context, actorEmail string) ([]models.User, error) {
	if _, err := s.Guard.Require(ctx, actorEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}
