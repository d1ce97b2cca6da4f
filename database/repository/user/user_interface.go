package userRepo

import (
	"context"
	"time"

	"decorhub/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByEmail retrieves a user by its email address, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpsertLogin creates the user with the default role on first login and
	// refreshes last_loggedIn otherwise.
	UpsertLogin(ctx context.Context, user *models.User, at time.Time) (*models.User, bool, error)
	// UpdateRole changes the role of an existing user.
	UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error)
	// List retrieves all users, newest first.
	List(ctx context.Context) ([]models.User, error)
}
