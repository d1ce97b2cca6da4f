package guard

import (
	"context"
	"fmt"

	userRepo "decorhub/database/repository/user"
	"decorhub/models"
	"decorhub/utils"
)

// RoleResolver looks up the role of a verified email.
type RoleResolver interface {
	RoleOf(ctx context.Context, email string) (models.Role, error)
}

// RoleGuard checks the stored role of a verified email before an action.
type RoleGuard struct {
	Users userRepo.UserRepository
}

func NewRoleGuard(users userRepo.UserRepository) *RoleGuard {
	return &RoleGuard{Users: users}
}

// RoleOf returns the stored role; emails without a user record are customers.
func (g *RoleGuard) RoleOf(ctx context.Context, email string) (models.Role, error) {
	if email == "" {
		return "", utils.Unauthorized("missing verified email")
	}
	u, err := g.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to resolve role of %s: %w", email, err)
	}
	if u == nil {
		return models.RoleCustomer, nil
	}
	if role, err := models.ParseRole(string(u.Role)); err == nil {
		return role, nil
	}
	return models.RoleCustomer, nil
}

// Require fails with Forbidden unless the email holds one of roles.
func (g *RoleGuard) Require(ctx context.Context, email string, roles ...models.Role) (models.Role, error) {
	role, err := g.RoleOf(ctx, email)
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if role == r {
			return role, nil
		}
	}
	return role, utils.Forbidden("role %s may not perform this action", role)
}

// IsAdmin reports whether email holds the admin role.
func (g *RoleGuard) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := g.RoleOf(ctx, email)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}
