package decoratorRepo

import (
	"context"
	"errors"

	"decorhub/models"
)

// ErrDecoratorExists is returned by Create when the email already applied.
var ErrDecoratorExists = errors.New("decorator application already exists")

// DecoratorRepository defines decorator persistence. Claim, Release and the
// status writes are single-document conditional updates.
type DecoratorRepository interface {
	Create(ctx context.Context, d *models.Decorator) error
	GetByID(ctx context.Context, id string) (*models.Decorator, error)
	// GetByEmail returns nil, nil when no decorator carries the email.
	GetByEmail(ctx context.Context, email string) (*models.Decorator, error)
	List(ctx context.Context, filter models.DecoratorFilter) ([]models.Decorator, error)
	UpdateStatus(ctx context.Context, id string, status models.DecoratorStatus) (*models.Decorator, error)

	// Claim moves an approved decorator from available to assigned.
	// It returns nil, nil when the decorator was not available.
	Claim(ctx context.Context, id string) (*models.Decorator, error)
	// Release sets the decorator available regardless of its current work status.
	Release(ctx context.Context, id string) error
	// SetWorkStatusIfIdle changes the work status unless the decorator is assigned.
	SetWorkStatusIfIdle(ctx context.Context, id string, ws models.WorkStatus) error
	IncrementCompleted(ctx context.Context, id string) error
	// Delete removes a decorator that holds no assignment.
	Delete(ctx context.Context, id string) error
}
