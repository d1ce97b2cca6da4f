package serviceRepo

import (
	"context"

	"decorhub/models"
)

// ServiceRepository defines catalog persistence.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// Update applies the non-nil fields of upd and returns the updated entry.
	Update(ctx context.Context, id string, upd models.ServiceUpdate) (*models.Service, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter models.ServiceFilter) ([]models.Service, error)
	// Categories returns the distinct catalog categories, sorted.
	Categories(ctx context.Context) ([]string, error)
	ListByDecoratorEmail(ctx context.Context, email string) ([]models.Service, error)
}
