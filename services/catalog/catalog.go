package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	serviceRepo "decorhub/database/repository/service"
	"decorhub/models"
	"decorhub/services/guard"
	"decorhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	categoriesKey = "catalog:categories"
	categoriesTTL = 5 * time.Minute
)

// Service manages catalog entries. Writes are admin only; reads are public.
type Service struct {
	Repo   serviceRepo.ServiceRepository
	Guard  guard.RoleResolver
	Cache  *redis.Client
	Logger *zap.Logger
}

func (s *Service) requireAdmin(ctx context.Context, actorEmail string) error {
	role, err := s.Guard.RoleOf(ctx, actorEmail)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		return utils.Forbidden("only admins may change the catalog")
	}
	return nil
}

func validateService(svc *models.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	svc.Category = strings.TrimSpace(svc.Category)
	switch {
	case svc.Name == "":
		return utils.Validation("name is required")
	case svc.Category == "":
		return utils.Validation("category is required")
	case svc.Price <= 0:
		return utils.Validation("price must be positive")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, svc *models.Service, actorEmail string) (*models.Service, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	svc.ID = uuid.New().String()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	s.Logger.Info("service created", zap.String("serviceId", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Service, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, upd models.ServiceUpdate, actorEmail string) (*models.Service, error) {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return nil, err
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, utils.Validation("name cannot be empty")
	}
	if upd.Category != nil && strings.TrimSpace(*upd.Category) == "" {
		return nil, utils.Validation("category cannot be empty")
	}
	if upd.Price != nil && *upd.Price <= 0 {
		return nil, utils.Validation("price must be positive")
	}
	svc, err := s.Repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id, actorEmail string) error {
	if err := s.requireAdmin(ctx, actorEmail); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	s.Logger.Info("service deleted", zap.String("serviceId", id))
	return nil
}

// Search filters the catalog by name, category and price range.
func (s *Service) Search(ctx context.Context, f models.ServiceFilter) ([]models.Service, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, utils.Validation("minPrice exceeds maxPrice")
	}
	return s.Repo.Search(ctx, f)
}

// ListByDecorator returns the services offered by the calling decorator.
func (s *Service) ListByDecorator(ctx context.Context, actorEmail string) ([]models.Service, error) {
	role, err := s.Guard.RoleOf(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if role != models.RoleDecorator {
		return nil, utils.Forbidden("only decorators have projects")
	}
	return s.Repo.ListByDecoratorEmail(ctx, actorEmail)
}

// Categories returns the distinct categories, served from redis when cached.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, categoriesKey).Bytes(); err == nil {
			var cached []string
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.Logger.Warn("category cache read failed", zap.Error(err))
		}
	}

	categories, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if raw, err := json.Marshal(categories); err == nil {
			if err := s.Cache.Set(ctx, categoriesKey, raw, categoriesTTL).Err(); err != nil {
				s.Logger.Warn("category cache write failed", zap.Error(err))
			}
		}
	}
	return categories, nil
}

func (s *Service) invalidateCategories(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, categoriesKey).Err(); err != nil {
		s.Logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
