package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"decorhub/models"
	"decorhub/utils"
)

type serviceStore struct{ *Store }

func (s *serviceStore) Create(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; ok {
		return utils.Conflict("service %s already exists", svc.ID)
	}
	cp := *svc
	s.services[svc.ID] = &cp
	return nil
}

func (s *serviceStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, utils.NotFound("service not found")
	}
	cp := *svc
	return &cp, nil
}

func (s *serviceStore) Update(_ context.Context, id string, upd models.ServiceUpdate) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, utils.NotFound("service not found")
	}
	if upd.Name != nil {
		svc.Name = *upd.Name
	}
	if upd.Category != nil {
		svc.Category = *upd.Category
	}
	if upd.Price != nil {
		svc.Price = *upd.Price
	}
	if upd.Unit != nil {
		svc.Unit = *upd.Unit
	}
	if upd.Description != nil {
		svc.Description = *upd.Description
	}
	if upd.Image != nil {
		svc.Image = *upd.Image
	}
	if upd.Decorator != nil {
		owner := *upd.Decorator
		svc.Decorator = &owner
	}
	svc.UpdatedAt = time.Now().UTC()
	cp := *svc
	return &cp, nil
}

func (s *serviceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return utils.NotFound("service not found")
	}
	delete(s.services, id)
	return nil
}

func (s *serviceStore) Search(_ context.Context, f models.ServiceFilter) ([]models.Service, error) {
	needle := strings.ToLower(f.Search)
	return s.collect(func(svc *models.Service) bool {
		if needle != "" && !strings.Contains(strings.ToLower(svc.Name), needle) {
			return false
		}
		if f.Category != "" && svc.Category != f.Category {
			return false
		}
		if f.MinPrice != nil && svc.Price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && svc.Price > *f.MaxPrice {
			return false
		}
		return true
	}), nil
}

func (s *serviceStore) ListByDecoratorEmail(_ context.Context, email string) ([]models.Service, error) {
	return s.collect(func(svc *models.Service) bool {
		return svc.Decorator != nil && svc.Decorator.Email == email
	}), nil
}

func (s *serviceStore) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, svc := range s.services {
		if svc.Category != "" && !seen[svc.Category] {
			seen[svc.Category] = true
			categories = append(categories, svc.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *serviceStore) collect(keep func(*models.Service) bool) []models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if keep(svc) {
			out = append(out, *svc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
