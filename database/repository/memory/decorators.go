package memory

import (
	"context"
	"sort"

	decoratorRepo "decorhub/database/repository/decorator"
	"decorhub/models"
	"decorhub/utils"
)

type decoratorStore struct{ *Store }

func (s *decoratorStore) Create(_ context.Context, d *models.Decorator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.decorators {
		if existing.Email == d.Email || existing.ID == d.ID {
			return decoratorRepo.ErrDecoratorExists
		}
	}
	cp := *d
	s.decorators[d.ID] = &cp
	return nil
}

func (s *decoratorStore) GetByID(_ context.Context, id string) (*models.Decorator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.decorators[id]
	if !ok {
		return nil, utils.NotFound("decorator not found")
	}
	cp := *d
	return &cp, nil
}

func (s *decoratorStore) GetByEmail(_ context.Context, email string) (*models.Decorator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.decorators {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *decoratorStore) List(_ context.Context, f models.DecoratorFilter) ([]models.Decorator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Decorator{}
	for _, d := range s.decorators {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.WorkStatus != "" && d.WorkStatus != f.WorkStatus {
			continue
		}
		if f.District != "" && d.District != f.District {
			continue
		}
		out = append(out, *d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *decoratorStore) UpdateStatus(_ context.Context, id string, status models.DecoratorStatus) (*models.Decorator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.decorators[id]
	if !ok {
		return nil, utils.NotFound("decorator not found")
	}
	d.Status = status
	cp := *d
	return &cp, nil
}

func (s *decoratorStore) Claim(_ context.Context, id string) (*models.Decorator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.decorators[id]
	if !ok || d.Status != models.DecoratorApproved || d.WorkStatus != models.WorkAvailable {
		return nil, nil
	}
	d.WorkStatus = models.WorkAssigned
	cp := *d
	return &cp, nil
}

func (s *decoratorStore) Release(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.decorators[id]
	if !ok {
		return utils.NotFound("decorator not found")
	}
	d.WorkStatus = models.WorkAvailable
	return nil
}

func (s *decoratorStore) SetWorkStatusIfIdle(_ context.Context, id string, ws models.WorkStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.decorators[id]; ok && d.WorkStatus != models.WorkAssigned {
		d.WorkStatus = ws
	}
	return nil
}

func (s *decoratorStore) IncrementCompleted(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.decorators[id]; ok {
		d.CompletedProjects++
	}
	return nil
}

func (s *decoratorStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.decorators[id]
	if !ok {
		return utils.NotFound("decorator not found")
	}
	if d.WorkStatus == models.WorkAssigned {
		return utils.Conflict("decorator still holds an assignment")
	}
	delete(s.decorators, id)
	return nil
}
