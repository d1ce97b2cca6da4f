package memory

import (
	"context"
	"sort"
	"time"

	"decorhub/models"
	"decorhub/utils"
)

type userStore struct{ *Store }

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) UpsertLogin(_ context.Context, user *models.User, at time.Time) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user.Email]
	created := !ok
	if created {
		u = &models.User{Email: user.Email, Role: user.Role, CreatedAt: at}
		s.users[user.Email] = u
	}
	if user.Name != "" {
		u.Name = user.Name
	}
	if user.Image != "" {
		u.Image = user.Image
	}
	u.LastLoggedIn = at
	cp := *u
	return &cp, created, nil
}

func (s *userStore) UpdateRole(_ context.Context, email string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, utils.NotFound("user %s not found", email)
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (s *userStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
