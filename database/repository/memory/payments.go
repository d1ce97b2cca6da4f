package memory

import (
	"context"
	"sort"

	"decorhub/models"
)

type paymentStore struct{ *Store }

func (s *paymentStore) GetByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[transactionID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *paymentStore) Insert(_ context.Context, p *models.Payment) (*models.Payment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.payments[p.TransactionID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	stored := *p
	s.payments[p.TransactionID] = &stored
	cp := stored
	return &cp, true, nil
}

func (s *paymentStore) ListByCustomer(_ context.Context, email string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Payment{}
	for _, p := range s.payments {
		if p.Customer == email {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

// PaymentCount reports how many ledger entries exist.
func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}
