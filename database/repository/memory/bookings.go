package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	bookingRepo "decorhub/database/repository/booking"
	"decorhub/models"
	"decorhub/utils"
)

type bookingStore struct{ *Store }

func (s *bookingStore) Create(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if b.ActiveKey != "" && existing.ActiveKey == b.ActiveKey {
			return bookingRepo.ErrActiveBookingExists
		}
		if b.TransactionID != "" && existing.TransactionID == b.TransactionID {
			return bookingRepo.ErrActiveBookingExists
		}
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *bookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, utils.NotFound("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (s *bookingStore) FindActive(_ context.Context, userEmail, serviceID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.ActiveBookingKey(userEmail, serviceID)
	for _, b := range s.bookings {
		if b.ActiveKey == key {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *bookingStore) UpdateSchedule(_ context.Context, id string, change bookingRepo.ScheduleChange) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Status.IsTerminal() {
		return nil, nil
	}
	if change.RequireUnpaid && b.PaymentStatus != models.PaymentUnpaid {
		return nil, nil
	}
	b.BookingDate = change.BookingDate
	b.Location = change.Location
	b.UpdatedAt = change.At
	cp := *b
	return &cp, nil
}

func (s *bookingStore) Transition(_ context.Context, id string, t bookingRepo.Transition) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || !t.Matches(b) {
		return nil, nil
	}
	t.Apply(b)
	cp := *b
	return &cp, nil
}

func (s *bookingStore) MarkPaid(_ context.Context, id, transactionID string, at time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	if b.PaymentStatus != models.PaymentUnpaid && b.TransactionID != transactionID {
		return nil, nil
	}
	b.PaymentStatus = models.PaymentPaid
	b.TransactionID = transactionID
	b.UpdatedAt = at
	cp := *b
	return &cp, nil
}

func (s *bookingStore) List(_ context.Context, q models.BookingQuery) ([]models.Booking, int64, error) {
	s.mu.Lock()
	matched := []models.Booking{}
	for _, b := range s.bookings {
		if bookingMatches(b, q) {
			matched = append(matched, *b)
		}
	}
	s.mu.Unlock()

	sortBy, dir := bookingRepo.SortSpec(q)
	sort.SliceStable(matched, func(i, j int) bool {
		c := compareBookings(&matched[i], &matched[j], sortBy)
		if c == 0 {
			return matched[i].ID < matched[j].ID
		}
		return c*dir < 0
	})

	total := int64(len(matched))
	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * q.Limit
		if start >= len(matched) {
			return []models.Booking{}, total, nil
		}
		end := start + q.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func bookingMatches(b *models.Booking, q models.BookingQuery) bool {
	if q.UserEmail != "" && b.UserEmail != q.UserEmail {
		return false
	}
	if q.DecoratorEmail != "" && b.DecoratorEmail != q.DecoratorEmail {
		return false
	}
	if q.DecoratorID != "" && b.DecoratorID != q.DecoratorID {
		return false
	}
	if q.PaymentStatus != "" && b.PaymentStatus != q.PaymentStatus {
		return false
	}
	if len(q.Statuses) > 0 {
		for _, st := range q.Statuses {
			if b.Status == st {
				return true
			}
		}
		return false
	}
	return true
}

func compareBookings(a, b *models.Booking, field string) int {
	switch field {
	case "bookingDate":
		return a.BookingDate.Compare(b.BookingDate)
	case "servicePrice":
		switch {
		case a.ServicePrice < b.ServicePrice:
			return -1
		case a.ServicePrice > b.ServicePrice:
			return 1
		}
		return 0
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}
