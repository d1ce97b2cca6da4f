package booking

import (
	"context"

	"decorhub/models"
	"decorhub/utils"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// NormalizeQuery applies listing defaults and rejects unknown sort options.
func NormalizeQuery(q models.BookingQuery) (models.BookingQuery, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if !models.BookingSortFields[q.SortBy] {
		return q, utils.Validation("cannot sort by %q", q.SortBy)
	}
	switch q.SortOrder {
	case "":
		q.SortOrder = "desc"
	case "asc", "desc":
	default:
		return q, utils.Validation("sortOrder must be asc or desc")
	}
	return q, nil
}

// ListAll is the paginated admin listing.
func (m *LifecycleManager) ListAll(ctx context.Context, q models.BookingQuery, actorEmail string) (*models.BookingPage, error) {
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !a.isAdmin() {
		return nil, utils.Forbidden("only admins may list all bookings")
	}
	q, err = NormalizeQuery(q)
	if err != nil {
		return nil, err
	}

	items, total, err := m.Bookings.List(ctx, q)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &models.BookingPage{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}, nil
}

// ListForUser returns a customer's bookings, newest first.
func (m *LifecycleManager) ListForUser(ctx context.Context, userEmail, actorEmail string) ([]models.Booking, error) {
	if userEmail == "" {
		return nil, utils.Validation("email is required")
	}
	if userEmail != actorEmail {
		a, err := m.resolve(ctx, actorEmail)
		if err != nil {
			return nil, err
		}
		if !a.isAdmin() {
			return nil, utils.Forbidden("cannot list another user's bookings")
		}
	}
	items, _, err := m.Bookings.List(ctx, models.BookingQuery{UserEmail: userEmail})
	return items, err
}

// ListForDecorator returns the bookings assigned to the calling decorator.
func (m *LifecycleManager) ListForDecorator(ctx context.Context, actorEmail string) ([]models.Booking, error) {
	a, err := m.resolve(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if a.role != models.RoleDecorator {
		return nil, utils.Forbidden("only decorators have assigned projects")
	}
	items, _, err := m.Bookings.List(ctx, models.BookingQuery{
		DecoratorEmail: a.email,
		SortBy:         "bookingDate",
		SortOrder:      "asc",
	})
	return items, err
}
