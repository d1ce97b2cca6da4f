package analyticsRepo

import (
	"context"

	"decorhub/models"
)

// AnalyticsRepository aggregates the payment ledger and bookings.
type AnalyticsRepository interface {
	// Report returns raw sums; callers round money fields.
	Report(ctx context.Context) (*models.AnalyticsReport, error)
}
