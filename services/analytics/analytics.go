package analytics

import (
	"context"

	analyticsRepo "decorhub/database/repository/analytics"
	"decorhub/models"
	"decorhub/services/guard"

	"github.com/shopspring/decimal"
)

// Service builds the admin revenue and demand report.
type Service struct {
	Repo  analyticsRepo.AnalyticsRepository
	Guard *guard.RoleGuard
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func (s *Service) Report(ctx context.Context, actorEmail string) (*models.AnalyticsReport, error) {
	if _, err := s.Guard.Require(ctx, actorEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	report, err := s.Repo.Report(ctx)
	if err != nil {
		return nil, err
	}

	report.TotalRevenue = round(report.TotalRevenue)
	for i := range report.MonthlyRevenue {
		report.MonthlyRevenue[i].Revenue = round(report.MonthlyRevenue[i].Revenue)
	}
	for i := range report.ServiceDemand {
		report.ServiceDemand[i].Revenue = round(report.ServiceDemand[i].Revenue)
	}
	return report, nil
}
