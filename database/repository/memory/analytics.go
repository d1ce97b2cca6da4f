package memory

import (
	"context"
	"sort"

	"decorhub/models"
)

type analyticsStore struct{ *Store }

func (s *analyticsStore) Report(_ context.Context) (*models.AnalyticsReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &models.AnalyticsReport{BookingsByStatus: map[string]int64{}}

	monthly := map[string]*models.MonthlyRevenue{}
	for _, p := range s.payments {
		report.TotalRevenue += p.Price
		report.TotalPayments++
		month := p.PaymentDate.UTC().Format("2006-01")
		m, ok := monthly[month]
		if !ok {
			m = &models.MonthlyRevenue{Month: month}
			monthly[month] = m
		}
		m.Revenue += p.Price
		m.Payments++
	}
	report.MonthlyRevenue = []models.MonthlyRevenue{}
	for _, m := range monthly {
		report.MonthlyRevenue = append(report.MonthlyRevenue, *m)
	}
	sort.Slice(report.MonthlyRevenue, func(i, j int) bool {
		return report.MonthlyRevenue[i].Month < report.MonthlyRevenue[j].Month
	})

	demand := map[string]*models.ServiceDemand{}
	for _, b := range s.bookings {
		report.TotalBookings++
		report.BookingsByStatus[string(b.Status)]++
		d, ok := demand[b.ServiceName]
		if !ok {
			d = &models.ServiceDemand{ServiceName: b.ServiceName}
			demand[b.ServiceName] = d
		}
		d.Bookings++
		if b.IsPaid() {
			report.PaidBookings++
			d.Revenue += b.ServicePrice
		}
	}
	report.ServiceDemand = []models.ServiceDemand{}
	for _, d := range demand {
		report.ServiceDemand = append(report.ServiceDemand, *d)
	}
	sort.Slice(report.ServiceDemand, func(i, j int) bool {
		a, b := report.ServiceDemand[i], report.ServiceDemand[j]
		if a.Bookings != b.Bookings {
			return a.Bookings > b.Bookings
		}
		return a.ServiceName < b.ServiceName
	})
	return report, nil
}
