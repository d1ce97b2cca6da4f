package models

// ServiceDemand aggregates bookings and revenue of one service.
type ServiceDemand struct {
	ServiceName string  `bson:"_id" json:"serviceName"`
	Bookings    int64   `bson:"bookings" json:"bookings"`
	Revenue     float64 `bson:"revenue" json:"revenue"`
}

// MonthlyRevenue is the revenue collected in one calendar month ("2006-01").
type MonthlyRevenue struct {
	Month    string  `bson:"_id" json:"month"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Payments int64   `bson:"payments" json:"payments"`
}

// AnalyticsReport is the admin revenue and demand summary.
type AnalyticsReport struct {
	TotalRevenue     float64          `json:"totalRevenue"`
	TotalPayments    int64            `json:"totalPayments"`
	TotalBookings    int64            `json:"totalBookings"`
	PaidBookings     int64            `json:"paidBookings"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	ServiceDemand    []ServiceDemand  `json:"serviceDemand"`
	MonthlyRevenue   []MonthlyRevenue `json:"monthlyRevenue"`
}
