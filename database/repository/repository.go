package repository

import (
	"context"

	analyticsRepo "decorhub/database/repository/analytics"
	bookingRepo "decorhub/database/repository/booking"
	decoratorRepo "decorhub/database/repository/decorator"
	"decorhub/database/repository/memory"
	paymentRepo "decorhub/database/repository/payment"
	serviceRepo "decorhub/database/repository/service"
	userRepo "decorhub/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces so wiring code imports one package.
type (
	BookingRepository   = bookingRepo.BookingRepository
	ServiceRepository   = serviceRepo.ServiceRepository
	PaymentRepository   = paymentRepo.PaymentRepository
	UserRepository      = userRepo.UserRepository
	DecoratorRepository = decoratorRepo.DecoratorRepository
	AnalyticsRepository = analyticsRepo.AnalyticsRepository
)

// Repositories is one Entity Store backend.
type Repositories struct {
	Bookings   BookingRepository
	Services   ServiceRepository
	Payments   PaymentRepository
	Users      UserRepository
	Decorators DecoratorRepository
	Analytics  AnalyticsRepository
}

// NewMongoRepositories builds the Mongo-backed store and ensures its indexes.
func NewMongoRepositories(ctx context.Context, db *mongo.Database) *Repositories {
	return &Repositories{
		Bookings:   bookingRepo.NewMongoBookingRepo(ctx, db),
		Services:   serviceRepo.NewMongoServiceRepo(ctx, db),
		Payments:   paymentRepo.NewMongoPaymentRepo(ctx, db),
		Users:      userRepo.NewMongoUserRepo(ctx, db),
		Decorators: decoratorRepo.NewMongoDecoratorRepo(ctx, db),
		Analytics:  analyticsRepo.NewMongoAnalyticsRepo(db),
	}
}

// NewMemoryRepositories builds the in-process store.
func NewMemoryRepositories() *Repositories {
	s := memory.NewStore()
	return &Repositories{
		Bookings:   s.Bookings(),
		Services:   s.Services(),
		Payments:   s.Payments(),
		Users:      s.Users(),
		Decorators: s.Decorators(),
		Analytics:  s.Analytics(),
	}
}
