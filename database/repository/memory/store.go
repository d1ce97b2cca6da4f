// Package memory is an in-process Entity Store. It emulates the atomic
// conditional writes and unique indexes of the Mongo repositories under one
// mutex, and backs tests and STORE=memory.
package memory

import (
	"sync"

	analyticsRepo "decorhub/database/repository/analytics"
	bookingRepo "decorhub/database/repository/booking"
	decoratorRepo "decorhub/database/repository/decorator"
	paymentRepo "decorhub/database/repository/payment"
	serviceRepo "decorhub/database/repository/service"
	userRepo "decorhub/database/repository/user"
	"decorhub/models"
)

type Store struct {
	mu         sync.Mutex
	bookings   map[string]*models.Booking
	services   map[string]*models.Service
	payments   map[string]*models.Payment // by transactionId
	users      map[string]*models.User    // by email
	decorators map[string]*models.Decorator
}

func NewStore() *Store {
	return &Store{
		bookings:   map[string]*models.Booking{},
		services:   map[string]*models.Service{},
		payments:   map[string]*models.Payment{},
		users:      map[string]*models.User{},
		decorators: map[string]*models.Decorator{},
	}
}

func (s *Store) Bookings() bookingRepo.BookingRepository       { return &bookingStore{s} }
func (s *Store) Services() serviceRepo.ServiceRepository       { return &serviceStore{s} }
func (s *Store) Payments() paymentRepo.PaymentRepository       { return &paymentStore{s} }
func (s *Store) Users() userRepo.UserRepository                { return &userStore{s} }
func (s *Store) Decorators() decoratorRepo.DecoratorRepository { return &decoratorStore{s} }
func (s *Store) Analytics() analyticsRepo.AnalyticsRepository  { return &analyticsStore{s} }
