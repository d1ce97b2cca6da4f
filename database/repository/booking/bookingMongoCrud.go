package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decorhub/database"
	"decorhub/models"
	"decorhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const opTimeout = 5 * time.Second

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the repository and its indexes.
func NewMongoBookingRepo(ctx context.Context, db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Warn("booking indexes not created", zap.Error(err))
	}
	return repo
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrActiveBookingExists
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its id.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// FindActive returns the open booking for (userEmail, serviceID), or nil.
func (r *MongoBookingRepo) FindActive(ctx context.Context, userEmail, serviceID string) (*models.Booking, error) {
	b, err := r.findOne(ctx, bson.M{"activeKey": models.ActiveBookingKey(userEmail, serviceID)})
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("booking not found")
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}

// UpdateSchedule sets the date and location when the booking is still open.
func (r *MongoBookingRepo) UpdateSchedule(ctx context.Context, id string, change ScheduleChange) (*models.Booking, error) {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": models.ActiveBookingStatuses},
	}
	if change.RequireUnpaid {
		filter["paymentStatus"] = models.PaymentUnpaid
	}
	update := bson.M{"$set": bson.M{
		"bookingDate": change.BookingDate,
		"location":    change.Location,
		"updatedAt":   change.At,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// Transition applies t atomically.
func (r *MongoBookingRepo) Transition(ctx context.Context, id string, t Transition) (*models.Booking, error) {
	return r.findOneAndUpdate(ctx, t.filter(id), t.update())
}

// MarkPaid matches an unpaid booking or one already carrying transactionID,
// so re-running a half-finished reconciliation converges.
func (r *MongoBookingRepo) MarkPaid(ctx context.Context, id, transactionID string, at time.Time) (*models.Booking, error) {
	filter := bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{"paymentStatus": models.PaymentUnpaid},
			bson.M{"transactionId": transactionID},
		},
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentPaid,
		"transactionId": transactionID,
		"updatedAt":     at,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *MongoBookingRepo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, opTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return &b, nil
}
