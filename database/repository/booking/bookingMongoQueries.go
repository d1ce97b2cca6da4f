package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"decorhub/database"
	"decorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns the bookings matching q and the total match count.
func (r *MongoBookingRepo) List(ctx context.Context, q models.BookingQuery) ([]models.Booking, int64, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := queryFilter(q)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sortBy, dir := SortSpec(q)
	opts := options.Find().SetSort(bson.D{{Key: sortBy, Value: dir}, {Key: "id", Value: 1}})
	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * q.Limit)).SetLimit(int64(q.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func queryFilter(q models.BookingQuery) bson.M {
	filter := bson.M{}
	if q.UserEmail != "" {
		filter["userEmail"] = q.UserEmail
	}
	if q.DecoratorEmail != "" {
		filter["decoratorEmail"] = q.DecoratorEmail
	}
	if q.DecoratorID != "" {
		filter["decoratorId"] = q.DecoratorID
	}
	if q.PaymentStatus != "" {
		filter["paymentStatus"] = q.PaymentStatus
	}
	if len(q.Statuses) > 0 {
		filter["status"] = bson.M{"$in": q.Statuses}
	}
	return filter
}

// SortSpec resolves the sort field and direction (1 or -1), newest first by default.
func SortSpec(q models.BookingQuery) (string, int) {
	sortBy := q.SortBy
	if !models.BookingSortFields[sortBy] {
		sortBy = "createdAt"
	}
	if q.SortOrder == "asc" {
		return sortBy, 1
	}
	return sortBy, -1
}
