package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"decorhub/database"
	"decorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAnalyticsRepo runs aggregation pipelines over the payments and bookings collections.
type MongoAnalyticsRepo struct {
	payments *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoAnalyticsRepo(db *mongo.Database) AnalyticsRepository {
	return &MongoAnalyticsRepo{
		payments: db.Collection("payments"),
		bookings: db.Collection("bookings"),
	}
}

func (r *MongoAnalyticsRepo) Report(ctx context.Context) (*models.AnalyticsReport, error) {
	ctx, cancel := database.NewContext(ctx, 15*time.Second)
	defer cancel()

	report := &models.AnalyticsReport{BookingsByStatus: map[string]int64{}}

	var totals []struct {
		Revenue  float64 `bson:"revenue"`
		Payments int64   `bson:"payments"`
	}
	totalsPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"revenue":  bson.M{"$sum": "$price"},
			"payments": bson.M{"$sum": 1},
		}}},
	}
	if err := r.aggregate(ctx, r.payments, totalsPipeline, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		report.TotalRevenue = totals[0].Revenue
		report.TotalPayments = totals[0].Payments
	}

	monthlyPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$paymentDate"}},
			"revenue":  bson.M{"$sum": "$price"},
			"payments": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	report.MonthlyRevenue = []models.MonthlyRevenue{}
	if err := r.aggregate(ctx, r.payments, monthlyPipeline, &report.MonthlyRevenue); err != nil {
		return nil, err
	}

	demandPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$serviceName",
			"bookings": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$paymentStatus", models.PaymentPaid}}, "$servicePrice", 0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bookings", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	report.ServiceDemand = []models.ServiceDemand{}
	if err := r.aggregate(ctx, r.bookings, demandPipeline, &report.ServiceDemand); err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
		Paid   int64  `bson:"paid"`
	}
	statusPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"paid": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$paymentStatus", models.PaymentPaid}}, 1, 0,
			}}},
		}}},
	}
	if err := r.aggregate(ctx, r.bookings, statusPipeline, &byStatus); err != nil {
		return nil, err
	}
	for _, s := range byStatus {
		report.BookingsByStatus[s.Status] = s.Count
		report.TotalBookings += s.Count
		report.PaidBookings += s.Paid
	}
	return report, nil
}

func (r *MongoAnalyticsRepo) aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s aggregate: %w", coll.Name(), err)
	}
	return nil
}
