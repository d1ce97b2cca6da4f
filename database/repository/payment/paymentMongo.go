package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(ctx context.Context, db *mongo.Database) PaymentRepository {
	repo := &MongoPaymentRepo{coll: db.Collection("payments")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Warn("payment indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var p models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment %s: %w", transactionID, err)
	}
	return &p, nil
}

// Insert upserts with $setOnInsert so concurrent duplicates converge on one record.
func (r *MongoPaymentRepo) Insert(ctx context.Context, p *models.Payment) (*models.Payment, bool, error) {
	opCtx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"transactionId": p.TransactionID}
	update := bson.M{"$setOnInsert": p}
	res, err := r.coll.UpdateOne(opCtx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !database.IsDuplicateKey(err) {
		return nil, false, fmt.Errorf("failed to insert payment %s: %w", p.TransactionID, err)
	}
	created := err == nil && res.UpsertedCount > 0

	stored, err := r.GetByTransactionID(ctx, p.TransactionID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, fmt.Errorf("payment %s missing after upsert", p.TransactionID)
	}
	return stored, created, nil
}

func (r *MongoPaymentRepo) ListByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "paymentDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customer": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}
