package decoratorRepo

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
)

func (r *MongoDecoratorRepo) GetByID(ctx context.Context, id string) (*models.Decorator, error) {
	d, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, utils.NotFound("decorator not found")
	}
	return d, nil
}

func (r *MongoDecoratorRepo) GetByEmail(ctx context.Context, email string) (*models.Decorator, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoDecoratorRepo) findOne(ctx context.Context, filter bson.M) (*models.Decorator, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var d models.Decorator
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch decorator: %w", err)
	}
	return &d, nil
}

// List returns decorators matching f, best rated first.
func (r *MongoDecoratorRepo) List(ctx context.Context, f models.DecoratorFilter) ([]models.Decorator, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.WorkStatus != "" {
		filter["workStatus"] = f.WorkStatus
	}
	if f.District != "" {
		filter["district"] = f.District
	}

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list decorators: %w", err)
	}
	defer cursor.Close(ctx)

	decorators := []models.Decorator{}
	if err := cursor.All(ctx, &decorators); err != nil {
		return nil, fmt.Errorf("failed to decode decorators: %w", err)
	}
	return decorators, nil
}
