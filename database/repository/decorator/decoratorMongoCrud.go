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
	"go.uber.org/zap"
)

// MongoDecoratorRepo implements DecoratorRepository using MongoDB.
type MongoDecoratorRepo struct {
	coll *mongo.Collection
}

func NewMongoDecoratorRepo(ctx context.Context, db *mongo.Database) DecoratorRepository {
	repo := &MongoDecoratorRepo{coll: db.Collection("decorators")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Warn("decorator indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoDecoratorRepo) Create(ctx context.Context, d *models.Decorator) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDecoratorExists
		}
		return fmt.Errorf("failed to create decorator: %w", err)
	}
	return nil
}

func (r *MongoDecoratorRepo) UpdateStatus(ctx context.Context, id string, status models.DecoratorStatus) (*models.Decorator, error) {
	d, err := r.findOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, utils.NotFound("decorator not found")
	}
	return d, nil
}

func (r *MongoDecoratorRepo) Claim(ctx context.Context, id string) (*models.Decorator, error) {
	filter := bson.M{
		"id":         id,
		"status":     models.DecoratorApproved,
		"workStatus": models.WorkAvailable,
	}
	return r.findOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"workStatus": models.WorkAssigned}})
}

func (r *MongoDecoratorRepo) Release(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"workStatus": models.WorkAvailable}})
	if err != nil {
		return fmt.Errorf("failed to release decorator %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound("decorator not found")
	}
	return nil
}

func (r *MongoDecoratorRepo) SetWorkStatusIfIdle(ctx context.Context, id string, ws models.WorkStatus) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "workStatus": bson.M{"$ne": models.WorkAssigned}}
	if _, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"workStatus": ws}}); err != nil {
		return fmt.Errorf("failed to set work status of %s: %w", id, err)
	}
	return nil
}

func (r *MongoDecoratorRepo) IncrementCompleted(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"completedProjects": 1}}); err != nil {
		return fmt.Errorf("failed to count completed project for %s: %w", id, err)
	}
	return nil
}

func (r *MongoDecoratorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "workStatus": bson.M{"$ne": models.WorkAssigned}})
	if err != nil {
		return fmt.Errorf("failed to delete decorator %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return utils.Conflict("decorator still holds an assignment")
	}
	return nil
}

func (r *MongoDecoratorRepo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Decorator, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Decorator
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update decorator: %w", err)
	}
	return &d, nil
}
