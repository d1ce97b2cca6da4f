package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(ctx context.Context, db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Warn("user indexes not created", zap.Error(err))
	}
	return repo
}

// UpsertLogin inserts on first login; later logins only touch last_loggedIn.
func (r *MongoUserRepo) UpsertLogin(ctx context.Context, user *models.User, at time.Time) (*models.User, bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	insert := bson.M{
		"role":       user.Role,
		"created_at": at,
	}
	set := bson.M{"last_loggedIn": at}
	if user.Name != "" {
		set["name"] = user.Name
	}
	if user.Image != "" {
		set["image"] = user.Image
	}
	update := bson.M{"$setOnInsert": insert, "$set": set}

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": user.Email}, update, options.Update().SetUpsert(true))
	if err != nil && !database.IsDuplicateKey(err) {
		return nil, false, fmt.Errorf("failed to upsert user %s: %w", user.Email, err)
	}
	created := err == nil && res.UpsertedCount > 0

	stored, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, fmt.Errorf("user %s missing after upsert", user.Email)
	}
	return stored, created, nil
}

// UpdateRole modifies the role of an existing user document.
func (r *MongoUserRepo) UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("user %s not found", email)
		}
		return nil, fmt.Errorf("failed to update role of %s: %w", email, err)
	}
	return &u, nil
}
