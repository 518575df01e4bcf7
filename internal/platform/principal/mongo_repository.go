package principal

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.storegate.dev/internal/common/repository"
)

const collectionName = "principals"

// mongoRepository provides MongoDB access to principal data
type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a new principal repository with instrumentation
func NewRepository(db *mongo.Database) Repository {
	return newInstrumentedRepository(&mongoRepository{
		collection: db.Collection(collectionName),
	})
}

// FindByID finds a principal by ID
func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Principal, error) {
	var p Principal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByEmail finds a principal by email address
func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	var p Principal
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByStore finds all principals bound to a store
func (r *mongoRepository) FindByStore(ctx context.Context, storeID string) ([]*Principal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"storeId": storeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var principals []*Principal
	if err := cursor.All(ctx, &principals); err != nil {
		return nil, err
	}
	return principals, nil
}

// ExistsByEmail checks if a principal with the email exists
func (r *mongoRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert creates a new principal
func (r *mongoRepository) Insert(ctx context.Context, p *Principal) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, p)
	return err
}

// Update updates an existing principal
func (r *mongoRepository) Update(ctx context.Context, p *Principal) error {
	p.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
