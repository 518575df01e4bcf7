package staff

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.storegate.dev/internal/common/repository"
)

const collectionName = "staff_members"

// mongoRepository provides MongoDB access to staff member data
type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a new staff repository with instrumentation
func NewRepository(db *mongo.Database) Repository {
	return newInstrumentedRepository(&mongoRepository{
		collection: db.Collection(collectionName),
	})
}

// FindByID finds a staff member by ID
func (r *mongoRepository) FindByID(ctx context.Context, id string) (*StaffMember, error) {
	var m StaffMember
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByStore finds all staff members of a store
func (r *mongoRepository) FindByStore(ctx context.Context, storeID string) ([]*StaffMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"storeId": storeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*StaffMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ExistsInStore checks whether a staff member with the email already exists
// in the store
func (r *mongoRepository) ExistsInStore(ctx context.Context, storeID, email string) (bool, error) {
	filter := bson.M{"storeId": storeID, "email": email}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert creates a new staff member
func (r *mongoRepository) Insert(ctx context.Context, m *StaffMember) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, m)
	return err
}

// Update updates an existing staff member
func (r *mongoRepository) Update(ctx context.Context, m *StaffMember) error {
	m.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
