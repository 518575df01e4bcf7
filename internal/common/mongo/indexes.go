package mongo

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexDefinition defines a MongoDB index
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptions
}

// IndexInitializer creates indexes on startup
type IndexInitializer struct {
	client *Client
}

// NewIndexInitializer creates a new index initializer
func NewIndexInitializer(client *Client) *IndexInitializer {
	return &IndexInitializer{client: client}
}

// Initialize creates all required indexes
func (i *IndexInitializer) Initialize(ctx context.Context) error {
	indexes := i.getIndexDefinitions()

	for _, idx := range indexes {
		if err := i.createIndex(ctx, idx); err != nil {
			slog.Warn("Failed to create index (may already exist)",
				"error", err,
				"collection", idx.Collection)
		}
	}

	slog.Info("Index initialization complete", "count", len(indexes))
	return nil
}

func (i *IndexInitializer) createIndex(ctx context.Context, idx IndexDefinition) error {
	collection := i.client.Collection(idx.Collection)

	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: idx.Options,
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (i *IndexInitializer) getIndexDefinitions() []IndexDefinition {
	return []IndexDefinition{
		// principals
		{
			Collection: "principals",
			Keys:       bson.D{{Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: "principals",
			Keys:       bson.D{{Key: "storeId", Value: 1}},
		},

		// staff_members
		// The index name is load-bearing: duplicate-key errors naming it
		// are remapped to the duplicate staff email envelope.
		{
			Collection: "staff_members",
			Keys:       bson.D{{Key: "storeId", Value: 1}, {Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("storeId_1_email_1"),
		},
		{
			Collection: "staff_members",
			Keys:       bson.D{{Key: "storeId", Value: 1}, {Key: "active", Value: 1}},
		},
		{
			Collection: "staff_members",
			Keys:       bson.D{{Key: "createdAt", Value: -1}},
		},
	}
}
