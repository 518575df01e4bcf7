package txn

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProvider opens MongoDB multi-document transactions.
// Requires a replica set or mongos deployment.
type MongoProvider struct {
	client *mongo.Client
}

// NewMongoProvider creates a transaction provider over a MongoDB client.
func NewMongoProvider(client *mongo.Client) *MongoProvider {
	return &MongoProvider{client: client}
}

// Begin starts a session and a transaction on it. The returned Tx's context
// carries the session, so repository calls made with it join the transaction.
func (p *MongoProvider) Begin(ctx context.Context) (Tx, error) {
	session, err := p.client.StartSession()
	if err != nil {
		return nil, err
	}
	if err := session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &mongoTx{
		session: session,
		ctx:     mongo.NewSessionContext(ctx, session),
	}, nil
}

type mongoTx struct {
	session mongo.Session
	ctx     mongo.SessionContext
}

func (t *mongoTx) Context() context.Context {
	return t.ctx
}

func (t *mongoTx) Commit(ctx context.Context) error {
	defer t.session.EndSession(ctx)
	return t.session.CommitTransaction(ctx)
}

func (t *mongoTx) Rollback(ctx context.Context) error {
	defer t.session.EndSession(ctx)
	return t.session.AbortTransaction(ctx)
}
