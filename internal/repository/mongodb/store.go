package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/immerse/sponsor-tracker/internal/repository"
)

// Store is a repository.Store backed by a lazily connected MongoDB client.
type Store struct {
	connector *Connector
	sponsors  *SponsorRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore wires the connector and the sponsor repository. The createdAt
// index is ensured when the client connects for the first time.
func NewStore(uri, database, collection string, timeout time.Duration, clock clockwork.Clock) *Store {
	connector := NewConnector(uri, timeout, func(ctx context.Context, client *mongo.Client) error {
		return ensureIndexes(ctx, client.Database(database).Collection(collection))
	})

	return &Store{
		connector: connector,
		sponsors:  NewSponsorRepository(connector, database, collection, clock),
	}
}

func ensureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create sponsors index: %w", err)
	}
	return nil
}

// Sponsors returns the sponsor repository
func (s *Store) Sponsors() repository.SponsorRepository {
	return s.sponsors
}

// Ping connects if needed and checks that the primary answers
func (s *Store) Ping(ctx context.Context) error {
	client, err := s.connector.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.connector.Disconnect(ctx)
}
