package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/repository"
)

// sponsorDocument is the BSON shape of a sponsor in the collection.
type sponsorDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Amount       float64            `bson:"amount"`
	BusinessType string             `bson:"businessType"`
	Location     string             `bson:"location"`
	AssignedTeam string             `bson:"assignedTeam"`
	Package      string             `bson:"package"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *sponsorDocument) toDomain() *domain.Sponsor {
	return &domain.Sponsor{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Amount:       d.Amount,
		BusinessType: d.BusinessType,
		Location:     d.Location,
		AssignedTeam: d.AssignedTeam,
		Package:      d.Package,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// SponsorRepository implements repository.SponsorRepository for MongoDB
type SponsorRepository struct {
	connector  *Connector
	database   string
	collection string
	clock      clockwork.Clock
}

// NewSponsorRepository creates a new SponsorRepository
func NewSponsorRepository(connector *Connector, database, collection string, clock clockwork.Clock) *SponsorRepository {
	return &SponsorRepository{
		connector:  connector,
		database:   database,
		collection: collection,
		clock:      clock,
	}
}

var _ repository.SponsorRepository = (*SponsorRepository)(nil)

func (r *SponsorRepository) coll(ctx context.Context) (*mongo.Collection, error) {
	client, err := r.connector.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(r.database).Collection(r.collection), nil
}

// Create inserts a new sponsor document
func (r *SponsorRepository) Create(ctx context.Context, sponsor *domain.Sponsor) error {
	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}

	// BSON dates only keep milliseconds
	now := r.clock.Now().UTC().Truncate(time.Millisecond)
	doc := sponsorDocument{
		ID:           domain.NewSponsorID(),
		Name:         sponsor.Name,
		Amount:       sponsor.Amount,
		BusinessType: sponsor.BusinessType,
		Location:     sponsor.Location,
		AssignedTeam: sponsor.AssignedTeam,
		Package:      sponsor.Package,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert sponsor: %w", err)
	}

	sponsor.ID = doc.ID.Hex()
	sponsor.CreatedAt = now
	sponsor.UpdatedAt = now
	return nil
}

// List returns all sponsors ordered by creation time, newest first
func (r *SponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find sponsors: %w", err)
	}

	var docs []sponsorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sponsors: %w", err)
	}

	sponsors := make([]*domain.Sponsor, 0, len(docs))
	for i := range docs {
		sponsors = append(sponsors, docs[i].toDomain())
	}
	return sponsors, nil
}

// Delete removes the sponsor with the given id
func (r *SponsorRepository) Delete(ctx context.Context, id string) error {
	oid, err := domain.ParseSponsorID(id)
	if err != nil {
		return err
	}

	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete sponsor: %w", err)
	}

	if res.DeletedCount == 0 {
		return domain.ErrSponsorNotFound
	}
	return nil
}

// Count returns the number of sponsor documents
func (r *SponsorRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count sponsors: %w", err)
	}
	return n, nil
}
