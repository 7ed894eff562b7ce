package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/repository"
)

// sponsorBody is the JSONB document stored in sponsors.doc
type sponsorBody struct {
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BusinessType string  `json:"businessType"`
	Location     string  `json:"location"`
	AssignedTeam string  `json:"assignedTeam"`
	Package      string  `json:"package"`
}

// SponsorRepository implements repository.SponsorRepository for PostgreSQL.
// Every sponsor is kept as a JSONB document keyed by an ObjectID string.
type SponsorRepository struct {
	db    *pgxpool.Pool
	clock clockwork.Clock
}

// NewSponsorRepository creates a new SponsorRepository
func NewSponsorRepository(db *pgxpool.Pool, clock clockwork.Clock) *SponsorRepository {
	return &SponsorRepository{db: db, clock: clock}
}

var _ repository.SponsorRepository = (*SponsorRepository)(nil)

// Create inserts a new sponsor document
func (r *SponsorRepository) Create(ctx context.Context, sponsor *domain.Sponsor) error {
	query := `
		INSERT INTO sponsors (id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
	`

	id := domain.NewSponsorID().Hex()
	now := r.clock.Now().UTC().Truncate(time.Microsecond)
	body := sponsorBody{
		Name:         sponsor.Name,
		Amount:       sponsor.Amount,
		BusinessType: sponsor.BusinessType,
		Location:     sponsor.Location,
		AssignedTeam: sponsor.AssignedTeam,
		Package:      sponsor.Package,
	}

	if _, err := r.db.Exec(ctx, query, id, body, now); err != nil {
		return fmt.Errorf("failed to insert sponsor: %w", err)
	}

	sponsor.ID = id
	sponsor.CreatedAt = now
	sponsor.UpdatedAt = now
	return nil
}

// List returns all sponsors ordered by creation time, newest first
func (r *SponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM sponsors
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsors: %w", err)
	}
	defer rows.Close()

	sponsors := make([]*domain.Sponsor, 0)
	for rows.Next() {
		var (
			s    domain.Sponsor
			body sponsorBody
		)
		if err := rows.Scan(&s.ID, &body, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sponsor: %w", err)
		}
		s.Name = body.Name
		s.Amount = body.Amount
		s.BusinessType = body.BusinessType
		s.Location = body.Location
		s.AssignedTeam = body.AssignedTeam
		s.Package = body.Package
		s.CreatedAt = s.CreatedAt.UTC()
		s.UpdatedAt = s.UpdatedAt.UTC()
		sponsors = append(sponsors, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sponsors, nil
}

// Delete removes the sponsor with the given id
func (r *SponsorRepository) Delete(ctx context.Context, id string) error {
	if _, err := domain.ParseSponsorID(id); err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sponsor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSponsorNotFound
	}
	return nil
}

// Count returns the number of stored sponsors
func (r *SponsorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sponsors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sponsors: %w", err)
	}
	return n, nil
}
