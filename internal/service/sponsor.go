package service

import (
	"context"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/repository"
)

// SponsorService handles business logic for sponsors
type SponsorService struct {
	sponsorRepo repository.SponsorRepository
}

// NewSponsorService creates a new SponsorService
func NewSponsorService(sponsorRepo repository.SponsorRepository) *SponsorService {
	return &SponsorService{sponsorRepo: sponsorRepo}
}

// CreateSponsor validates the input and stores a new sponsor.
// Invalid input never reaches the repository.
func (s *SponsorService) CreateSponsor(ctx context.Context, in domain.SponsorInput) (*domain.Sponsor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sponsor := in.ToSponsor()
	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		return nil, err
	}
	return sponsor, nil
}

// ListSponsors returns all sponsors, newest first
func (s *SponsorService) ListSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	return s.sponsorRepo.List(ctx)
}

// DeleteSponsor removes a sponsor by id. A malformed id is rejected
// before the repository is called.
func (s *SponsorService) DeleteSponsor(ctx context.Context, id string) error {
	if _, err := domain.ParseSponsorID(id); err != nil {
		return err
	}
	return s.sponsorRepo.Delete(ctx, id)
}
