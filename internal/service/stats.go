package service

import (
	"context"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/repository"
)

// GroupStats is the sponsor count and amount for one team or package
type GroupStats struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Stats represents aggregated sponsor statistics
type Stats struct {
	Count       int                   `json:"count"`
	TotalAmount float64               `json:"totalAmount"`
	ByTeam      map[string]GroupStats `json:"byTeam"`
	ByPackage   map[string]GroupStats `json:"byPackage"`
}

// StatsService handles statistics queries
type StatsService struct {
	sponsorRepo repository.SponsorRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(sponsorRepo repository.SponsorRepository) *StatsService {
	return &StatsService{sponsorRepo: sponsorRepo}
}

// GetStats returns totals over all sponsors
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	sponsors, err := s.sponsorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStats(sponsors), nil
}

// BuildStats aggregates a list of sponsors
func BuildStats(sponsors []*domain.Sponsor) *Stats {
	stats := &Stats{
		ByTeam:    make(map[string]GroupStats),
		ByPackage: make(map[string]GroupStats),
	}

	for _, sp := range sponsors {
		stats.Count++
		stats.TotalAmount += sp.Amount

		team := stats.ByTeam[sp.AssignedTeam]
		team.Count++
		team.Amount += sp.Amount
		stats.ByTeam[sp.AssignedTeam] = team

		pkg := stats.ByPackage[sp.Package]
		pkg.Count++
		pkg.Amount += sp.Amount
		stats.ByPackage[sp.Package] = pkg
	}

	return stats
}
