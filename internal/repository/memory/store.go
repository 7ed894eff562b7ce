// Package memory provides an in-process sponsor store for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/repository"
)

// Store keeps sponsors in a map guarded by a RWMutex
type Store struct {
	mu    sync.RWMutex
	data  map[string]domain.Sponsor
	clock clockwork.Clock

	// failWith, when set, is returned by every operation
	failWith error
}

var (
	_ repository.Store             = (*Store)(nil)
	_ repository.SponsorRepository = (*Store)(nil)
)

// New creates an empty Store
func New(clock clockwork.Clock) *Store {
	return &Store{
		data:  make(map[string]domain.Sponsor),
		clock: clock,
	}
}

// FailWith makes every following operation return err. Pass nil to reset.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Sponsors returns the store itself
func (s *Store) Sponsors() repository.SponsorRepository {
	return s
}

// Ping reports the configured failure, if any
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failWith
}

// Close is a no-op
func (s *Store) Close(_ context.Context) error {
	return nil
}

// Create stores a copy of sponsor under a fresh id
func (s *Store) Create(_ context.Context, sponsor *domain.Sponsor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	now := s.clock.Now().UTC()
	sponsor.ID = domain.NewSponsorID().Hex()
	sponsor.CreatedAt = now
	sponsor.UpdatedAt = now
	s.data[sponsor.ID] = *sponsor
	return nil
}

// List returns copies of all sponsors, newest first
func (s *Store) List(_ context.Context) ([]*domain.Sponsor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	sponsors := make([]*domain.Sponsor, 0, len(s.data))
	for _, sp := range s.data {
		sponsors = append(sponsors, &sp)
	}

	sort.Slice(sponsors, func(i, j int) bool {
		if !sponsors[i].CreatedAt.Equal(sponsors[j].CreatedAt) {
			return sponsors[i].CreatedAt.After(sponsors[j].CreatedAt)
		}
		return sponsors[i].ID > sponsors[j].ID
	})
	return sponsors, nil
}

// Delete removes the sponsor with the given id
func (s *Store) Delete(_ context.Context, id string) error {
	if _, err := domain.ParseSponsorID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	if _, ok := s.data[id]; !ok {
		return domain.ErrSponsorNotFound
	}
	delete(s.data, id)
	return nil
}

// Count returns the number of stored sponsors
func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failWith != nil {
		return 0, s.failWith
	}
	return int64(len(s.data)), nil
}
