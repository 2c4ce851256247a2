package services

import (
	"context"
	"sync"

	"normadeck/internal/domain/models"
)

// NormaLister is the slice of the record store the catalog needs.
type NormaLister interface {
	List(ctx context.Context) ([]models.Norma, error)
}

// CatalogStore owns the full unfiltered record set for the lifetime of a
// page view. Consumers only ever see copies; derivations never touch the
// held slice. Concurrent Load calls are safe and last-input-wins: a slow,
// stale fetch can never overwrite records from a newer one.
type CatalogStore struct {
	Lister NormaLister

	mu      sync.RWMutex
	records []models.Norma
	loaded  bool
	nextGen uint64
	applied uint64
}

// Load fetches the record set and installs it unless a newer load already
// finished.
func (s *CatalogStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	records, err := s.Lister.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.applied {
		return nil
	}
	s.applied = gen
	s.records = records
	s.loaded = true
	return nil
}

// Loaded reports whether a fetch has completed at least once.
func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Records returns a copy of the held set.
func (s *CatalogStore) Records() []models.Norma {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Norma, len(s.records))
	copy(out, s.records)
	return out
}

// Derive runs the query pipeline over the held set.
func (s *CatalogStore) Derive(q Query) []models.Norma {
	return Derive(s.Records(), q)
}
