package storage

import (
	"context"
	"sync"

	"service-estimator/internal/errors"
)

// MemoryStore is an in-memory storage backend
type MemoryStore struct {
	estimates map[string]*StoredEstimate
	mu        sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		estimates: make(map[string]*StoredEstimate),
	}
}

func (s *MemoryStore) Save(ctx context.Context, estimate *StoredEstimate) error {
	if err := prepare(estimate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.estimates[estimate.ID] = estimate
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*StoredEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	estimate, ok := s.estimates[id]
	if !ok {
		return nil, errors.NotFound("estimate", id)
	}
	return estimate, nil
}

func (s *MemoryStore) List(ctx context.Context, filter *ListFilter) ([]*StoredEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var estimates []*StoredEstimate
	for _, estimate := range s.estimates {
		if filter.matches(estimate) {
			estimates = append(estimates, estimate)
		}
	}
	newestFirst(estimates)
	return filter.page(estimates), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.estimates[id]; !ok {
		return errors.NotFound("estimate", id)
	}
	delete(s.estimates, id)
	return nil
}

func (s *MemoryStore) GetLatest(ctx context.Context, catalogID string) (*StoredEstimate, error) {
	return latestIn(ctx, s, catalogID)
}

func (s *MemoryStore) Compare(ctx context.Context, oldID, newID string) (*CompareResult, error) {
	return compareIn(ctx, s, oldID, newID)
}

func (s *MemoryStore) Close() error {
	return nil
}
