package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"service-estimator/internal/errors"
)

// FileStore keeps one JSON document per estimate under a directory per catalogue
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStore creates a file store
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Storage("create storage directory", err).WithContext("path", basePath)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) catalogDir(catalogID string) string {
	if catalogID == "" {
		catalogID = "_unnamed"
	}
	return filepath.Join(s.basePath, catalogID)
}

func (s *FileStore) Save(ctx context.Context, estimate *StoredEstimate) error {
	if err := prepare(estimate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.catalogDir(estimate.CatalogID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Storage("create catalogue directory", err)
	}

	data, err := json.MarshalIndent(estimate, "", "  ")
	if err != nil {
		return errors.Storage("marshal estimate", err)
	}
	if err := os.WriteFile(filepath.Join(dir, estimate.ID+".json"), data, 0644); err != nil {
		return errors.Storage("write estimate", err)
	}
	return nil
}

// find returns the path of an estimate file
func (s *FileStore) find(id string) (string, bool, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return "", false, errors.Storage("read storage", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.basePath, entry.Name(), id+".json")
		if _, err := os.Stat(path); err == nil {
			return path, true, nil
		}
	}
	return "", false, nil
}

func readEstimate(path string) (*StoredEstimate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var estimate StoredEstimate
	if err := json.Unmarshal(data, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*StoredEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, ok, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("estimate", id)
	}
	estimate, err := readEstimate(path)
	if err != nil {
		return nil, errors.Storage("read estimate", err).WithContext("id", id)
	}
	return estimate, nil
}

func (s *FileStore) List(ctx context.Context, filter *ListFilter) ([]*StoredEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var estimates []*StoredEstimate
	err := filepath.WalkDir(s.basePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		estimate, err := readEstimate(path)
		if err != nil {
			return nil
		}
		if filter.matches(estimate) {
			estimates = append(estimates, estimate)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Storage("walk storage", err)
	}

	newestFirst(estimates)
	return filter.page(estimates), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok, err := s.find(id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound("estimate", id)
	}
	if err := os.Remove(path); err != nil {
		return errors.Storage("remove estimate", err)
	}
	return nil
}

func (s *FileStore) GetLatest(ctx context.Context, catalogID string) (*StoredEstimate, error) {
	return latestIn(ctx, s, catalogID)
}

func (s *FileStore) Compare(ctx context.Context, oldID, newID string) (*CompareResult, error) {
	return compareIn(ctx, s, oldID, newID)
}

func (s *FileStore) Close() error {
	return nil
}
