// Package storage keeps the history of computed estimates.
// Backends: file (one JSON document per estimate), memory and SQLite.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"service-estimator/core/types"
	"service-estimator/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// DefaultDir is where history lives unless configured otherwise
const DefaultDir = ".service-estimator"

// Store is the storage interface
type Store interface {
	// Save stores an estimate, assigning an ID and timestamp when unset
	Save(ctx context.Context, estimate *StoredEstimate) error

	// Get retrieves an estimate by ID
	Get(ctx context.Context, id string) (*StoredEstimate, error)

	// List returns estimates newest first
	List(ctx context.Context, filter *ListFilter) ([]*StoredEstimate, error)

	// Delete removes an estimate
	Delete(ctx context.Context, id string) error

	// GetLatest gets the latest estimate for a catalogue
	GetLatest(ctx context.Context, catalogID string) (*StoredEstimate, error)

	// Compare compares two estimates
	Compare(ctx context.Context, oldID, newID string) (*CompareResult, error)

	// Close closes the store
	Close() error
}

// StoredEstimate is a saved selection with its computed result
type StoredEstimate struct {
	ID string `json:"id"`

	// CatalogID groups estimates of the same service
	CatalogID   string `json:"catalog_id"`
	CatalogName string `json:"catalog_name"`

	// Fingerprint identifies the exact catalogue content used
	Fingerprint string `json:"fingerprint"`

	Label       string          `json:"label,omitempty"`
	Size        types.SizeTier  `json:"size"`
	TotalEffort int64           `json:"total_effort"`
	FinalPrice  decimal.Decimal `json:"final_price"`

	Selection *types.Selection `json:"selection"`
	Result    *types.Result    `json:"result"`

	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewStoredEstimate captures a result for saving
func NewStoredEstimate(cat *types.Catalog, fingerprint string, sel *types.Selection, result *types.Result) *StoredEstimate {
	return &StoredEstimate{
		CatalogID:   cat.Metadata.ID,
		CatalogName: cat.Metadata.Name,
		Fingerprint: fingerprint,
		Size:        result.Size,
		TotalEffort: result.TotalEffort,
		FinalPrice:  result.FinalPrice,
		Selection:   sel,
		Result:      result,
	}
}

// ListFilter filters estimate listing
type ListFilter struct {
	CatalogID string
	Label     string
	Since     time.Time
	Until     time.Time
	Limit     int
	Offset    int
}

func (f *ListFilter) matches(e *StoredEstimate) bool {
	if f == nil {
		return true
	}
	if f.CatalogID != "" && e.CatalogID != f.CatalogID {
		return false
	}
	if f.Label != "" && e.Label != f.Label {
		return false
	}
	if !f.Since.IsZero() && e.CreatedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && e.CreatedAt.After(f.Until) {
		return false
	}
	return true
}

func (f *ListFilter) page(estimates []*StoredEstimate) []*StoredEstimate {
	if f == nil {
		return estimates
	}
	if f.Offset > 0 {
		if f.Offset >= len(estimates) {
			return nil
		}
		estimates = estimates[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(estimates) {
		estimates = estimates[:f.Limit]
	}
	return estimates
}

// newestFirst orders by creation time, then ID for a stable tie-break
func newestFirst(estimates []*StoredEstimate) {
	sort.SliceStable(estimates, func(i, j int) bool {
		if !estimates[i].CreatedAt.Equal(estimates[j].CreatedAt) {
			return estimates[i].CreatedAt.After(estimates[j].CreatedAt)
		}
		return estimates[i].ID < estimates[j].ID
	})
}

// prepare assigns the ID and timestamp of a new estimate
func prepare(e *StoredEstimate) error {
	if e == nil {
		return errors.Input("nil estimate")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return nil
}

// CompareResult is a comparison between two estimates
type CompareResult struct {
	OldID string `json:"old_id"`
	NewID string `json:"new_id"`

	OldPrice     decimal.Decimal `json:"old_price"`
	NewPrice     decimal.Decimal `json:"new_price"`
	PriceDelta   decimal.Decimal `json:"price_delta"`
	DeltaPercent decimal.Decimal `json:"delta_percent"`

	OldEffort   int64 `json:"old_effort"`
	NewEffort   int64 `json:"new_effort"`
	EffortDelta int64 `json:"effort_delta"`

	OldSize     types.SizeTier `json:"old_size"`
	NewSize     types.SizeTier `json:"new_size"`
	SizeChanged bool           `json:"size_changed"`

	// SameCatalog is false when the catalogue content changed in between
	SameCatalog bool `json:"same_catalog"`

	CreatedAt time.Time `json:"created_at"`
}

// compare builds the deltas between two stored estimates
func compare(oldEst, newEst *StoredEstimate) *CompareResult {
	delta := newEst.FinalPrice.Sub(oldEst.FinalPrice)
	deltaPercent := decimal.Zero
	if oldEst.FinalPrice.IsPositive() {
		deltaPercent = delta.Div(oldEst.FinalPrice).Shift(2).Round(2)
	}

	return &CompareResult{
		OldID:        oldEst.ID,
		NewID:        newEst.ID,
		OldPrice:     oldEst.FinalPrice,
		NewPrice:     newEst.FinalPrice,
		PriceDelta:   delta,
		DeltaPercent: deltaPercent,
		OldEffort:    oldEst.TotalEffort,
		NewEffort:    newEst.TotalEffort,
		EffortDelta:  newEst.TotalEffort - oldEst.TotalEffort,
		OldSize:      oldEst.Size,
		NewSize:      newEst.Size,
		SizeChanged:  oldEst.Size != newEst.Size,
		SameCatalog:  oldEst.Fingerprint == newEst.Fingerprint,
		CreatedAt:    time.Now().UTC(),
	}
}

// compareIn loads both estimates from a store and compares them
func compareIn(ctx context.Context, s Store, oldID, newID string) (*CompareResult, error) {
	oldEst, err := s.Get(ctx, oldID)
	if err != nil {
		return nil, err
	}
	newEst, err := s.Get(ctx, newID)
	if err != nil {
		return nil, err
	}
	return compare(oldEst, newEst), nil
}

// latestIn returns the newest estimate of a catalogue
func latestIn(ctx context.Context, s Store, catalogID string) (*StoredEstimate, error) {
	estimates, err := s.List(ctx, &ListFilter{CatalogID: catalogID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(estimates) == 0 {
		return nil, errors.NotFound("estimate for catalogue", catalogID)
	}
	return estimates[0], nil
}

// StoreFactory creates stores by backend type. The "path" key overrides the
// backend's default location.
func StoreFactory(backend Backend, config map[string]string) (Store, error) {
	path := config["path"]
	switch backend {
	case BackendFile, "":
		if path == "" {
			path = filepath.Join(DefaultDir, "estimates")
		}
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if path == "" {
			path = filepath.Join(DefaultDir, "history.db")
		}
		return NewSQLiteStore(path)
	default:
		return nil, errors.NotSupported("storage backend " + string(backend))
	}
}

// Ensure interfaces are implemented
var (
	_ Store     = (*FileStore)(nil)
	_ Store     = (*MemoryStore)(nil)
	_ Store     = (*SQLiteStore)(nil)
	_ io.Closer = (*SQLiteStore)(nil)
)
