// Package output provides output formatting interfaces.
// This package produces human and machine-readable estimates.
package output

import (
	"io"
	"sort"
	"sync"

	"service-estimator/core/types"
	"service-estimator/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything one estimate run produced
type Report struct {
	// Catalog identifies the service that was estimated
	Catalog types.Metadata `json:"catalog"`

	// Fingerprint identifies the catalogue content
	Fingerprint string `json:"fingerprint"`

	// Selection is the input the result was computed from
	Selection *types.Selection `json:"selection"`

	// Result is the full-precision estimate
	Result *types.Result `json:"result"`

	// Display holds the rounded presentation values
	Display types.Display `json:"display"`

	// Notices are rejected or cascaded selection changes
	Notices []string `json:"notices,omitempty"`

	// Metadata contains execution context
	Metadata ReportMetadata `json:"metadata"`
}

// ReportMetadata contains execution context
type ReportMetadata struct {
	// Timestamp is when the estimate was computed
	Timestamp string `json:"timestamp"`

	// Version is the tool version
	Version string `json:"version"`

	// EstimateID is set when the estimate was saved to history
	EstimateID string `json:"estimate_id,omitempty"`
}

// NewReport assembles a report for a computed result
func NewReport(cat *types.Catalog, fingerprint string, sel *types.Selection, result *types.Result) *Report {
	return &Report{
		Catalog:     cat.Metadata,
		Fingerprint: fingerprint,
		Selection:   sel,
		Result:      result,
		Display:     result.Display(),
	}
}

// Registry holds the available formatters
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with the cli and json formatters
func DefaultRegistry(opts CLIOptions) *Registry {
	r := NewRegistry()
	_ = r.Register(NewCLIFormatter(opts))
	_ = r.Register(NewJSONFormatter())
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[formatter.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter %s already registered", formatter.Format())
	}
	r.formatters[formatter.Format()] = formatter
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported("output format " + string(format))
	}
	return f, nil
}

// Formats lists the registered formats
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
