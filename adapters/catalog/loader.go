// Package catalog loads service catalogues from files.
// HCL files use a block schema; YAML and JSON files use the camelCase
// document shape exchanged with the catalogue API.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	corecatalog "service-estimator/core/catalog"
	"service-estimator/core/types"
	"service-estimator/internal/errors"
)

// Format identifies a catalogue file format
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.NotSupported("catalogue format " + filepath.Ext(path))
	}
}

// Load reads a catalogue file and back-fills missing sections with defaults.
// An empty path returns the built-in catalogue.
func Load(path string) (*types.Catalog, error) {
	if path == "" {
		return corecatalog.Default(), nil
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("catalogue", path)
		}
		return nil, errors.Catalog("read catalogue", err).WithContext("path", path)
	}

	return Parse(src, path, format)
}

// Parse decodes catalogue source in the given format
func Parse(src []byte, filename string, format Format) (*types.Catalog, error) {
	var (
		cat *types.Catalog
		err error
	)
	switch format {
	case FormatHCL:
		cat, err = parseHCL(src, filename)
	case FormatYAML, FormatJSON:
		cat, err = parseDocument(src)
	default:
		return nil, errors.NotSupported("catalogue format " + string(format))
	}
	if err != nil {
		return nil, errors.Catalog("decode catalogue", err).WithContext("path", filename)
	}
	return corecatalog.WithDefaults(cat), nil
}

// pricingFields carries the pricing knobs as decoded, nil when absent
type pricingFields struct {
	margin, riskPremium, contingency, discount *decimal.Decimal
	hoursPerDay                                *int
}

// resolve applies the default for every absent field. Explicit zeros are kept.
func (p pricingFields) resolve() types.PricingConfig {
	cfg := corecatalog.DefaultPricing()
	if p.margin != nil {
		cfg.Margin = *p.margin
	}
	if p.riskPremium != nil {
		cfg.RiskPremium = *p.riskPremium
	}
	if p.contingency != nil {
		cfg.Contingency = *p.contingency
	}
	if p.discount != nil {
		cfg.Discount = *p.discount
	}
	if p.hoursPerDay != nil {
		cfg.HoursPerDay = *p.hoursPerDay
	}
	return cfg
}
