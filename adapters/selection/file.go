// Package selection reads selection files and replays them onto a
// selection state bound to a catalogue.
package selection

import (
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"service-estimator/core/determinism"
	coreselection "service-estimator/core/selection"
	"service-estimator/core/types"
	"service-estimator/internal/errors"
)

// File is the on-disk shape of a selection. Values decode into string
// fields so unquoted tokens such as yes or 1.10 keep their text.
type File struct {
	Scenario     string            `yaml:"scenario"`
	Scopes       []string          `yaml:"scopes"`
	Deselect     []string          `yaml:"deselect"`
	Parameters   map[string]string `yaml:"parameters"`
	Compliance   []string          `yaml:"compliance"`
	Context      map[string]string `yaml:"context"`
	Requirements RequirementsFile  `yaml:"requirements"`
	Pricing      PricingFile       `yaml:"pricing"`
}

// RequirementsFile holds the requirement levels; empty keeps the default
type RequirementsFile struct {
	SecurityPosture  string `yaml:"securityPosture"`
	Availability     string `yaml:"availability"`
	DisasterRecovery string `yaml:"disasterRecovery"`
}

// PricingFile holds percentage overrides; absent keeps the catalogue value
type PricingFile struct {
	Margin      *decimal.Decimal `yaml:"margin"`
	RiskPremium *decimal.Decimal `yaml:"riskPremium"`
	Contingency *decimal.Decimal `yaml:"contingency"`
}

// Load reads a selection file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("selection file", path)
		}
		return nil, errors.Wrap(errors.TypeInput, "read selection file", err).WithContext("path", path)
	}
	return Parse(data)
}

// Parse decodes a selection document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "decode selection file", err)
	}
	return &f, nil
}

// Apply replays the file onto a fresh state for the catalogue. Rejected
// scope toggles are reported as notices; invalid values are collected into
// the returned error and skipped.
func (f *File) Apply(cat *types.Catalog) (*coreselection.State, []string, error) {
	state := coreselection.New(cat)
	if f == nil {
		return state, nil, nil
	}

	var (
		notices []string
		errs    error
	)

	if f.Scenario != "" {
		errs = multierr.Append(errs, state.ApplyScenario(f.Scenario))
	}

	for _, id := range determinism.SortedKeys(f.Parameters) {
		errs = multierr.Append(errs, state.SetParameter(id, f.Parameters[id]))
	}

	for _, id := range f.Scopes {
		if change := state.SelectScope(id); change.Outcome.Rejected() {
			notices = append(notices, change.Message())
		}
	}
	for _, id := range f.Deselect {
		change := state.DeselectScope(id)
		if change.Outcome.Rejected() || len(change.Cascaded) > 0 {
			notices = append(notices, change.Message())
		}
	}

	for _, id := range f.Compliance {
		errs = multierr.Append(errs, state.SetCompliance(id, true))
	}

	for _, category := range determinism.SortedKeys(f.Context) {
		errs = multierr.Append(errs, state.SetContext(category, f.Context[category]))
	}

	errs = multierr.Append(errs, state.SetRequirements(types.Requirements(f.Requirements)))

	if f.Pricing.Margin != nil {
		state.SetMargin(*f.Pricing.Margin)
	}
	if f.Pricing.RiskPremium != nil {
		state.SetRiskPremium(*f.Pricing.RiskPremium)
	}
	if f.Pricing.Contingency != nil {
		state.SetContingency(*f.Pricing.Contingency)
	}

	return state, notices, errs
}
