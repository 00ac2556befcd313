// Package catalog - YAML/JSON document decoding
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"service-estimator/core/types"
)

// document mirrors the catalogue API payload. Keyed sections whose order
// matters (base effort, context multipliers) are kept as nodes and walked
// in document order.
type document struct {
	Metadata           types.Metadata                        `yaml:"metadata"`
	BaseEffort         yaml.Node                             `yaml:"baseEffort"`
	Pricing            *pricingDoc                           `yaml:"pricing"`
	Roles              []roleDoc                             `yaml:"roles"`
	TeamComposition    map[string]map[string]decimal.Decimal `yaml:"teamComposition"`
	ContextMultipliers yaml.Node                             `yaml:"contextMultipliers"`
	Sections           []sectionDoc                          `yaml:"sections"`
	ScopeAreas         []scopeAreaDoc                        `yaml:"scopeAreas"`
	ComplexityFactors  []complianceDoc                       `yaml:"complexityFactors"`
	Scenarios          []types.Scenario                      `yaml:"scenarios"`
	Phases             []phaseDoc                            `yaml:"phases"`
	SizingCriteria     map[string]types.SizingCriteria       `yaml:"sizingCriteria"`
}

type baseEffortDoc struct {
	Hours       int    `yaml:"hours"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type pricingDoc struct {
	Margin      *decimal.Decimal `yaml:"margin"`
	RiskPremium *decimal.Decimal `yaml:"riskPremium"`
	Contingency *decimal.Decimal `yaml:"contingency"`
	Discount    *decimal.Decimal `yaml:"discount"`
	HoursPerDay *int             `yaml:"hoursPerDay"`
}

type roleDoc struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	DailyRate decimal.Decimal `yaml:"dailyRate"`
	IsPrimary bool            `yaml:"isPrimary"`
}

type sectionDoc struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Groups []struct {
		Title      string         `yaml:"title"`
		Parameters []parameterDoc `yaml:"parameters"`
	} `yaml:"groups"`
}

type parameterDoc struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Required bool   `yaml:"required"`
	Default  string `yaml:"default"`
	Options  []struct {
		Value           string `yaml:"value"`
		Label           string `yaml:"label"`
		SizeImpact      string `yaml:"sizeImpact"`
		ComplexityHours *int   `yaml:"complexityHours"`
	} `yaml:"options"`
}

type scopeAreaDoc struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Hours       int      `yaml:"hours"`
	Required    bool     `yaml:"required"`
	Requires    []string `yaml:"requires"`
}

type complianceDoc struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Hours *int   `yaml:"hours"`
}

type phaseDoc struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	DurationBySize map[string]string `yaml:"durationBySize"`
}

func parseDocument(src []byte) (*types.Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}

	cat := &types.Catalog{
		Metadata:       doc.Metadata,
		SizingCriteria: make(map[types.SizeTier]types.SizingCriteria, len(doc.SizingCriteria)),
	}

	err := eachEntry(&doc.BaseEffort, "baseEffort", func(key string, value *yaml.Node) error {
		var b baseEffortDoc
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("baseEffort %s: %w", key, err)
		}
		cat.BaseEffort = append(cat.BaseEffort, types.BaseEffortItem{
			ID:          key,
			Label:       b.Label,
			Description: b.Description,
			Hours:       b.Hours,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var pf pricingFields
	if doc.Pricing != nil {
		pf = pricingFields{
			margin:      doc.Pricing.Margin,
			riskPremium: doc.Pricing.RiskPremium,
			contingency: doc.Pricing.Contingency,
			discount:    doc.Pricing.Discount,
			hoursPerDay: doc.Pricing.HoursPerDay,
		}
	}
	cat.Pricing = pf.resolve()

	for _, r := range doc.Roles {
		cat.Roles = append(cat.Roles, types.Role(r))
	}

	if len(doc.TeamComposition) > 0 {
		cat.TeamComposition = make(types.TeamCompositionTable, len(doc.TeamComposition))
		for tier, row := range doc.TeamComposition {
			cat.TeamComposition[types.SizeTier(tier)] = row
		}
	}

	err = eachEntry(&doc.ContextMultipliers, "contextMultipliers", func(key string, value *yaml.Node) error {
		category := types.ContextCategory{ID: key}
		err := eachEntry(value, "contextMultipliers "+key, func(optKey string, optValue *yaml.Node) error {
			var adj decimal.Decimal
			if err := optValue.Decode(&adj); err != nil {
				return fmt.Errorf("contextMultipliers %s.%s: %w", key, optKey, err)
			}
			category.Options = append(category.Options, types.ContextOption{Key: optKey, Adjustment: adj})
			return nil
		})
		cat.ContextMultipliers = append(cat.ContextMultipliers, category)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, s := range doc.Sections {
		section := types.Section{ID: s.ID, Label: s.Label}
		for _, g := range s.Groups {
			group := types.ParameterGroup{Title: g.Title}
			for _, p := range g.Parameters {
				param := types.Parameter{ID: p.ID, Label: p.Label, Required: p.Required, Default: p.Default}
				for _, o := range p.Options {
					param.Options = append(param.Options, types.Option{
						Value:      o.Value,
						Label:      o.Label,
						ExtraHours: o.ComplexityHours,
						SizeImpact: o.SizeImpact,
					})
				}
				group.Parameters = append(group.Parameters, param)
			}
			section.Groups = append(section.Groups, group)
		}
		cat.Sections = append(cat.Sections, section)
	}

	for _, a := range doc.ScopeAreas {
		cat.ScopeAreas = append(cat.ScopeAreas, types.ScopeArea(a))
	}
	for _, f := range doc.ComplexityFactors {
		cat.ComplianceFactors = append(cat.ComplianceFactors, types.ComplianceFactor(f))
	}
	cat.Scenarios = doc.Scenarios

	for _, p := range doc.Phases {
		phase := types.Phase{ID: p.ID, Name: p.Name}
		if len(p.DurationBySize) > 0 {
			phase.DurationBySize = make(map[types.SizeTier]string, len(p.DurationBySize))
			for tier, d := range p.DurationBySize {
				phase.DurationBySize[types.SizeTier(tier)] = d
			}
		}
		cat.Phases = append(cat.Phases, phase)
	}

	for tier, c := range doc.SizingCriteria {
		cat.SizingCriteria[types.SizeTier(tier)] = c
	}
	return cat, nil
}

// eachEntry walks a mapping node in document order. Keys are passed as the
// author wrote them, so "yes" or "1.10" are not resolved to bool or float.
// An absent or null section has no entries.
func eachEntry(n *yaml.Node, section string, fn func(key string, value *yaml.Node) error) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == 0 || n.ShortTag() == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", n.Line, section)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
