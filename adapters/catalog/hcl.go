// Package catalog - HCL catalogue decoding
package catalog

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"service-estimator/core/types"
)

// hclFile is the root block schema of an HCL catalogue
type hclFile struct {
	Metadata          *hclMetadata    `hcl:"metadata,block"`
	BaseEffort        []hclBaseEffort `hcl:"base_effort,block"`
	ScopeAreas        []hclScopeArea  `hcl:"scope_area,block"`
	Sections          []hclSection    `hcl:"section,block"`
	ComplianceFactors []hclCompliance `hcl:"compliance_factor,block"`
	Contexts          []hclContext    `hcl:"context,block"`
	Roles             []hclRole       `hcl:"role,block"`
	Teams             []hclTeam       `hcl:"team,block"`
	Pricing           *hclPricing     `hcl:"pricing,block"`
	Scenarios         []hclScenario   `hcl:"scenario,block"`
	Phases            []hclPhase      `hcl:"phase,block"`
	Sizing            []hclSizingTier `hcl:"sizing,block"`
}

type hclMetadata struct {
	ID       string `hcl:"id"`
	Name     string `hcl:"name"`
	Version  string `hcl:"version,optional"`
	Category string `hcl:"category,optional"`
}

type hclBaseEffort struct {
	ID          string `hcl:"id,label"`
	Label       string `hcl:"label"`
	Description string `hcl:"description,optional"`
	Hours       int    `hcl:"hours"`
}

type hclScopeArea struct {
	ID          string   `hcl:"id,label"`
	Name        string   `hcl:"name"`
	Description string   `hcl:"description,optional"`
	Category    string   `hcl:"category,optional"`
	Hours       int      `hcl:"hours"`
	Required    bool     `hcl:"required,optional"`
	Requires    []string `hcl:"requires,optional"`
}

type hclSection struct {
	ID     string     `hcl:"id,label"`
	Label  string     `hcl:"label"`
	Groups []hclGroup `hcl:"group,block"`
}

type hclGroup struct {
	Title      string         `hcl:"title,label"`
	Parameters []hclParameter `hcl:"parameter,block"`
}

type hclParameter struct {
	ID       string      `hcl:"id,label"`
	Label    string      `hcl:"label"`
	Required bool        `hcl:"required,optional"`
	Default  string      `hcl:"default,optional"`
	Options  []hclOption `hcl:"option,block"`
}

type hclOption struct {
	Value      string `hcl:"value,label"`
	Label      string `hcl:"label"`
	Hours      *int   `hcl:"hours,optional"`
	SizeImpact string `hcl:"size_impact,optional"`
}

type hclCompliance struct {
	ID    string `hcl:"id,label"`
	Label string `hcl:"label"`
	Hours *int   `hcl:"hours,optional"`
}

type hclContext struct {
	ID      string             `hcl:"id,label"`
	Label   string             `hcl:"label,optional"`
	Options []hclContextOption `hcl:"option,block"`
}

type hclContextOption struct {
	Key        string  `hcl:"key,label"`
	Label      string  `hcl:"label,optional"`
	Adjustment float64 `hcl:"adjustment"`
}

type hclRole struct {
	ID        string  `hcl:"id,label"`
	Name      string  `hcl:"name"`
	DailyRate float64 `hcl:"daily_rate"`
	Primary   bool    `hcl:"primary,optional"`
}

type hclTeam struct {
	Tier string             `hcl:"tier,label"`
	FTE  map[string]float64 `hcl:"fte"`
}

type hclPricing struct {
	Margin      *float64 `hcl:"margin,optional"`
	RiskPremium *float64 `hcl:"risk_premium,optional"`
	Contingency *float64 `hcl:"contingency,optional"`
	Discount    *float64 `hcl:"discount,optional"`
	HoursPerDay *int     `hcl:"hours_per_day,optional"`
}

type hclScenario struct {
	ID          string            `hcl:"id,label"`
	Name        string            `hcl:"name"`
	Description string            `hcl:"description,optional"`
	Values      map[string]string `hcl:"values"`
}

type hclPhase struct {
	ID       string            `hcl:"id,label"`
	Name     string            `hcl:"name"`
	Duration map[string]string `hcl:"duration,optional"`
}

type hclSizingTier struct {
	Tier        string `hcl:"tier,label"`
	Duration    string `hcl:"duration,optional"`
	Effort      string `hcl:"effort,optional"`
	Description string `hcl:"description,optional"`
}

func parseHCL(src []byte, filename string) (*types.Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	cat := &types.Catalog{}
	if root.Metadata != nil {
		cat.Metadata = types.Metadata(*root.Metadata)
	}

	for _, b := range root.BaseEffort {
		cat.BaseEffort = append(cat.BaseEffort, types.BaseEffortItem(b))
	}
	for _, a := range root.ScopeAreas {
		cat.ScopeAreas = append(cat.ScopeAreas, types.ScopeArea(a))
	}

	for _, s := range root.Sections {
		section := types.Section{ID: s.ID, Label: s.Label}
		for _, g := range s.Groups {
			group := types.ParameterGroup{Title: g.Title}
			for _, p := range g.Parameters {
				param := types.Parameter{ID: p.ID, Label: p.Label, Required: p.Required, Default: p.Default}
				for _, o := range p.Options {
					param.Options = append(param.Options, types.Option{
						Value:      o.Value,
						Label:      o.Label,
						ExtraHours: o.Hours,
						SizeImpact: o.SizeImpact,
					})
				}
				group.Parameters = append(group.Parameters, param)
			}
			section.Groups = append(section.Groups, group)
		}
		cat.Sections = append(cat.Sections, section)
	}

	for _, f := range root.ComplianceFactors {
		cat.ComplianceFactors = append(cat.ComplianceFactors, types.ComplianceFactor(f))
	}

	for _, c := range root.Contexts {
		category := types.ContextCategory{ID: c.ID, Label: c.Label}
		for _, o := range c.Options {
			category.Options = append(category.Options, types.ContextOption{
				Key:        o.Key,
				Label:      o.Label,
				Adjustment: decimal.NewFromFloat(o.Adjustment),
			})
		}
		cat.ContextMultipliers = append(cat.ContextMultipliers, category)
	}

	for _, r := range root.Roles {
		cat.Roles = append(cat.Roles, types.Role{
			ID:        r.ID,
			Name:      r.Name,
			DailyRate: decimal.NewFromFloat(r.DailyRate),
			IsPrimary: r.Primary,
		})
	}

	if len(root.Teams) > 0 {
		cat.TeamComposition = make(types.TeamCompositionTable, len(root.Teams))
		for _, team := range root.Teams {
			row := make(map[string]decimal.Decimal, len(team.FTE))
			for role, fte := range team.FTE {
				row[role] = decimal.NewFromFloat(fte)
			}
			cat.TeamComposition[types.SizeTier(team.Tier)] = row
		}
	}

	var pf pricingFields
	if p := root.Pricing; p != nil {
		pf = pricingFields{
			margin:      decimalPtr(p.Margin),
			riskPremium: decimalPtr(p.RiskPremium),
			contingency: decimalPtr(p.Contingency),
			discount:    decimalPtr(p.Discount),
			hoursPerDay: p.HoursPerDay,
		}
	}
	cat.Pricing = pf.resolve()

	for _, s := range root.Scenarios {
		cat.Scenarios = append(cat.Scenarios, types.Scenario(s))
	}

	for _, p := range root.Phases {
		phase := types.Phase{ID: p.ID, Name: p.Name}
		if len(p.Duration) > 0 {
			phase.DurationBySize = make(map[types.SizeTier]string, len(p.Duration))
			for tier, d := range p.Duration {
				phase.DurationBySize[types.SizeTier(tier)] = d
			}
		}
		cat.Phases = append(cat.Phases, phase)
	}

	if len(root.Sizing) > 0 {
		cat.SizingCriteria = make(map[types.SizeTier]types.SizingCriteria, len(root.Sizing))
		for _, s := range root.Sizing {
			cat.SizingCriteria[types.SizeTier(s.Tier)] = types.SizingCriteria{
				Duration:    s.Duration,
				Effort:      s.Effort,
				Description: s.Description,
			}
		}
	}
	return cat, nil
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
