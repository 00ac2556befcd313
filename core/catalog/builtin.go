// Package catalog - Built-in sample service
package catalog

import "service-estimator/core/types"

func hours(h int) *int {
	return &h
}

// Default returns the built-in Kubernetes platform catalogue. Each call
// returns a fresh value.
func Default() *types.Catalog {
	cat := &types.Catalog{
		Metadata: types.Metadata{
			ID:       "ID0K8",
			Name:     "Kubernetes Platform Foundation",
			Version:  "v1.0",
			Category: "Platform Engineering",
		},
		BaseEffort: DefaultBaseEffort(),
		ScopeAreas: []types.ScopeArea{
			{ID: "assessment", Name: "Current State Assessment", Category: "Foundation", Hours: 16, Required: true,
				Description: "Workload inventory, constraints, target architecture"},
			{ID: "landingZone", Name: "Landing Zone", Category: "Foundation", Hours: 40,
				Requires: []string{"assessment"}, Description: "Accounts, network, identity baseline"},
			{ID: "cluster", Name: "Cluster Build", Category: "Platform", Hours: 48,
				Requires: []string{"landingZone"}, Description: "Managed Kubernetes clusters and node pools"},
			{ID: "gitops", Name: "GitOps Delivery", Category: "Platform", Hours: 24,
				Requires: []string{"cluster"}, Description: "Declarative delivery pipelines"},
			{ID: "observability", Name: "Observability", Category: "Operations", Hours: 24,
				Requires: []string{"cluster"}, Description: "Metrics, logs, traces and alerting"},
			{ID: "securityHardening", Name: "Security Hardening", Category: "Security", Hours: 32,
				Requires: []string{"cluster"}, Description: "Policies, admission control, secrets"},
			{ID: "serviceMesh", Name: "Service Mesh", Category: "Platform", Hours: 32,
				Requires: []string{"observability", "securityHardening"}, Description: "mTLS and traffic management"},
			{ID: "finops", Name: "Cost Governance", Category: "Operations", Hours: 12,
				Description: "Budgets, tagging and showback"},
		},
		Sections: []types.Section{
			{ID: "organization", Label: "Organization", Groups: []types.ParameterGroup{
				{Title: "Footprint", Parameters: []types.Parameter{
					{ID: "environments", Label: "Environments", Required: true, Default: "two", Options: []types.Option{
						{Value: "one", Label: "Single environment", SizeImpact: "S"},
						{Value: "two", Label: "Non-prod and prod", ExtraHours: hours(8), SizeImpact: "M"},
						{Value: "many", Label: "Three or more", ExtraHours: hours(24), SizeImpact: "L"},
					}},
					{ID: "regions", Label: "Regions", Default: "single", Options: []types.Option{
						{Value: "single", Label: "Single region", SizeImpact: "S"},
						{Value: "multi", Label: "Multi-region", ExtraHours: hours(32), SizeImpact: "L"},
					}},
				}},
			}},
			{ID: "technical", Label: "Technical", Groups: []types.ParameterGroup{
				{Title: "Workloads", Parameters: []types.Parameter{
					{ID: "workloadCount", Label: "Workloads to onboard", Options: []types.Option{
						{Value: "few", Label: "Up to 5", SizeImpact: "S"},
						{Value: "some", Label: "6 to 20", ExtraHours: hours(24), SizeImpact: "M"},
						{Value: "many", Label: "More than 20", ExtraHours: hours(56), SizeImpact: "L"},
					}},
					{ID: "iac", Label: "Infrastructure as Code", Default: "terraform", Options: []types.Option{
						{Value: "terraform", Label: "Terraform"},
						{Value: "none", Label: "None yet", ExtraHours: hours(16), SizeImpact: "M"},
					}},
				}},
			}},
		},
		ComplianceFactors: []types.ComplianceFactor{
			{ID: "gdpr", Label: "GDPR", Hours: hours(12)},
			{ID: "pciDss", Label: "PCI DSS", Hours: hours(24)},
			{ID: "iso27001", Label: "ISO 27001"},
		},
		ContextMultipliers: DefaultContextMultipliers(),
		Roles:              DefaultRoles(),
		TeamComposition:    DefaultTeamComposition(),
		Pricing:            DefaultPricing(),
		Scenarios: []types.Scenario{
			{ID: "startup", Name: "Startup", Description: "Single environment, few workloads",
				Values: map[string]string{"environments": "one", "regions": "single", "workloadCount": "few"}},
			{ID: "scaleup", Name: "Scale-up", Description: "Staged environments, growing workload count",
				Values: map[string]string{"environments": "two", "workloadCount": "some"}},
			{ID: "enterprise", Name: "Enterprise", Description: "Multi-region with many workloads",
				Values: map[string]string{"environments": "many", "regions": "multi", "workloadCount": "many", "iac": "none"}},
		},
		Phases: []types.Phase{
			{ID: "discover", Name: "Discover", DurationBySize: map[types.SizeTier]string{
				types.SizeS: "1 week", types.SizeM: "1-2 weeks", types.SizeL: "2-3 weeks"}},
			{ID: "build", Name: "Build", DurationBySize: map[types.SizeTier]string{
				types.SizeS: "2 weeks", types.SizeM: "4 weeks", types.SizeL: "7 weeks"}},
			{ID: "transition", Name: "Transition", DurationBySize: map[types.SizeTier]string{
				types.SizeS: "1 week", types.SizeM: "1-2 weeks", types.SizeL: "2 weeks"}},
		},
		SizingCriteria: map[types.SizeTier]types.SizingCriteria{
			types.SizeS: {Duration: "3-4 weeks", Effort: "up to 150h", Description: "Single cluster, few workloads"},
			types.SizeM: {Duration: "6-8 weeks", Effort: "151-300h", Description: "Multiple environments, platform services"},
			types.SizeL: {Duration: "10-14 weeks", Effort: "over 300h", Description: "Multi-region enterprise platform"},
		},
	}
	return cat
}
