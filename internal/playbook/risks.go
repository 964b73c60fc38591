package playbook

import (
	"strconv"
	"strings"

	"github.com/sells-group/playbook-cli/internal/model"
)

const (
	highValueThreshold    = 100_000
	lowLoginRateThreshold = 30
	licenseUsageThreshold = 0.7
)

// Derived risks and opportunities.
var (
	RiskCriticalHealth = model.RiskOpportunity{
		Type:        model.RiskTypeRisk,
		Description: "Account in critical health: immediate intervention required",
		Impact:      model.LevelHigh,
		Likelihood:  model.LevelHigh,
		Category:    model.CategoryRenewal,
		Score:       9,
	}
	OpportunityHighValue = model.RiskOpportunity{
		Type:        model.RiskTypeOpportunity,
		Description: "High-value account with expansion and case study potential",
		Impact:      model.LevelHigh,
		Likelihood:  model.LevelMedium,
		Category:    model.CategoryExpansion,
		Score:       7,
	}
	RiskLowLogin = model.RiskOpportunity{
		Type:        model.RiskTypeRisk,
		Description: "Low login rate signals weak day-to-day engagement",
		Impact:      model.LevelMedium,
		Likelihood:  model.LevelHigh,
		Category:    model.CategoryAdoption,
		Score:       6,
	}
	OpportunityUnusedLicenses = model.RiskOpportunity{
		Type:        model.RiskTypeOpportunity,
		Description: "Unused licenses: drive adoption before renewal",
		Impact:      model.LevelMedium,
		Likelihood:  model.LevelHigh,
		Category:    model.CategoryAdoption,
		Score:       6,
	}
)

// ParseAccountValue strips every non-digit character from a currency-like
// string and parses the remainder. Empty or digit-free input yields 0.
func ParseAccountValue(s string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	// ParseFloat only fails with ErrRange here and then returns +Inf.
	v, _ := strconv.ParseFloat(digits, 64)
	return v
}

// buildRisks starts from the template defaults and appends derived items in a
// fixed check order.
func buildRisks(cc model.CustomerContext, tmpl ScenarioTemplate) []model.RiskOpportunity {
	out := make([]model.RiskOpportunity, 0, len(tmpl.DefaultRisks)+4)
	out = append(out, tmpl.DefaultRisks...)

	if cc.CurrentHealth == model.HealthCritical {
		out = append(out, RiskCriticalHealth)
	}
	if ParseAccountValue(cc.AccountValue) > highValueThreshold {
		out = append(out, OpportunityHighValue)
	}
	if m := cc.Metrics; m != nil {
		if m.LoginRate < lowLoginRateThreshold {
			out = append(out, RiskLowLogin)
		}
		if float64(m.AssignedUsers) < float64(m.LicensesPurchased)*licenseUsageThreshold {
			out = append(out, OpportunityUnusedLicenses)
		}
	}
	return out
}
