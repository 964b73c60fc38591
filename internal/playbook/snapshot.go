package playbook

import (
	"fmt"

	"github.com/sells-group/playbook-cli/internal/model"
)

// Health indicator labels.
const (
	IndicatorHighEngagement  = "High user engagement"
	IndicatorLowEngagement   = "Low user engagement"
	IndicatorHighUtilization = "High feature utilization"
	IndicatorLowUtilization  = "Low feature utilization"
	IndicatorHighActivation  = "High license activation"
	IndicatorLowActivation   = "Low license activation"
)

// Key insight messages.
const (
	InsightAdoptionOpportunity = "Significant opportunity to increase feature adoption"
	InsightRenewalApproaching  = "Renewal approaching"
)

// buildSnapshot derives health indicators and insights from the metrics.
// It returns nil when the context carried no metrics.
func buildSnapshot(m *model.Metrics) *model.AccountSnapshot {
	if m == nil {
		return nil
	}
	snap := &model.AccountSnapshot{
		Metrics:          *m,
		HealthIndicators: []string{},
		KeyInsights:      []string{},
	}

	switch {
	case m.LoginRate > 70:
		snap.HealthIndicators = append(snap.HealthIndicators, IndicatorHighEngagement)
	case m.LoginRate < 30:
		snap.HealthIndicators = append(snap.HealthIndicators, IndicatorLowEngagement)
	}
	switch {
	case m.SubscriptionUtilization > 80:
		snap.HealthIndicators = append(snap.HealthIndicators, IndicatorHighUtilization)
	case m.SubscriptionUtilization < 40:
		snap.HealthIndicators = append(snap.HealthIndicators, IndicatorLowUtilization)
	}
	// Activation is undefined without purchased seats.
	if m.LicensesPurchased > 0 {
		activation := float64(m.AssignedUsers) / float64(m.LicensesPurchased)
		switch {
		case activation > 0.8:
			snap.HealthIndicators = append(snap.HealthIndicators, IndicatorHighActivation)
		case activation < 0.4:
			snap.HealthIndicators = append(snap.HealthIndicators, IndicatorLowActivation)
		}
	}

	if n := m.UnusedLicenses(); n > 0 {
		snap.KeyInsights = append(snap.KeyInsights, fmt.Sprintf("%d unused licenses available", n))
	}
	if m.SubscriptionUtilization < 50 {
		snap.KeyInsights = append(snap.KeyInsights, InsightAdoptionOpportunity)
	}
	if m.RenewalTimeline == model.RenewalNearTerm {
		snap.KeyInsights = append(snap.KeyInsights, InsightRenewalApproaching)
	}
	return snap
}
