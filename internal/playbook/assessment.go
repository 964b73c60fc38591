package playbook

import (
	"math"

	"github.com/sells-group/playbook-cli/internal/model"
)

const (
	neutralRisk                 = 5 // sub-score when no metrics were supplied
	indicatorThreshold          = 6
	nearTermRenewalRiskIncrease = 2
)

// Risk indicator messages, appended in this order.
const (
	IndicatorLowUserAdoption = "Low user adoption rates"
	IndicatorUnderutilized   = "Underutilized product features"
	IndicatorRenewalAtRisk   = "Renewal at risk"
	IndicatorDecliningHealth = "Declining account health"
)

// scoreUserAdoption grades active users against assigned seats. Zero assigned
// seats is treated as the worst case.
func scoreUserAdoption(m *model.Metrics) int {
	if m == nil {
		return neutralRisk
	}
	if m.AssignedUsers <= 0 {
		return 8
	}
	ratio := float64(m.ActiveUsers) / float64(m.AssignedUsers)
	switch {
	case ratio < 0.3:
		return 8
	case ratio < 0.6:
		return 6
	default:
		return 3
	}
}

func scoreProductAdoption(m *model.Metrics) int {
	if m == nil {
		return neutralRisk
	}
	switch {
	case m.SubscriptionUtilization < 30:
		return 8
	case m.SubscriptionUtilization < 60:
		return 6
	default:
		return 3
	}
}

func scoreRenewal(h model.Health, m *model.Metrics) int {
	var score int
	switch h {
	case model.HealthCritical:
		score = 9
	case model.HealthAtRisk:
		score = 7
	case model.HealthHealthy:
		score = 3
	default:
		score = neutralRisk
	}
	if m != nil && m.RenewalTimeline == model.RenewalNearTerm {
		score += nearTermRenewalRiskIncrease
	}
	return clampScore(score)
}

// assessRisk computes the three sub-scores, their rounded mean and the
// indicators that crossed their thresholds.
func assessRisk(cc model.CustomerContext) model.RiskAssessment {
	ra := model.RiskAssessment{
		UserAdoptionRisk:    clampScore(scoreUserAdoption(cc.Metrics)),
		ProductAdoptionRisk: clampScore(scoreProductAdoption(cc.Metrics)),
		RenewalRisk:         scoreRenewal(cc.CurrentHealth, cc.Metrics),
		RiskIndicators:      []string{},
	}
	ra.OverallRiskScore = overallRisk(ra.UserAdoptionRisk, ra.ProductAdoptionRisk, ra.RenewalRisk)

	if ra.UserAdoptionRisk > indicatorThreshold {
		ra.RiskIndicators = append(ra.RiskIndicators, IndicatorLowUserAdoption)
	}
	if ra.ProductAdoptionRisk > indicatorThreshold {
		ra.RiskIndicators = append(ra.RiskIndicators, IndicatorUnderutilized)
	}
	if ra.RenewalRisk > indicatorThreshold {
		ra.RiskIndicators = append(ra.RiskIndicators, IndicatorRenewalAtRisk)
	}
	if cc.CurrentHealth != model.HealthHealthy {
		ra.RiskIndicators = append(ra.RiskIndicators, IndicatorDecliningHealth)
	}
	return ra
}

// overallRisk is the rounded mean of the three sub-scores.
func overallRisk(user, product, renewal int) int {
	return clampScore(int(math.Round(float64(user+product+renewal) / 3)))
}

// clampScore bounds a score to [1,10].
func clampScore(v int) int {
	return max(1, min(10, v))
}
