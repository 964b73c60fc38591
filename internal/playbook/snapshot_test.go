package playbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/playbook-cli/internal/model"
)

func TestBuildSnapshot_NilMetrics(t *testing.T) {
	assert.Nil(t, buildSnapshot(nil))
}

func TestBuildSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		m          model.Metrics
		indicators []string
		insights   []string
	}{
		{
			name:       "struggling account",
			m:          *atRiskMetrics(),
			indicators: []string{IndicatorLowEngagement, IndicatorLowUtilization},
			insights:   []string{"50 unused licenses available", InsightAdoptionOpportunity, InsightRenewalApproaching},
		},
		{
			name: "thriving account",
			m: model.Metrics{
				LoginRate: 85, SubscriptionUtilization: 90,
				LicensesPurchased: 100, AssignedUsers: 100,
				RenewalTimeline: model.RenewalFarTerm,
			},
			indicators: []string{IndicatorHighEngagement, IndicatorHighUtilization, IndicatorHighActivation},
			insights:   []string{},
		},
		{
			name: "middling account",
			m: model.Metrics{
				LoginRate: 50, SubscriptionUtilization: 60,
				LicensesPurchased: 100, AssignedUsers: 30,
				RenewalTimeline: model.RenewalMidTerm,
			},
			indicators: []string{IndicatorLowActivation},
			insights:   []string{"70 unused licenses available"},
		},
		{
			name: "no purchased seats",
			m: model.Metrics{
				LoginRate: 50, SubscriptionUtilization: 70,
				RenewalTimeline: model.RenewalMidTerm,
			},
			indicators: []string{},
			insights:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m
			snap := buildSnapshot(&m)
			require.NotNil(t, snap)
			assert.Equal(t, tt.m, snap.Metrics)
			assert.Equal(t, tt.indicators, snap.HealthIndicators)
			assert.Equal(t, tt.insights, snap.KeyInsights)
		})
	}
}

func TestScoreConfidence(t *testing.T) {
	longHistory := "Customer since 2019, expanded twice, strong exec sponsor until last quarter."

	tests := []struct {
		name     string
		cc       model.CustomerContext
		resolved model.Scenario
		want     int
	}{
		{"bare custom", model.CustomerContext{}, model.ScenarioCustom, 7},
		{"bare scenario", model.CustomerContext{}, model.ScenarioUsageDecline, 8},
		{"short history", model.CustomerContext{RelationshipHistory: "short"}, model.ScenarioCustom, 7},
		{"everything", model.CustomerContext{
			Metrics:             &model.Metrics{},
			Stakeholders:        &model.Stakeholders{},
			RelationshipHistory: longHistory,
		}, model.ScenarioRenewalRisk, 10},
		{"everything custom", model.CustomerContext{
			Metrics:             &model.Metrics{},
			Stakeholders:        &model.Stakeholders{},
			RelationshipHistory: longHistory,
		}, model.ScenarioCustom, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreConfidence(tt.cc, tt.resolved)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, 10)
		})
	}
}

func TestBuildEscalationTriggers(t *testing.T) {
	low := model.RiskAssessment{OverallRiskScore: 3}
	high := model.RiskAssessment{OverallRiskScore: 7}

	tests := []struct {
		name     string
		cc       model.CustomerContext
		resolved model.Scenario
		ra       model.RiskAssessment
		want     []string
	}{
		{"nothing", model.CustomerContext{CurrentHealth: model.HealthHealthy}, model.ScenarioUsageDecline, low, nil},
		{"critical", model.CustomerContext{CurrentHealth: model.HealthCritical}, model.ScenarioCustom, low, []string{TriggerCriticalHealth}},
		{"high risk", model.CustomerContext{CurrentHealth: model.HealthHealthy}, model.ScenarioCustom, high, []string{TriggerHighOverallRisk}},
		{"near-term healthy", model.CustomerContext{
			CurrentHealth: model.HealthHealthy,
			Metrics:       &model.Metrics{RenewalTimeline: model.RenewalNearTerm},
		}, model.ScenarioCustom, low, nil},
		{"near-term unhealthy", model.CustomerContext{
			CurrentHealth: model.HealthAtRisk,
			Metrics:       &model.Metrics{RenewalTimeline: model.RenewalNearTerm},
		}, model.ScenarioCustom, low, []string{TriggerUnhealthyRenewal}},
		{"technical", model.CustomerContext{CurrentHealth: model.HealthHealthy}, model.ScenarioTechnicalProblems, low, []string{TriggerTechnicalUnsolved}},
		{"payment critical", model.CustomerContext{CurrentHealth: model.HealthCritical}, model.ScenarioPaymentIssues, high,
			[]string{TriggerCriticalHealth, TriggerHighOverallRisk, TriggerPaymentFailing}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildEscalationTriggers(tt.cc, tt.resolved, tt.ra))
		})
	}
}

func TestBuildNextSteps(t *testing.T) {
	in := newInterpolator(acmeContext())
	for _, s := range model.AllScenarios() {
		csp, am := buildNextSteps(s, in)
		assert.Len(t, csp, 3, string(s))
		assert.Len(t, am, 3, string(s))
	}

	csp, _ := buildNextSteps(model.ScenarioCustom, in)
	assert.Equal(t, "Clarify the situation with Jane", csp[0])
}
