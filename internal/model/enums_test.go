package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioValid(t *testing.T) {
	t.Parallel()

	for _, s := range AllScenarios() {
		assert.True(t, s.Valid(), "scenario %q should be valid", s)
	}
	assert.Len(t, AllScenarios(), 8)
	assert.False(t, Scenario("churned").Valid())
	assert.False(t, Scenario("").Valid())
}

func TestScenarioLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scenario Scenario
		want     string
	}{
		{ScenarioPaymentIssues, "Payment/Billing Issues"},
		{ScenarioRenewalRisk, "Renewal Risk"},
		{ScenarioCustom, "Custom Scenario"},
		{Scenario("price_increase"), "Price Increase"},
	}

	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.scenario.Label())
		})
	}

	for _, s := range AllScenarios() {
		_, ok := scenarioLabels[s]
		assert.True(t, ok, "scenario %q has no label", s)
	}
}

func TestEnumValid(t *testing.T) {
	t.Parallel()

	assert.True(t, HealthAtRisk.Valid())
	assert.False(t, Health("unknown").Valid())

	for _, tone := range AllTones() {
		assert.True(t, tone.Valid())
	}
	assert.Len(t, AllTones(), 6)
	assert.False(t, Tone("sarcastic").Valid())

	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("urgent").Valid())
	assert.True(t, LevelMedium.Valid())
	assert.True(t, CategoryRelationship.Valid())
	assert.False(t, RiskCategory("pricing").Valid())
	assert.True(t, RenewalFarTerm.Valid())
	assert.False(t, RenewalTimeline("next-year").Valid())
}

func TestMetricsUnusedLicenses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, Metrics{LicensesPurchased: 150, AssignedUsers: 100}.UnusedLicenses())
	assert.Equal(t, 0, Metrics{LicensesPurchased: 10, AssignedUsers: 12}.UnusedLicenses())
	assert.Equal(t, 0, Metrics{}.UnusedLicenses())
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	cc := CustomerContext{Metrics: &Metrics{LoginRate: 10}}
	cc.ApplyDefaults()
	assert.Equal(t, RenewalMidTerm, cc.Metrics.RenewalTimeline)

	set := Metrics{RenewalTimeline: RenewalNearTerm}
	set.ApplyDefaults()
	assert.Equal(t, RenewalNearTerm, set.RenewalTimeline)

	unknown := Metrics{RenewalTimeline: "someday"}
	unknown.ApplyDefaults()
	assert.Equal(t, RenewalTimeline("someday"), unknown.RenewalTimeline)

	bare := CustomerContext{}
	assert.NotPanics(t, bare.ApplyDefaults)
	assert.Nil(t, bare.Metrics)
}

func TestCustomerContextJSON(t *testing.T) {
	t.Parallel()

	raw := `{
		"customerName": "Acme",
		"contactName": "Jane",
		"contactRole": "VP Ops",
		"accountValue": "$120,000",
		"currentHealth": "critical",
		"scenario": "renewal_risk",
		"customSignal": "threatening to leave",
		"metrics": {"loginRate": 10, "activeUsers": 10, "assignedUsers": 100, "licensesPurchased": 150, "subscriptionUtilization": 20, "renewalTimeline": "near-term"}
	}`

	var cc CustomerContext
	require.NoError(t, json.Unmarshal([]byte(raw), &cc))
	assert.Equal(t, HealthCritical, cc.CurrentHealth)
	assert.Equal(t, ScenarioRenewalRisk, cc.Scenario)
	require.NotNil(t, cc.Metrics)
	assert.Equal(t, RenewalNearTerm, cc.Metrics.RenewalTimeline)
	assert.Nil(t, cc.Stakeholders)
}

func TestPlaybookCounts(t *testing.T) {
	t.Parallel()

	pb := CSPlaybook{
		ActionPlan: []ActionItem{
			{Priority: PriorityHigh},
			{Priority: PriorityMedium},
			{Priority: PriorityHigh},
		},
		RisksOpportunities: []RiskOpportunity{
			{Type: RiskTypeRisk},
			{Type: RiskTypeOpportunity},
			{Type: RiskTypeRisk},
		},
	}

	assert.Equal(t, 2, pb.HighPriorityActions())
	assert.Equal(t, 2, pb.CountByType(RiskTypeRisk))
	assert.Equal(t, 1, pb.CountByType(RiskTypeOpportunity))
}
