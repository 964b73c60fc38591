package playbook

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/playbook-cli/internal/model"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func acmeContext() model.CustomerContext {
	return model.CustomerContext{
		CustomerName:  "Acme",
		ContactName:   "Jane",
		ContactRole:   "VP Ops",
		AccountValue:  "$120,000",
		CurrentHealth: model.HealthCritical,
		Scenario:      model.ScenarioRenewalRisk,
		CustomSignal:  "threatening to leave",
	}
}

func atRiskMetrics() *model.Metrics {
	return &model.Metrics{
		LoginRate:               10,
		ActiveUsers:             10,
		SubscriptionUtilization: 20,
		LicensesPurchased:       150,
		AssignedUsers:           100,
		RenewalTimeline:         model.RenewalNearTerm,
	}
}

func TestGenerate_AllScenarios(t *testing.T) {
	g := New(WithClock(fixedClock))
	scenarios := append(model.AllScenarios(), model.Scenario("not_a_scenario"))

	for _, s := range scenarios {
		t.Run(string(s), func(t *testing.T) {
			cc := acmeContext()
			cc.Scenario = s
			pb := g.Generate(cc)

			resolved := ResolveScenario(s)
			assert.NotEmpty(t, pb.Objectives)
			assert.NotEmpty(t, pb.BestPractices)
			assert.Equal(t, resolved, pb.ScenarioType)
			assert.Equal(t, Lookup(resolved).CommunicationTone, pb.CommunicationTemplate.Tone)

			specific := 2
			if resolved == model.ScenarioCustom {
				specific = 1
			}
			assert.Len(t, pb.ActionPlan, 2+specific+2)

			assert.GreaterOrEqual(t, pb.Confidence, 1)
			assert.LessOrEqual(t, pb.Confidence, 10)
			assert.Len(t, pb.NextStepsForCSP, 3)
			assert.Len(t, pb.NextStepsForAM, 3)
			assert.Equal(t, fixedNow, pb.GeneratedAt)
		})
	}
}

func TestGenerate_UnknownScenarioUsesCustomTemplate(t *testing.T) {
	g := New(WithClock(fixedClock))
	cc := acmeContext()
	cc.Scenario = "price_increase"

	pb := g.Generate(cc)
	cc.Scenario = model.ScenarioCustom
	custom := g.Generate(cc)

	assert.Equal(t, model.ScenarioCustom, pb.ScenarioType)
	assert.Equal(t, custom.Objectives, pb.Objectives)
	assert.Equal(t, custom.CommunicationTemplate.Tone, pb.CommunicationTemplate.Tone)
	assert.Equal(t, custom.Confidence, pb.Confidence)
}

func TestGenerate_AcmeRenewalRisk(t *testing.T) {
	pb := New(WithClock(fixedClock)).Generate(acmeContext())

	assert.Equal(t, 9, pb.RiskAssessment.RenewalRisk)
	assert.Equal(t, 5, pb.RiskAssessment.UserAdoptionRisk)
	assert.Equal(t, 5, pb.RiskAssessment.ProductAdoptionRisk)
	assert.Equal(t, 6, pb.RiskAssessment.OverallRiskScore)

	descs := make([]string, 0, len(pb.RisksOpportunities))
	for _, r := range pb.RisksOpportunities {
		descs = append(descs, r.Description)
	}
	assert.Contains(t, descs, "Customer may not renew the contract")
	assert.Contains(t, pb.RisksOpportunities, OpportunityHighValue)
	assert.Contains(t, pb.RisksOpportunities, RiskCriticalHealth)

	assert.True(t, strings.HasPrefix(pb.SignalSummary, "Acme: threatening to leave. "))
	assert.Equal(t, model.ToneRelationshipBuilding, pb.CommunicationTemplate.Tone)
	assert.Nil(t, pb.AccountSnapshot)
	assert.Contains(t, pb.EscalationTriggers, TriggerCriticalHealth)
	assert.Equal(t, "Acme", pb.CustomerName)
	// base 7, scenario not custom
	assert.Equal(t, 8, pb.Confidence)
}

func TestGenerate_PlaceholdersResolved(t *testing.T) {
	g := New(WithClock(fixedClock))
	for _, s := range model.AllScenarios() {
		cc := acmeContext()
		cc.Scenario = s
		pb := g.Generate(cc)

		texts := []string{pb.SignalSummary, pb.CommunicationTemplate.Subject, pb.CommunicationTemplate.Body}
		texts = append(texts, pb.Objectives...)
		texts = append(texts, pb.BestPractices...)
		texts = append(texts, pb.NextStepsForCSP...)
		texts = append(texts, pb.NextStepsForAM...)
		for _, a := range pb.ActionPlan {
			texts = append(texts, a.Action)
		}
		for _, text := range texts {
			assert.NotContains(t, text, "{customerName}", "scenario %s", s)
			assert.NotContains(t, text, "{contactName}", "scenario %s", s)
			assert.NotContains(t, text, "{contactRole}", "scenario %s", s)
			assert.NotContains(t, text, "{accountValue}", "scenario %s", s)
			assert.NotContains(t, text, "{customSignal}", "scenario %s", s)
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	cc := acmeContext()
	cc.Metrics = atRiskMetrics()
	cc.Stakeholders = &model.Stakeholders{PrimaryContact: "Jane", Role: "VP Ops", Champions: []string{"Raj"}}

	first := New(WithClock(fixedClock)).Generate(cc)
	second := New(WithClock(func() time.Time { return fixedNow.Add(time.Hour) })).Generate(cc)

	assert.NotEqual(t, first.GeneratedAt, second.GeneratedAt)
	second.GeneratedAt = first.GeneratedAt
	assert.Equal(t, first, second)
}

func TestGenerate_DoesNotShareRegistrySlices(t *testing.T) {
	g := New(WithClock(fixedClock))
	cc := acmeContext()

	pb := g.Generate(cc)
	pb.Objectives[0] = "mutated"
	pb.RisksOpportunities[0].Description = "mutated"
	pb.BestPractices[0] = "mutated"

	again := g.Generate(cc)
	assert.NotEqual(t, "mutated", again.Objectives[0])
	assert.NotEqual(t, "mutated", again.RisksOpportunities[0].Description)
	assert.NotEqual(t, "mutated", again.BestPractices[0])
}

func TestGenerate_Concurrent(t *testing.T) {
	g := New(WithClock(fixedClock))
	want := g.Generate(acmeContext())

	var wg sync.WaitGroup
	results := make([]model.CSPlaybook, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Generate(acmeContext())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerate_WithMetricsBuildsSnapshot(t *testing.T) {
	cc := acmeContext()
	cc.CurrentHealth = model.HealthAtRisk
	cc.Metrics = atRiskMetrics()

	pb := New(WithClock(fixedClock)).Generate(cc)

	require.NotNil(t, pb.AccountSnapshot)
	assert.Equal(t, *cc.Metrics, pb.AccountSnapshot.Metrics)
	assert.Equal(t, 8, pb.RiskAssessment.OverallRiskScore)
	assert.Contains(t, pb.RisksOpportunities, RiskLowLogin)
	assert.Contains(t, pb.RisksOpportunities, OpportunityUnusedLicenses)
	assert.Equal(t, []string{TriggerHighOverallRisk, TriggerUnhealthyRenewal}, pb.EscalationTriggers)
}

func TestGenerate_PackageLevel(t *testing.T) {
	before := time.Now().UTC()
	pb := Generate(acmeContext())
	assert.False(t, pb.GeneratedAt.Before(before.Add(-time.Second)))
	assert.Equal(t, model.ScenarioRenewalRisk, pb.ScenarioType)
}

func TestGenerateStrict(t *testing.T) {
	g := New(WithClock(fixedClock))

	pb, err := g.GenerateStrict(acmeContext())
	require.NoError(t, err)
	assert.Equal(t, g.Generate(acmeContext()), pb)

	bad := acmeContext()
	bad.ContactName = "  "
	_, err = g.GenerateStrict(bad)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidInput))

	_, err = GenerateStrict(bad)
	assert.True(t, eris.Is(err, ErrInvalidInput))
}

func TestWithClock_NilKeepsDefault(t *testing.T) {
	g := New(WithClock(nil))
	require.NotNil(t, g.nowFunc)
	assert.WithinDuration(t, time.Now().UTC(), g.nowFunc(), time.Minute)
}
