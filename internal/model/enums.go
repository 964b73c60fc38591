package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Scenario is one of the canonical customer situations a playbook targets.
type Scenario string

const (
	ScenarioPaymentIssues        Scenario = "payment_issues"
	ScenarioUsageDecline         Scenario = "usage_decline"
	ScenarioExpansionOpportunity Scenario = "expansion_opportunity"
	ScenarioTechnicalProblems    Scenario = "technical_problems"
	ScenarioExecutiveChange      Scenario = "executive_change"
	ScenarioRenewalRisk          Scenario = "renewal_risk"
	ScenarioOnboardingIssues     Scenario = "onboarding_issues"
	ScenarioCustom               Scenario = "custom"
)

// AllScenarios returns every scenario in display order.
func AllScenarios() []Scenario {
	return []Scenario{
		ScenarioPaymentIssues,
		ScenarioUsageDecline,
		ScenarioExpansionOpportunity,
		ScenarioTechnicalProblems,
		ScenarioExecutiveChange,
		ScenarioRenewalRisk,
		ScenarioOnboardingIssues,
		ScenarioCustom,
	}
}

func (s Scenario) Valid() bool {
	switch s {
	case ScenarioPaymentIssues, ScenarioUsageDecline, ScenarioExpansionOpportunity,
		ScenarioTechnicalProblems, ScenarioExecutiveChange, ScenarioRenewalRisk,
		ScenarioOnboardingIssues, ScenarioCustom:
		return true
	}
	return false
}

var scenarioLabels = map[Scenario]string{
	ScenarioPaymentIssues:        "Payment/Billing Issues",
	ScenarioUsageDecline:         "Usage Decline",
	ScenarioExpansionOpportunity: "Expansion Opportunity",
	ScenarioTechnicalProblems:    "Technical Problems",
	ScenarioExecutiveChange:      "Executive Change",
	ScenarioRenewalRisk:          "Renewal Risk",
	ScenarioOnboardingIssues:     "Onboarding Issues",
	ScenarioCustom:               "Custom Scenario",
}

// Label returns the human readable name of the scenario. Unknown keys are
// title-cased from their snake_case form.
func (s Scenario) Label() string {
	if l, ok := scenarioLabels[s]; ok {
		return l
	}
	return TitleCase(strings.ReplaceAll(string(s), "_", " "))
}

// Health is the coarse account status reported by the CSM.
type Health string

const (
	HealthHealthy  Health = "healthy"
	HealthAtRisk   Health = "at-risk"
	HealthCritical Health = "critical"
)

func (h Health) Valid() bool {
	switch h {
	case HealthHealthy, HealthAtRisk, HealthCritical:
		return true
	}
	return false
}

// Tone is the rhetorical register of the generated email.
type Tone string

const (
	ToneUrgent               Tone = "urgent"
	ToneExecutive            Tone = "executive"
	ToneConsultative         Tone = "consultative"
	ToneEmpathetic           Tone = "empathetic"
	ToneRelationshipBuilding Tone = "relationship-building"
	ToneFriendly             Tone = "friendly"
)

// AllTones returns every supported tone.
func AllTones() []Tone {
	return []Tone{
		ToneUrgent,
		ToneExecutive,
		ToneConsultative,
		ToneEmpathetic,
		ToneRelationshipBuilding,
		ToneFriendly,
	}
}

func (t Tone) Valid() bool {
	switch t {
	case ToneUrgent, ToneExecutive, ToneConsultative, ToneEmpathetic,
		ToneRelationshipBuilding, ToneFriendly:
		return true
	}
	return false
}

// Priority ranks an action item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// RiskType separates risks from opportunities.
type RiskType string

const (
	RiskTypeRisk        RiskType = "risk"
	RiskTypeOpportunity RiskType = "opportunity"
)

// Level grades impact and likelihood.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

func (l Level) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow:
		return true
	}
	return false
}

// RiskCategory groups risks and opportunities by business area.
type RiskCategory string

const (
	CategoryAdoption     RiskCategory = "adoption"
	CategoryRenewal      RiskCategory = "renewal"
	CategoryExpansion    RiskCategory = "expansion"
	CategoryRelationship RiskCategory = "relationship"
	CategoryTechnical    RiskCategory = "technical"
)

func (c RiskCategory) Valid() bool {
	switch c {
	case CategoryAdoption, CategoryRenewal, CategoryExpansion, CategoryRelationship, CategoryTechnical:
		return true
	}
	return false
}

// RenewalTimeline buckets the time left until renewal.
type RenewalTimeline string

const (
	RenewalNearTerm RenewalTimeline = "near-term" // < 90 days
	RenewalMidTerm  RenewalTimeline = "mid-term"  // 90-180 days
	RenewalFarTerm  RenewalTimeline = "far-term"  // > 180 days
)

func (r RenewalTimeline) Valid() bool {
	switch r {
	case RenewalNearTerm, RenewalMidTerm, RenewalFarTerm:
		return true
	}
	return false
}

// TitleCase converts a phrase to English title case ("relationship-building"
// becomes "Relationship-Building").
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
