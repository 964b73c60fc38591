package playbook

import (
	"github.com/sells-group/playbook-cli/internal/model"
)

// Owner role labels used in action plans.
const (
	OwnerCSM         = "Customer Success Manager"
	OwnerBilling     = "CSM + Billing"
	OwnerDataTeam    = "CSM + Data Team"
	OwnerSales       = "CSM + Sales"
	OwnerAE          = "CSM + Account Executive"
	OwnerSupport     = "CSM + Support"
	OwnerEngineering = "CSM + Engineering"
	OwnerOnboarding  = "CSM + Onboarding"
)

var baseActions = []model.ActionItem{
	{
		Action:   "Reach out to {contactName} to acknowledge the situation",
		Timeline: "Within 2 hours",
		Owner:    OwnerCSM,
		Priority: model.PriorityHigh,
	},
	{
		Action:   "Document the {customerName} situation in CRM with detailed notes",
		Timeline: "Within 4 hours",
		Owner:    OwnerCSM,
		Priority: model.PriorityHigh,
	},
}

var scenarioActions = map[model.Scenario][]model.ActionItem{
	model.ScenarioPaymentIssues: {
		{Action: "Coordinate with the billing team to review the {customerName} account status", Timeline: "Within 2 hours", Owner: OwnerBilling, Priority: model.PriorityHigh},
		{Action: "Prepare payment plan or credit options for {contactName}", Timeline: "Within 4 hours", Owner: OwnerCSM, Priority: model.PriorityHigh},
	},
	model.ScenarioUsageDecline: {
		{Action: "Analyse {customerName} usage patterns and identify drop-off points", Timeline: "Within 4 hours", Owner: OwnerDataTeam, Priority: model.PriorityHigh},
		{Action: "Schedule a product training session with {contactName}'s team", Timeline: "Within 3 days", Owner: OwnerCSM, Priority: model.PriorityMedium},
	},
	model.ScenarioExpansionOpportunity: {
		{Action: "Prepare an ROI analysis for additional features for {customerName}", Timeline: "Within 2 days", Owner: OwnerSales, Priority: model.PriorityMedium},
		{Action: "Schedule an expansion discussion meeting with {contactName}", Timeline: "Within 1 week", Owner: OwnerAE, Priority: model.PriorityMedium},
	},
	model.ScenarioTechnicalProblems: {
		{Action: "Escalate the {customerName} issue to the technical support team", Timeline: "Within 2 hours", Owner: OwnerSupport, Priority: model.PriorityHigh},
		{Action: "Schedule a follow-up technical review with {contactName}", Timeline: "Within 1 week", Owner: OwnerEngineering, Priority: model.PriorityMedium},
	},
	model.ScenarioExecutiveChange: {
		{Action: "Research the new {customerName} executive's background and priorities", Timeline: "Within 1 day", Owner: OwnerCSM, Priority: model.PriorityHigh},
		{Action: "Prepare a relationship transition plan", Timeline: "Within 3 days", Owner: OwnerAE, Priority: model.PriorityMedium},
	},
	model.ScenarioRenewalRisk: {
		{Action: "Assess the {customerName} renewal timeline and draft a retention plan", Timeline: "Within 1 day", Owner: OwnerAE, Priority: model.PriorityHigh},
		{Action: "Schedule a stakeholder alignment meeting with {contactName}", Timeline: "Within 3 days", Owner: OwnerCSM, Priority: model.PriorityHigh},
	},
	model.ScenarioOnboardingIssues: {
		{Action: "Review {customerName} onboarding progress and identify blockers", Timeline: "Within 4 hours", Owner: OwnerOnboarding, Priority: model.PriorityHigh},
		{Action: "Create an accelerated onboarding plan with {contactName}", Timeline: "Within 1 day", Owner: OwnerCSM, Priority: model.PriorityMedium},
	},
}

// fallbackActions covers custom and unrecognised scenarios.
var fallbackActions = []model.ActionItem{
	{Action: "Develop a situation-specific action plan for {customerName}", Timeline: "Within 24 hours", Owner: OwnerCSM, Priority: model.PriorityMedium},
}

var followUpActions = []model.ActionItem{
	{
		Action:   "Hold a progress review meeting with {contactName} and key stakeholders",
		Timeline: "Within 48 hours",
		Owner:    OwnerCSM,
		Priority: model.PriorityMedium,
	},
	{
		Action:   "Send a status update on {customerName} to internal stakeholders",
		Timeline: "Within 24 hours",
		Owner:    OwnerCSM,
		Priority: model.PriorityMedium,
	},
}

// actionsFor returns the scenario-specific group, falling back to the single
// generic action.
func actionsFor(s model.Scenario) []model.ActionItem {
	if a, ok := scenarioActions[s]; ok {
		return a
	}
	return fallbackActions
}

// buildActionPlan concatenates base, scenario and follow-up actions in that
// order, with placeholders resolved.
func buildActionPlan(cc model.CustomerContext, in interpolator) []model.ActionItem {
	specific := actionsFor(cc.Scenario)
	plan := make([]model.ActionItem, 0, len(baseActions)+len(specific)+len(followUpActions))

	for _, group := range [][]model.ActionItem{baseActions, specific, followUpActions} {
		for _, a := range group {
			a.Action = in.apply(a.Action)
			plan = append(plan, a)
		}
	}
	return plan
}
