package playbook

import "github.com/sells-group/playbook-cli/internal/model"

const escalationRiskThreshold = 7

// Escalation trigger messages.
const (
	TriggerCriticalHealth    = "Account health is critical: escalate to CS leadership immediately"
	TriggerHighOverallRisk   = "Overall risk score at or above 7"
	TriggerUnhealthyRenewal  = "Renewal within 90 days on an unhealthy account"
	TriggerTechnicalUnsolved = "Technical issue unresolved after 48 hours"
	TriggerPaymentFailing    = "Payment still failing after billing review"
)

type nextSteps struct {
	csp []string
	am  []string
}

var scenarioNextSteps = map[model.Scenario]nextSteps{
	model.ScenarioPaymentIssues: {
		csp: []string{
			"Confirm the corrected invoice with {contactName}",
			"Walk {contactName} through the billing portal",
			"Check in one week after resolution",
		},
		am: []string{
			"Review contract payment terms for {customerName}",
			"Approve any credit or payment plan",
			"Flag the account in the next forecast review",
		},
	},
	model.ScenarioUsageDecline: {
		csp: []string{
			"Run a usage review with {contactName}'s team",
			"Share two adoption quick wins",
			"Track weekly active users for a month",
		},
		am: []string{
			"Reassess the {customerName} renewal forecast",
			"Identify an executive sponsor for adoption",
			"Hold expansion talks until usage recovers",
		},
	},
	model.ScenarioExpansionOpportunity: {
		csp: []string{
			"Collect success metrics from {contactName}",
			"Document the {customerName} use cases ready to scale",
			"Line up a reference call if {contactName} agrees",
		},
		am: []string{
			"Build the expansion proposal for {customerName}",
			"Align pricing with the renewal calendar",
			"Schedule the commercial discussion with {contactName}",
		},
	},
	model.ScenarioTechnicalProblems: {
		csp: []string{
			"Confirm the fix with {contactName}",
			"Share the root cause summary",
			"Monitor the {customerName} support queue for two weeks",
		},
		am: []string{
			"Assess commercial exposure at {customerName}",
			"Prepare a service credit if warranted",
			"Update {contactName}'s leadership on remediation",
		},
	},
	model.ScenarioExecutiveChange: {
		csp: []string{
			"Brief the new executive on value delivered to {customerName}",
			"Refresh the stakeholder map",
			"Keep {contactName} involved as a champion",
		},
		am: []string{
			"Request an introductory meeting with the new executive",
			"Review contract risk at {customerName}",
			"Align the account plan with the new priorities",
		},
	},
	model.ScenarioRenewalRisk: {
		csp: []string{
			"Document the value delivered to {customerName}",
			"Resolve open issues raised by {contactName}",
			"Secure a champion ahead of the renewal call",
		},
		am: []string{
			"Prepare renewal options for {customerName}",
			"Engage the economic buyer",
			"Set a renewal decision date with {contactName}",
		},
	},
	model.ScenarioOnboardingIssues: {
		csp: []string{
			"Agree on onboarding milestones with {contactName}",
			"Schedule weekly onboarding check-ins",
			"Confirm the {customerName} admin is trained",
		},
		am: []string{
			"Confirm the implementation scope for {customerName}",
			"Escalate resourcing gaps internally",
			"Reset time-to-value expectations with {contactName}",
		},
	},
}

var fallbackNextSteps = nextSteps{
	csp: []string{
		"Clarify the situation with {contactName}",
		"Agree on a success plan for {customerName}",
		"Check in within one week",
	},
	am: []string{
		"Review the {customerName} account plan",
		"Assess commercial impact",
		"Align with the CSM on next steps",
	},
}

// buildEscalationTriggers lists the conditions that warrant escalation. It
// returns nil when none apply.
func buildEscalationTriggers(cc model.CustomerContext, resolved model.Scenario, ra model.RiskAssessment) []string {
	var out []string
	if cc.CurrentHealth == model.HealthCritical {
		out = append(out, TriggerCriticalHealth)
	}
	if ra.OverallRiskScore >= escalationRiskThreshold {
		out = append(out, TriggerHighOverallRisk)
	}
	if cc.Metrics != nil && cc.Metrics.RenewalTimeline == model.RenewalNearTerm && cc.CurrentHealth != model.HealthHealthy {
		out = append(out, TriggerUnhealthyRenewal)
	}
	switch resolved {
	case model.ScenarioTechnicalProblems:
		out = append(out, TriggerTechnicalUnsolved)
	case model.ScenarioPaymentIssues:
		out = append(out, TriggerPaymentFailing)
	}
	return out
}

func buildNextSteps(resolved model.Scenario, in interpolator) (csp, am []string) {
	steps, ok := scenarioNextSteps[resolved]
	if !ok {
		steps = fallbackNextSteps
	}
	return in.applyAll(steps.csp), in.applyAll(steps.am)
}
