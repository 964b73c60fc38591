// Package playbook turns a customer situation into a Customer Success playbook.
//
// Generation is a pure function of the CustomerContext and the static scenario
// registry: it performs no I/O, keeps no state between calls and is safe for
// concurrent use.
package playbook

import (
	"slices"

	"github.com/sells-group/playbook-cli/internal/model"
)

// ScenarioTemplate is the authored content for one scenario.
type ScenarioTemplate struct {
	SignalSummary     string
	Objectives        []string
	CommunicationTone model.Tone
	DefaultRisks      []model.RiskOpportunity
	BestPractices     []string
}

// clone returns a copy that shares no slices with the registry.
func (t ScenarioTemplate) clone() ScenarioTemplate {
	t.Objectives = slices.Clone(t.Objectives)
	t.DefaultRisks = slices.Clone(t.DefaultRisks)
	t.BestPractices = slices.Clone(t.BestPractices)
	return t
}

// Lookup resolves a scenario to its template. Unknown or empty scenarios
// resolve to the custom template.
func Lookup(s model.Scenario) ScenarioTemplate {
	if t, ok := registry[s]; ok {
		return t.clone()
	}
	return registry[model.ScenarioCustom].clone()
}

// ResolveScenario returns the scenario whose template Lookup will use.
func ResolveScenario(s model.Scenario) model.Scenario {
	if _, ok := registry[s]; ok {
		return s
	}
	return model.ScenarioCustom
}

func risk(desc string, impact, likelihood model.Level, cat model.RiskCategory, score int) model.RiskOpportunity {
	return model.RiskOpportunity{
		Type:        model.RiskTypeRisk,
		Description: desc,
		Impact:      impact,
		Likelihood:  likelihood,
		Category:    cat,
		Score:       score,
	}
}

func opportunity(desc string, impact, likelihood model.Level, cat model.RiskCategory, score int) model.RiskOpportunity {
	o := risk(desc, impact, likelihood, cat, score)
	o.Type = model.RiskTypeOpportunity
	return o
}

const (
	high   = model.LevelHigh
	medium = model.LevelMedium
	low    = model.LevelLow
)

var registry = map[model.Scenario]ScenarioTemplate{
	model.ScenarioPaymentIssues: {
		SignalSummary: "Payment/billing issues on a {accountValue} account need immediate attention to protect the relationship with {contactName} ({contactRole}).",
		Objectives: []string{
			"Resolve the payment/billing concern for {customerName} within 24 hours",
			"Restore {contactName}'s confidence in our billing processes",
			"Prevent escalation to the executive level",
			"Document process improvements to prevent recurrence",
		},
		CommunicationTone: model.ToneEmpathetic,
		DefaultRisks: []model.RiskOpportunity{
			risk("Potential churn if payment issues persist", high, medium, model.CategoryRenewal, 8),
			risk("Damage to trust in billing accuracy", medium, high, model.CategoryRelationship, 6),
		},
		BestPractices: []string{
			"Acknowledge the inconvenience and take ownership",
			"Involve the billing team immediately",
			"Give a specific timeline for resolution",
			"Offer an account credit for significant inconvenience",
		},
	},
	model.ScenarioUsageDecline: {
		SignalSummary: "Usage is declining and {contactName} ({contactRole}) needs proactive support to re-engage users and realise platform value.",
		Objectives: []string{
			"Identify the root cause of the usage decline within 48 hours",
			"Re-engage {customerName} users with targeted training",
			"Restore usage to baseline levels within 30 days",
			"Put monitoring in place to catch future declines early",
			"Strengthen product adoption across the account",
		},
		CommunicationTone: model.ToneConsultative,
		DefaultRisks: []model.RiskOpportunity{
			risk("Renewal at risk due to low product value realisation", high, high, model.CategoryRenewal, 8),
			opportunity("Chance to improve training and drive deeper adoption", medium, high, model.CategoryAdoption, 6),
		},
		BestPractices: []string{
			"Analyse usage data before reaching out",
			"Focus on business value, not feature counts",
			"Provide hands-on training rather than documentation",
			"Identify internal champions to drive adoption",
		},
	},
	model.ScenarioExpansionOpportunity: {
		SignalSummary: "An expansion opportunity is open; {contactName} ({contactRole}) is well positioned to sponsor additional features or seats.",
		Objectives: []string{
			"Quantify the expansion opportunity and build the business case",
			"Schedule an expansion discussion with {customerName} decision makers",
			"Prepare a customised proposal within 2 weeks",
			"Align Sales and Implementation for a smooth rollout",
			"Secure an expansion commitment within 60 days",
		},
		CommunicationTone: model.ToneExecutive,
		DefaultRisks: []model.RiskOpportunity{
			opportunity("Significant revenue expansion potential", high, high, model.CategoryExpansion, 8),
			risk("Competitor may capture the expansion budget", medium, low, model.CategoryExpansion, 4),
		},
		BestPractices: []string{
			"Lead with business outcomes and ROI",
			"Bring case studies from similar customer expansions",
			"Align timing with the customer's budget cycle",
			"Coordinate early with the account executive",
		},
	},
	model.ScenarioTechnicalProblems: {
		SignalSummary: "Technical issues are hurting productivity; {contactName} ({contactRole}) needs expert support and clear, frequent updates.",
		Objectives: []string{
			"Escalate the issue to the highest priority support queue",
			"Provide {customerName} a workaround within 4 hours",
			"Deliver a permanent fix within 48 hours",
			"Run a post-resolution review with {contactName}",
			"Implement preventive measures for similar issues",
		},
		CommunicationTone: model.ToneUrgent,
		DefaultRisks: []model.RiskOpportunity{
			risk("Productivity loss leading to customer frustration", high, high, model.CategoryTechnical, 8),
			risk("Potential escalation to the executive team", medium, medium, model.CategoryRelationship, 5),
		},
		BestPractices: []string{
			"Acknowledge the business impact immediately",
			"Send regular updates even without a resolution",
			"Involve technical experts early",
			"Document the solution for future reference",
		},
	},
	model.ScenarioExecutiveChange: {
		SignalSummary: "An executive change requires rebuilding the relationship and re-aligning strategy while keeping {contactName} ({contactRole}) engaged.",
		Objectives: []string{
			"Research the new executive's background and priorities within 48 hours",
			"Schedule an introduction meeting within 2 weeks",
			"Present a value proposition aligned with {customerName}'s new direction",
			"Maintain continuity of service through the transition",
		},
		CommunicationTone: model.ToneExecutive,
		DefaultRisks: []model.RiskOpportunity{
			risk("New executive may favour a different vendor", high, medium, model.CategoryRelationship, 7),
			opportunity("Fresh perspective could widen the partnership", medium, medium, model.CategoryExpansion, 5),
		},
		BestPractices: []string{
			"Research the new executive before first contact",
			"Lead with outcomes relevant to their role",
			"Bring senior leadership to the first meeting",
			"Update the stakeholder map for the account",
		},
	},
	model.ScenarioRenewalRisk: {
		SignalSummary: "Renewal risk indicators are present; intervention with {contactName} ({contactRole}) is needed to address concerns and secure the renewal.",
		Objectives: []string{
			"Complete an urgent risk assessment within 24 hours",
			"Hold a stakeholder alignment meeting within 1 week",
			"Present a compelling renewal business case to {customerName}",
			"Address every objection transparently",
			"Secure the renewal commitment on appropriate terms",
		},
		CommunicationTone: model.ToneRelationshipBuilding,
		DefaultRisks: []model.RiskOpportunity{
			risk("Customer may not renew the contract", high, high, model.CategoryRenewal, 9),
			opportunity("Addressing concerns can strengthen the long-term relationship", medium, medium, model.CategoryRelationship, 5),
		},
		BestPractices: []string{
			"Be direct about renewal concerns and timeline",
			"Quantify the value delivered to date",
			"Offer renewal incentives or contract changes where justified",
			"Involve the executive sponsor in renewal discussions",
		},
	},
	model.ScenarioOnboardingIssues: {
		SignalSummary: "Onboarding is stalling and {contactName} ({contactRole}) needs extra support to reach first value.",
		Objectives: []string{
			"Identify the specific onboarding blockers within 24 hours",
			"Assign a dedicated implementation specialist to {customerName}",
			"Agree an accelerated onboarding timeline",
			"Deliver first value within 30 days",
		},
		CommunicationTone: model.ToneFriendly,
		DefaultRisks: []model.RiskOpportunity{
			risk("Poor onboarding experience hurts long-term satisfaction", high, medium, model.CategoryAdoption, 7),
			opportunity("A great onboarding turns the customer into an advocate", high, high, model.CategoryRelationship, 7),
		},
		BestPractices: []string{
			"Take personal ownership of the onboarding experience",
			"Provide hands-on implementation support",
			"Set realistic milestone expectations",
			"Celebrate early wins with the customer",
		},
	},
	model.ScenarioCustom: {
		SignalSummary: "A situation needs a tailored response; {contactName} ({contactRole}) is the primary stakeholder.",
		Objectives: []string{
			"Understand the {customerName} situation thoroughly",
			"Develop a response strategy for the specific context",
			"Engage the right internal resources",
			"Monitor progress closely with frequent check-ins",
			"Prevent negative impact on account health",
		},
		CommunicationTone: model.ToneFriendly,
		DefaultRisks: []model.RiskOpportunity{
			risk("Unique situation may need a specialised approach", medium, medium, model.CategoryRelationship, 5),
			opportunity("Chance to demonstrate exceptional customer service", medium, high, model.CategoryRelationship, 6),
		},
		BestPractices: []string{
			"Listen actively to understand the full context",
			"Collaborate with the customer on the solution",
			"Be transparent about capabilities and limitations",
			"Follow up consistently until resolution",
		},
	},
}
