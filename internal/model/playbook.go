package model

import "time"

// ActionItem is one step of a playbook's action plan.
type ActionItem struct {
	Action   string   `json:"action"`
	Timeline string   `json:"timeline"`
	Owner    string   `json:"owner"`
	Priority Priority `json:"priority"`
}

// RiskOpportunity is a scored risk or opportunity attached to a playbook.
type RiskOpportunity struct {
	Type        RiskType     `json:"type"`
	Description string       `json:"description"`
	Impact      Level        `json:"impact"`
	Likelihood  Level        `json:"likelihood"`
	Category    RiskCategory `json:"category"`
	Score       int          `json:"score"` // 1-10
}

// RiskAssessment holds the heuristic risk sub-scores, each in [1,10].
type RiskAssessment struct {
	UserAdoptionRisk    int      `json:"userAdoptionRisk"`
	ProductAdoptionRisk int      `json:"productAdoptionRisk"`
	RenewalRisk         int      `json:"renewalRisk"`
	OverallRiskScore    int      `json:"overallRiskScore"`
	RiskIndicators      []string `json:"riskIndicators"`
}

// EmailTemplate is the suggested outreach email.
type EmailTemplate struct {
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	Tone            Tone   `json:"tone"`
	FollowUpSubject string `json:"followUpSubject,omitempty"`
	FollowUpBody    string `json:"followUpBody,omitempty"`
}

// AccountSnapshot summarises the account metrics. Present only when the
// context carried metrics.
type AccountSnapshot struct {
	Metrics          Metrics  `json:"metrics"`
	HealthIndicators []string `json:"healthIndicators"`
	KeyInsights      []string `json:"keyInsights"`
}

// CSPlaybook is the generated Customer Success playbook.
type CSPlaybook struct {
	SignalSummary         string            `json:"signalSummary"`
	Objectives            []string          `json:"objectives"`
	ActionPlan            []ActionItem      `json:"actionPlan"`
	CommunicationTemplate EmailTemplate     `json:"communicationTemplate"`
	RisksOpportunities    []RiskOpportunity `json:"risksOpportunities"`
	BestPractices         []string          `json:"bestPractices"`
	RiskAssessment        RiskAssessment    `json:"riskAssessment"`
	AccountSnapshot       *AccountSnapshot  `json:"accountSnapshot,omitempty"`
	EscalationTriggers    []string          `json:"escalationTriggers,omitempty"`
	NextStepsForCSP       []string          `json:"nextStepsForCSP,omitempty"`
	NextStepsForAM        []string          `json:"nextStepsForAM,omitempty"`
	GeneratedAt           time.Time         `json:"generatedAt"`
	ScenarioType          Scenario          `json:"scenarioType"`
	CustomerName          string            `json:"customerName"`
	Confidence            int               `json:"confidence"` // 1-10
}

// HighPriorityActions counts action items with high priority.
func (p CSPlaybook) HighPriorityActions() int {
	n := 0
	for _, a := range p.ActionPlan {
		if a.Priority == PriorityHigh {
			n++
		}
	}
	return n
}

// CountByType counts risks or opportunities in the playbook.
func (p CSPlaybook) CountByType(t RiskType) int {
	n := 0
	for _, r := range p.RisksOpportunities {
		if r.Type == t {
			n++
		}
	}
	return n
}
