package model

// CustomerContext is the form input describing a customer situation.
type CustomerContext struct {
	CustomerName        string        `json:"customerName" yaml:"customerName"`
	ContactName         string        `json:"contactName" yaml:"contactName"`
	ContactRole         string        `json:"contactRole" yaml:"contactRole"`
	AccountValue        string        `json:"accountValue" yaml:"accountValue"` // free text, e.g. "$50,000"
	CurrentHealth       Health        `json:"currentHealth" yaml:"currentHealth"`
	Scenario            Scenario      `json:"scenario" yaml:"scenario"`
	CustomSignal        string        `json:"customSignal,omitempty" yaml:"customSignal,omitempty"`
	ProductUsage        string        `json:"productUsage,omitempty" yaml:"productUsage,omitempty"`
	RelationshipHistory string        `json:"relationshipHistory,omitempty" yaml:"relationshipHistory,omitempty"`
	Metrics             *Metrics      `json:"metrics,omitempty" yaml:"metrics,omitempty"`           // nil when not collected
	Stakeholders        *Stakeholders `json:"stakeholders,omitempty" yaml:"stakeholders,omitempty"` // nil when not collected
}

// Metrics holds optional usage and licensing figures for the account.
type Metrics struct {
	LoginRate               float64         `json:"loginRate" yaml:"loginRate"` // 0-100
	ActiveUsers             int             `json:"activeUsers" yaml:"activeUsers"`
	SubscriptionUtilization float64         `json:"subscriptionUtilization" yaml:"subscriptionUtilization"` // 0-100
	LicensesPurchased       int             `json:"licensesPurchased" yaml:"licensesPurchased"`
	AssignedUsers           int             `json:"assignedUsers" yaml:"assignedUsers"`
	RenewalTimeline         RenewalTimeline `json:"renewalTimeline" yaml:"renewalTimeline"`
}

// DefaultRenewalTimeline is assumed when metrics carry no renewal timeline.
const DefaultRenewalTimeline = RenewalMidTerm

// ApplyDefaults fills fields the form leaves blank.
func (m *Metrics) ApplyDefaults() {
	if m.RenewalTimeline == "" {
		m.RenewalTimeline = DefaultRenewalTimeline
	}
}

// ApplyDefaults fills blank optional fields of the attached metrics.
func (cc *CustomerContext) ApplyDefaults() {
	if cc.Metrics != nil {
		cc.Metrics.ApplyDefaults()
	}
}

// UnusedLicenses returns purchased seats that are not assigned, never negative.
func (m Metrics) UnusedLicenses() int {
	if m.LicensesPurchased > m.AssignedUsers {
		return m.LicensesPurchased - m.AssignedUsers
	}
	return 0
}

// Stakeholders maps the people involved on the customer side.
type Stakeholders struct {
	PrimaryContact string   `json:"primaryContact" yaml:"primaryContact"`
	Role           string   `json:"role" yaml:"role"`
	DecisionMakers []string `json:"decisionMakers,omitempty" yaml:"decisionMakers,omitempty"`
	Champions      []string `json:"champions,omitempty" yaml:"champions,omitempty"`
	Influencers    []string `json:"influencers,omitempty" yaml:"influencers,omitempty"`
}
