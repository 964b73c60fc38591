package playbook

import (
	"strings"
	"unicode"

	"github.com/rotisserie/eris"

	"github.com/sells-group/playbook-cli/internal/model"
)

// ErrInvalidInput is returned by Validate and GenerateStrict for contexts
// that violate the input contract.
var ErrInvalidInput = eris.New("playbook: invalid input")

// Validate checks the fields the form layer is expected to enforce. Unknown
// scenario keys are accepted since they resolve to the custom template.
func Validate(cc model.CustomerContext) error {
	var problems []string
	if strings.TrimSpace(cc.CustomerName) == "" {
		problems = append(problems, "customerName is required")
	}
	if strings.TrimSpace(cc.ContactName) == "" {
		problems = append(problems, "contactName is required")
	}
	if strings.TrimSpace(cc.ContactRole) == "" {
		problems = append(problems, "contactRole is required")
	}
	for _, f := range []struct{ name, value string }{
		{"customerName", cc.CustomerName},
		{"contactName", cc.ContactName},
		{"contactRole", cc.ContactRole},
	} {
		if strings.IndexFunc(f.value, unicode.IsControl) >= 0 {
			problems = append(problems, f.name+" must not contain line breaks or control characters")
		}
	}
	if !cc.CurrentHealth.Valid() {
		problems = append(problems, "currentHealth must be one of healthy, at-risk, critical")
	}
	if cc.Scenario == model.ScenarioCustom && strings.TrimSpace(cc.CustomSignal) == "" {
		problems = append(problems, "customSignal is required for the custom scenario")
	}
	if m := cc.Metrics; m != nil {
		problems = append(problems, validateMetrics(*m)...)
	}

	if len(problems) > 0 {
		return eris.Wrap(ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

func validateMetrics(m model.Metrics) []string {
	var problems []string
	if m.LoginRate < 0 || m.LoginRate > 100 {
		problems = append(problems, "metrics.loginRate must be between 0 and 100")
	}
	if m.SubscriptionUtilization < 0 || m.SubscriptionUtilization > 100 {
		problems = append(problems, "metrics.subscriptionUtilization must be between 0 and 100")
	}
	if m.ActiveUsers < 0 || m.LicensesPurchased < 0 || m.AssignedUsers < 0 {
		problems = append(problems, "metrics counts must not be negative")
	}
	// Zero purchased licenses means the count was not recorded.
	if m.LicensesPurchased > 0 && m.AssignedUsers > m.LicensesPurchased {
		problems = append(problems, "metrics.assignedUsers exceeds metrics.licensesPurchased")
	}
	if !m.RenewalTimeline.Valid() {
		problems = append(problems, "metrics.renewalTimeline must be one of near-term, mid-term, far-term")
	}
	return problems
}
