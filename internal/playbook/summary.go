package playbook

import (
	"strings"

	"github.com/sells-group/playbook-cli/internal/model"
)

// buildSignalSummary prefixes the template summary with the customer name and,
// when present, the CSM's own description of the signal.
func buildSignalSummary(cc model.CustomerContext, tmpl ScenarioTemplate, in interpolator) string {
	base := in.apply(tmpl.SignalSummary)

	signal := strings.TrimRight(strings.TrimSpace(cc.CustomSignal), ". ")
	if signal == "" {
		return cc.CustomerName + ": " + base
	}
	return cc.CustomerName + ": " + signal + ". " + base
}
