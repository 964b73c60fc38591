package playbook

import "github.com/sells-group/playbook-cli/internal/model"

const (
	baseConfidence       = 7
	richHistoryMinLength = 50
)

// scoreConfidence rates how much context backed the playbook. The scenario
// argument is the resolved one, so an unrecognised key earns no bonus.
func scoreConfidence(cc model.CustomerContext, resolved model.Scenario) int {
	score := baseConfidence
	if cc.Metrics != nil {
		score++
	}
	if cc.Stakeholders != nil {
		score++
	}
	if len(cc.RelationshipHistory) > richHistoryMinLength {
		score++
	}
	if resolved != model.ScenarioCustom {
		score++
	}
	return clampScore(score)
}
