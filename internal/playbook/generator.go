package playbook

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/playbook-cli/internal/model"
)

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.nowFunc = now
		}
	}
}

// Generator builds playbooks. The zero value is not usable; call New.
type Generator struct {
	nowFunc func() time.Time
}

// New creates a Generator with the wall clock in UTC.
func New(opts ...Option) *Generator {
	g := &Generator{nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate builds a playbook for any well-typed context. It never fails:
// unknown scenarios use the custom template, unparseable account values count
// as zero and missing metrics or stakeholders fall back to neutral defaults.
func (g *Generator) Generate(cc model.CustomerContext) model.CSPlaybook {
	resolved := ResolveScenario(cc.Scenario)
	tmpl := Lookup(resolved)
	in := newInterpolator(cc)

	ra := assessRisk(cc)
	csp, am := buildNextSteps(resolved, in)

	pb := model.CSPlaybook{
		SignalSummary:         buildSignalSummary(cc, tmpl, in),
		Objectives:            in.applyAll(tmpl.Objectives),
		ActionPlan:            buildActionPlan(cc, in),
		CommunicationTemplate: buildCommunication(cc, tmpl.CommunicationTone),
		RisksOpportunities:    buildRisks(cc, tmpl),
		BestPractices:         in.applyAll(tmpl.BestPractices),
		RiskAssessment:        ra,
		AccountSnapshot:       buildSnapshot(cc.Metrics),
		EscalationTriggers:    buildEscalationTriggers(cc, resolved, ra),
		NextStepsForCSP:       csp,
		NextStepsForAM:        am,
		GeneratedAt:           g.nowFunc(),
		ScenarioType:          resolved,
		CustomerName:          cc.CustomerName,
		Confidence:            scoreConfidence(cc, resolved),
	}

	zap.L().Debug("playbook: generated",
		zap.String("customer", cc.CustomerName),
		zap.String("scenario", string(resolved)),
		zap.Int("actions", len(pb.ActionPlan)),
		zap.Int("overall_risk", ra.OverallRiskScore),
		zap.Int("confidence", pb.Confidence),
	)
	return pb
}

// GenerateStrict validates the context before generating.
func (g *Generator) GenerateStrict(cc model.CustomerContext) (model.CSPlaybook, error) {
	if err := Validate(cc); err != nil {
		return model.CSPlaybook{}, err
	}
	return g.Generate(cc), nil
}

var defaultGenerator = New()

// Generate builds a playbook using the wall clock.
func Generate(cc model.CustomerContext) model.CSPlaybook {
	return defaultGenerator.Generate(cc)
}

// GenerateStrict validates and generates using the wall clock.
func GenerateStrict(cc model.CustomerContext) (model.CSPlaybook, error) {
	return defaultGenerator.GenerateStrict(cc)
}
