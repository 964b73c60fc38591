// Package export renders playbooks for copy-paste and spreadsheets.
package export

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/playbook-cli/internal/model"
)

// Section names a copyable part of a playbook.
type Section string

const (
	SectionSummary    Section = "summary"
	SectionObjectives Section = "objectives"
	SectionActions    Section = "actions"
	SectionEmail      Section = "email"
	SectionRisks      Section = "risks"
	SectionPractices  Section = "practices"
	SectionAssessment Section = "assessment"
	SectionNextSteps  Section = "next-steps"
)

// ErrUnknownSection is returned for a section name RenderSection does not know.
var ErrUnknownSection = eris.New("export: unknown section")

const bullet = "• "

var renderers = map[Section]func(model.CSPlaybook) string{
	SectionSummary:    renderSummary,
	SectionObjectives: renderObjectives,
	SectionActions:    renderActions,
	SectionEmail:      renderEmail,
	SectionRisks:      renderRisks,
	SectionPractices:  renderPractices,
	SectionAssessment: renderAssessment,
	SectionNextSteps:  renderNextSteps,
}

// Sections returns every section in display order.
func Sections() []Section {
	return []Section{
		SectionSummary,
		SectionObjectives,
		SectionActions,
		SectionEmail,
		SectionRisks,
		SectionPractices,
		SectionAssessment,
		SectionNextSteps,
	}
}

// ParseSection maps a user-supplied name to a Section.
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := renderers[s]; !ok {
		return "", eris.Wrapf(ErrUnknownSection, "section %q", name)
	}
	return s, nil
}

// RenderSection formats one section as plain text.
func RenderSection(pb model.CSPlaybook, s Section) (string, error) {
	render, ok := renderers[s]
	if !ok {
		return "", eris.Wrapf(ErrUnknownSection, "section %q", s)
	}
	return render(pb), nil
}

// RenderAll formats every non-empty section separated by blank lines.
func RenderAll(pb model.CSPlaybook) string {
	parts := make([]string, 0, len(renderers))
	for _, s := range Sections() {
		if text := renderers[s](pb); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderSummary(pb model.CSPlaybook) string {
	return pb.SignalSummary
}

func bulletList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(title)
	for _, it := range items {
		b.WriteString("\n" + bullet + it)
	}
	return b.String()
}

func renderObjectives(pb model.CSPlaybook) string {
	return bulletList("Objectives:", pb.Objectives)
}

func renderPractices(pb model.CSPlaybook) string {
	return bulletList("Best Practices:", pb.BestPractices)
}

// lineBreaks flattens embedded line breaks so an action stays on one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatAction renders one action plan line.
func FormatAction(a model.ActionItem) string {
	return fmt.Sprintf("%s: %s (%s, %s)",
		strings.ToUpper(string(a.Priority)),
		lineBreaks.Replace(a.Action),
		lineBreaks.Replace(a.Timeline),
		lineBreaks.Replace(a.Owner),
	)
}

func renderActions(pb model.CSPlaybook) string {
	if len(pb.ActionPlan) == 0 {
		return ""
	}
	lines := make([]string, 0, len(pb.ActionPlan)+1)
	lines = append(lines, "Action Plan:")
	for _, a := range pb.ActionPlan {
		lines = append(lines, FormatAction(a))
	}
	return strings.Join(lines, "\n")
}

var actionLineRE = regexp.MustCompile(`^(HIGH|MEDIUM|LOW): (.*) \(([^()]*), ([^()]*)\)$`)

// ParseActionLines reads action lines produced by the actions section back
// into items. Lines that do not match the action format are ignored.
func ParseActionLines(text string) []model.ActionItem {
	var out []model.ActionItem
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		m := actionLineRE.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		out = append(out, model.ActionItem{
			Priority: model.Priority(strings.ToLower(m[1])),
			Action:   m[2],
			Timeline: m[3],
			Owner:    m[4],
		})
	}
	return out
}

func renderEmail(pb model.CSPlaybook) string {
	ct := pb.CommunicationTemplate
	if ct.Subject == "" && ct.Body == "" {
		return ""
	}
	text := "Subject: " + ct.Subject + "\n\n" + ct.Body
	if ct.FollowUpSubject != "" || ct.FollowUpBody != "" {
		text += "\n\n---\n\nSubject: " + ct.FollowUpSubject + "\n\n" + ct.FollowUpBody
	}
	return text
}

// FormatRisk renders one risk or opportunity line.
func FormatRisk(r model.RiskOpportunity) string {
	return fmt.Sprintf("%s: %s (Impact: %s, Likelihood: %s, Score: %d/10)",
		strings.ToUpper(string(r.Type)), r.Description, r.Impact, r.Likelihood, r.Score)
}

func renderRisks(pb model.CSPlaybook) string {
	lines := make([]string, 0, len(pb.RisksOpportunities))
	for _, r := range pb.RisksOpportunities {
		lines = append(lines, FormatRisk(r))
	}
	return strings.Join(lines, "\n")
}

func renderAssessment(pb model.CSPlaybook) string {
	ra := pb.RiskAssessment
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Assessment:\n")
	fmt.Fprintf(&b, "User Adoption Risk: %d/10\n", ra.UserAdoptionRisk)
	fmt.Fprintf(&b, "Product Adoption Risk: %d/10\n", ra.ProductAdoptionRisk)
	fmt.Fprintf(&b, "Renewal Risk: %d/10\n", ra.RenewalRisk)
	fmt.Fprintf(&b, "Overall Risk Score: %d/10\n", ra.OverallRiskScore)
	fmt.Fprintf(&b, "Confidence: %d/10", pb.Confidence)

	if list := bulletList("Risk Indicators:", ra.RiskIndicators); list != "" {
		b.WriteString("\n" + list)
	}
	if snap := pb.AccountSnapshot; snap != nil {
		if list := bulletList("Health Indicators:", snap.HealthIndicators); list != "" {
			b.WriteString("\n" + list)
		}
		if list := bulletList("Key Insights:", snap.KeyInsights); list != "" {
			b.WriteString("\n" + list)
		}
	}
	if list := bulletList("Escalation Triggers:", pb.EscalationTriggers); list != "" {
		b.WriteString("\n" + list)
	}
	return b.String()
}

func renderNextSteps(pb model.CSPlaybook) string {
	parts := make([]string, 0, 2)
	if list := bulletList("Next Steps (CSM):", pb.NextStepsForCSP); list != "" {
		parts = append(parts, list)
	}
	if list := bulletList("Next Steps (Account Manager):", pb.NextStepsForAM); list != "" {
		parts = append(parts, list)
	}
	return strings.Join(parts, "\n\n")
}
