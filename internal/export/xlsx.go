package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/playbook-cli/internal/model"
)

// Sheet names written by WriteWorkbook.
const (
	SheetPlaybooks = "Playbooks"
	SheetActions   = "Actions"
)

// PlaybookColumns is the header row of the Playbooks sheet.
var PlaybookColumns = []string{
	"Customer",
	"Scenario",
	"Confidence",
	"Overall Risk",
	"User Adoption Risk",
	"Product Adoption Risk",
	"Renewal Risk",
	"High Priority Actions",
	"Risks",
	"Opportunities",
	"Escalation Triggers",
	"Generated At",
}

// ActionColumns is the header row of the Actions sheet.
var ActionColumns = []string{"Customer", "Priority", "Action", "Timeline", "Owner"}

// WriteWorkbook writes a two-sheet summary of the playbooks to w.
func WriteWorkbook(w io.Writer, playbooks []model.CSPlaybook) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SheetPlaybooks)
	if err != nil {
		return eris.Wrap(err, "export: add playbooks sheet")
	}
	actions, err := f.AddSheet(SheetActions)
	if err != nil {
		return eris.Wrap(err, "export: add actions sheet")
	}

	addRow(summary, PlaybookColumns)
	addRow(actions, ActionColumns)

	for _, pb := range playbooks {
		ra := pb.RiskAssessment
		addRow(summary, []string{
			pb.CustomerName,
			pb.ScenarioType.Label(),
			strconv.Itoa(pb.Confidence),
			strconv.Itoa(ra.OverallRiskScore),
			strconv.Itoa(ra.UserAdoptionRisk),
			strconv.Itoa(ra.ProductAdoptionRisk),
			strconv.Itoa(ra.RenewalRisk),
			strconv.Itoa(pb.HighPriorityActions()),
			strconv.Itoa(pb.CountByType(model.RiskTypeRisk)),
			strconv.Itoa(pb.CountByType(model.RiskTypeOpportunity)),
			strings.Join(pb.EscalationTriggers, "; "),
			pb.GeneratedAt.UTC().Format(time.RFC3339),
		})
		for _, a := range pb.ActionPlan {
			addRow(actions, []string{
				pb.CustomerName,
				strings.ToUpper(string(a.Priority)),
				a.Action,
				a.Timeline,
				a.Owner,
			})
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
