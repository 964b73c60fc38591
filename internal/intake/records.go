// Package intake reads customer contexts from files for single and batch
// playbook generation.
package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/playbook"
)

// Batch column headers.
const (
	ColCustomerName            = "customer_name"
	ColContactName             = "contact_name"
	ColContactRole             = "contact_role"
	ColAccountValue            = "account_value"
	ColCurrentHealth           = "current_health"
	ColScenario                = "scenario"
	ColCustomSignal            = "custom_signal"
	ColProductUsage            = "product_usage"
	ColRelationshipHistory     = "relationship_history"
	ColLoginRate               = "login_rate"
	ColActiveUsers             = "active_users"
	ColSubscriptionUtilization = "subscription_utilization"
	ColLicensesPurchased       = "licenses_purchased"
	ColAssignedUsers           = "assigned_users"
	ColRenewalTimeline         = "renewal_timeline"
	ColPrimaryContact          = "primary_contact"
	ColStakeholderRole         = "stakeholder_role"
	ColDecisionMakers          = "decision_makers"
	ColChampions               = "champions"
	ColInfluencers             = "influencers"
)

// RequiredColumns must appear in the header row of a batch file.
var RequiredColumns = []string{
	ColCustomerName,
	ColContactName,
	ColContactRole,
	ColCurrentHealth,
	ColScenario,
}

var metricColumns = []string{
	ColLoginRate, ColActiveUsers, ColSubscriptionUtilization,
	ColLicensesPurchased, ColAssignedUsers, ColRenewalTimeline,
}

var stakeholderColumns = []string{
	ColPrimaryContact, ColStakeholderRole, ColDecisionMakers, ColChampions, ColInfluencers,
}

// Entry is one accepted batch row.
type Entry struct {
	Row     int // 1-based line number, header is row 1
	Context model.CustomerContext
}

// RowError reports a rejected batch row.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ParseRecords maps a header row plus data rows to customer contexts. Rows
// that fail to parse or validate are returned as RowErrors and skipped; only
// a malformed header fails the whole batch. Blank rows are ignored.
func ParseRecords(records [][]string) ([]Entry, []RowError, error) {
	if len(records) == 0 {
		return nil, nil, eris.New("intake: file is empty")
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, eris.Errorf("intake: missing required column %q", col)
		}
	}

	var (
		entries []Entry
		rowErrs []RowError
	)
	for i, row := range records[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}
		cc, err := parseRow(row, colIdx)
		if err == nil {
			err = playbook.Validate(cc)
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: line, Err: err})
			continue
		}
		entries = append(entries, Entry{Row: line, Context: cc})
	}
	return entries, rowErrs, nil
}

func parseRow(row []string, colIdx map[string]int) (model.CustomerContext, error) {
	get := func(col string) string { return getCol(row, colIdx, col) }

	cc := model.CustomerContext{
		CustomerName:        get(ColCustomerName),
		ContactName:         get(ColContactName),
		ContactRole:         get(ColContactRole),
		AccountValue:        get(ColAccountValue),
		CurrentHealth:       model.Health(strings.ToLower(get(ColCurrentHealth))),
		Scenario:            model.Scenario(strings.ToLower(get(ColScenario))),
		CustomSignal:        get(ColCustomSignal),
		ProductUsage:        get(ColProductUsage),
		RelationshipHistory: get(ColRelationshipHistory),
	}

	if anyPresent(row, colIdx, metricColumns) {
		m, err := parseMetrics(get)
		if err != nil {
			return cc, err
		}
		cc.Metrics = m
	}
	if anyPresent(row, colIdx, stakeholderColumns) {
		cc.Stakeholders = &model.Stakeholders{
			PrimaryContact: get(ColPrimaryContact),
			Role:           get(ColStakeholderRole),
			DecisionMakers: splitList(get(ColDecisionMakers)),
			Champions:      splitList(get(ColChampions)),
			Influencers:    splitList(get(ColInfluencers)),
		}
	}
	return cc, nil
}

func parseMetrics(get func(string) string) (*model.Metrics, error) {
	m := &model.Metrics{RenewalTimeline: model.RenewalTimeline(strings.ToLower(get(ColRenewalTimeline)))}

	var err error
	if m.LoginRate, err = parseFloat(get(ColLoginRate), ColLoginRate); err != nil {
		return nil, err
	}
	if m.SubscriptionUtilization, err = parseFloat(get(ColSubscriptionUtilization), ColSubscriptionUtilization); err != nil {
		return nil, err
	}
	if m.ActiveUsers, err = parseInt(get(ColActiveUsers), ColActiveUsers); err != nil {
		return nil, err
	}
	if m.LicensesPurchased, err = parseInt(get(ColLicensesPurchased), ColLicensesPurchased); err != nil {
		return nil, err
	}
	if m.AssignedUsers, err = parseInt(get(ColAssignedUsers), ColAssignedUsers); err != nil {
		return nil, err
	}
	m.ApplyDefaults()
	return m, nil
}

// parseFloat accepts an optional trailing percent sign. Empty means zero.
func parseFloat(s, col string) (float64, error) {
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "intake: parse %s", col)
	}
	return v, nil
}

func parseInt(s, col string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, eris.Wrapf(err, "intake: parse %s", col)
	}
	return v, nil
}

// splitList splits a semicolon-separated cell, dropping empty names.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func anyPresent(row []string, colIdx map[string]int, cols []string) bool {
	for _, col := range cols {
		if getCol(row, colIdx, col) != "" {
			return true
		}
	}
	return false
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// getCol safely retrieves a trimmed column value from a row.
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
