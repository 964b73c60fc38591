package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/playbook-cli/internal/config"
	"github.com/sells-group/playbook-cli/internal/export"
	"github.com/sells-group/playbook-cli/internal/intake"
	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/playbook"
)

var (
	generateInput   string
	generateFormat  string
	generateNoCache bool

	ctxFlags contextFlags
)

// contextFlags mirrors the popup form fields.
type contextFlags struct {
	customer, contact, role, value, health, scenario string
	signal, usage, history                           string

	loginRate, utilization          float64
	activeUsers, licenses, assigned int
	renewal                         string

	primaryContact, stakeholderRole string

	decisionMakers, champions, influencers []string
}

var metricFlagNames = []string{"login-rate", "active-users", "utilization", "licenses", "assigned", "renewal"}

var stakeholderFlagNames = []string{"primary-contact", "stakeholder-role", "decision-makers", "champions", "influencers"}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a playbook for one customer situation",
	Example: `  playbook-cli generate --customer Acme --contact Jane --role "VP Ops" \
    --value '$120,000' --health critical --scenario renewal_risk \
    --signal "threatening to leave"

  playbook-cli generate --input acme.yaml --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(config.ModeGenerate); err != nil {
			return err
		}
		log := commandLogger(cmd)

		cc, err := contextFromCommand(cmd.Flags())
		if err != nil {
			return err
		}

		pb, err := playbook.GenerateStrict(cc)
		if err != nil {
			return err
		}

		if !generateNoCache {
			if err := cachePlaybook(cmd, pb); err != nil {
				log.Warn("could not cache playbook", zap.Error(err))
			}
		}

		return printPlaybook(cmd.OutOrStdout(), pb, generateFormat)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateInput, "input", "", "YAML or JSON file holding the customer context")
	f.StringVar(&generateFormat, "format", "text", "output format: text or json")
	f.BoolVar(&generateNoCache, "no-cache", false, "do not store the result as the last playbook")

	f.StringVar(&ctxFlags.customer, "customer", "", "customer name")
	f.StringVar(&ctxFlags.contact, "contact", "", "contact name")
	f.StringVar(&ctxFlags.role, "role", "", "contact role")
	f.StringVar(&ctxFlags.value, "value", "", "account value, e.g. $50,000")
	f.StringVar(&ctxFlags.health, "health", "", "current health: healthy, at-risk or critical")
	f.StringVar(&ctxFlags.scenario, "scenario", "", "scenario key (see the scenarios command)")
	f.StringVar(&ctxFlags.signal, "signal", "", "free-text description of the signal")
	f.StringVar(&ctxFlags.usage, "usage", "", "product usage notes")
	f.StringVar(&ctxFlags.history, "history", "", "relationship history notes")

	f.Float64Var(&ctxFlags.loginRate, "login-rate", 0, "login rate percentage (0-100)")
	f.IntVar(&ctxFlags.activeUsers, "active-users", 0, "active users")
	f.Float64Var(&ctxFlags.utilization, "utilization", 0, "subscription utilization percentage (0-100)")
	f.IntVar(&ctxFlags.licenses, "licenses", 0, "licenses purchased")
	f.IntVar(&ctxFlags.assigned, "assigned", 0, "assigned users")
	f.StringVar(&ctxFlags.renewal, "renewal", "", "renewal timeline: near-term, mid-term or far-term")

	f.StringVar(&ctxFlags.primaryContact, "primary-contact", "", "primary stakeholder")
	f.StringVar(&ctxFlags.stakeholderRole, "stakeholder-role", "", "primary stakeholder role")
	f.StringSliceVar(&ctxFlags.decisionMakers, "decision-makers", nil, "decision makers (comma separated)")
	f.StringSliceVar(&ctxFlags.champions, "champions", nil, "champions (comma separated)")
	f.StringSliceVar(&ctxFlags.influencers, "influencers", nil, "influencers (comma separated)")

	rootCmd.AddCommand(generateCmd)
}

// contextFromCommand builds the context from --input or from the form flags.
// Metrics and stakeholders are only attached when one of their flags was set.
func contextFromCommand(fs *pflag.FlagSet) (model.CustomerContext, error) {
	if generateInput != "" {
		return intake.ReadContextFile(generateInput)
	}

	cc := model.CustomerContext{
		CustomerName:        ctxFlags.customer,
		ContactName:         ctxFlags.contact,
		ContactRole:         ctxFlags.role,
		AccountValue:        ctxFlags.value,
		CurrentHealth:       model.Health(strings.ToLower(ctxFlags.health)),
		Scenario:            model.Scenario(strings.ToLower(ctxFlags.scenario)),
		CustomSignal:        ctxFlags.signal,
		ProductUsage:        ctxFlags.usage,
		RelationshipHistory: ctxFlags.history,
	}
	if anyChanged(fs, metricFlagNames) {
		cc.Metrics = &model.Metrics{
			LoginRate:               ctxFlags.loginRate,
			ActiveUsers:             ctxFlags.activeUsers,
			SubscriptionUtilization: ctxFlags.utilization,
			LicensesPurchased:       ctxFlags.licenses,
			AssignedUsers:           ctxFlags.assigned,
			RenewalTimeline:         model.RenewalTimeline(strings.ToLower(ctxFlags.renewal)),
		}
		cc.Metrics.ApplyDefaults()
	}
	if anyChanged(fs, stakeholderFlagNames) {
		cc.Stakeholders = &model.Stakeholders{
			PrimaryContact: ctxFlags.primaryContact,
			Role:           ctxFlags.stakeholderRole,
			DecisionMakers: ctxFlags.decisionMakers,
			Champions:      ctxFlags.champions,
			Influencers:    ctxFlags.influencers,
		}
	}
	return cc, nil
}

func anyChanged(fs *pflag.FlagSet, names []string) bool {
	for _, n := range names {
		if fs.Changed(n) {
			return true
		}
	}
	return false
}

func cachePlaybook(cmd *cobra.Command, pb model.CSPlaybook) error {
	st, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	entry, err := st.SaveLast(cmd.Context(), pb)
	if err != nil {
		return err
	}
	commandLogger(cmd).Debug("cached playbook", zap.String("id", entry.ID))
	return nil
}

// printPlaybook writes the full text rendering or indented JSON.
func printPlaybook(w io.Writer, pb model.CSPlaybook, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(pb), "encode playbook")
	case "text", "":
		_, err := fmt.Fprintln(w, export.RenderAll(pb))
		return err
	default:
		return eris.Errorf("unknown format %q (want text or json)", format)
	}
}
