package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/playbook"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the supported scenarios with their labels and email tone",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return formatScenarios(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func formatScenarios(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tLABEL\tTONE")
	for _, s := range model.AllScenarios() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s, s.Label(), playbook.Lookup(s).CommunicationTone)
	}
	return w.Flush()
}
