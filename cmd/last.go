package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/playbook-cli/internal/config"
	"github.com/sells-group/playbook-cli/internal/export"
	"github.com/sells-group/playbook-cli/internal/store"
)

var lastFormat string

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the last generated playbook if it is still fresh",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(config.ModeGenerate); err != nil {
			return err
		}
		entry, err := loadLast(cmd.Context())
		if err != nil {
			return err
		}
		return printPlaybook(cmd.OutOrStdout(), entry.Playbook, lastFormat)
	},
}

var copyCmd = &cobra.Command{
	Use:       "copy <section>",
	Short:     "Print one section of the last playbook as plain text",
	Args:      cobra.ExactArgs(1),
	ValidArgs: sectionNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := export.ParseSection(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate(config.ModeGenerate); err != nil {
			return err
		}
		entry, err := loadLast(cmd.Context())
		if err != nil {
			return err
		}
		text, err := export.RenderSection(entry.Playbook, section)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	lastCmd.Flags().StringVar(&lastFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(copyCmd)
}

func sectionNames() []string {
	sections := export.Sections()
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = string(s)
	}
	return names
}

func loadLast(ctx context.Context) (*store.CachedPlaybook, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck

	entry, err := st.LoadLast(ctx, cfg.Cache.TTL())
	if eris.Is(err, store.ErrNoPlaybook) {
		return nil, eris.Wrapf(err, "nothing generated in the last %d hours", cfg.Cache.TTLHours)
	}
	return entry, err
}
