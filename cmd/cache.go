package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/playbook-cli/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the last-playbook cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cached playbooks older than cache.ttl_hours",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(config.ModeGenerate); err != nil {
			return err
		}
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.Prune(ctx, cfg.Cache.TTL())
		if err != nil {
			return err
		}
		commandLogger(cmd).Info("pruned playbook cache", zap.Int("deleted", n))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d stale cache entries\n", n)
		return err
	},
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
