package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/playbook-cli/internal/config"
	"github.com/sells-group/playbook-cli/internal/export"
	"github.com/sells-group/playbook-cli/internal/intake"
	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/playbook"
)

var (
	batchInput  string
	batchOutput string
	batchLimit  int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate playbooks for every row of a CSV or XLSX file",
	Long: `Reads customer contexts from a CSV or XLSX file with a header row and
generates one playbook per valid row. Invalid rows are reported and skipped.

Results are written as JSON lines, or as a workbook when --output ends in .xlsx.`,
	Example: `  playbook-cli batch --input accounts.csv
  playbook-cli batch --input accounts.xlsx --output playbooks.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(config.ModeBatch); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := commandLogger(cmd).With(zap.String("run_id", uuid.New().String()))

		entries, rowErrs, err := intake.ReadBatchFile(batchInput)
		if err != nil {
			return eris.Wrap(err, "batch: read input")
		}
		for _, re := range rowErrs {
			log.Warn("skipping invalid row", zap.Int("row", re.Row), zap.Error(re.Err))
		}

		if batchLimit > 0 && len(entries) > batchLimit {
			entries = entries[:batchLimit]
		}

		gen := playbook.New()
		results, err := processBatch(ctx, log, entries, cfg.Batch.MaxConcurrent, func(_ context.Context, cc model.CustomerContext) (model.CSPlaybook, error) {
			return gen.GenerateStrict(cc)
		})
		if err != nil {
			return err
		}

		if err := writeBatchOutput(cmd.OutOrStdout(), batchOutput, results); err != nil {
			return err
		}
		if len(rowErrs) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d rows skipped:\n", len(rowErrs))
			for _, re := range rowErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", re.Error())
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "CSV or XLSX file of customer contexts")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output file (.xlsx for a workbook, otherwise JSON lines); stdout when empty")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of rows to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// generateFunc is the callback signature for producing one playbook.
type generateFunc func(ctx context.Context, cc model.CustomerContext) (model.CSPlaybook, error)

// batchResult pairs a generated playbook with its source row.
type batchResult struct {
	Row      int              `json:"row"`
	Playbook model.CSPlaybook `json:"playbook"`
}

// processBatch runs gen for every entry with bounded concurrency. Results keep
// input order; failed entries are logged and left out.
func processBatch(ctx context.Context, log *zap.Logger, entries []intake.Entry, concurrency int, gen generateFunc) ([]batchResult, error) {
	if len(entries) == 0 {
		log.Info("no valid rows to process")
		return nil, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	log.Info("processing batch",
		zap.Int("rows", len(entries)),
		zap.Int("concurrency", concurrency),
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	slots := make([]*batchResult, len(entries))
	var succeeded, failed atomic.Int64

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pb, err := gen(gctx, entry.Context)
			if err != nil {
				failed.Add(1)
				log.Error("playbook generation failed",
					zap.Int("row", entry.Row),
					zap.String("customer", entry.Context.CustomerName),
					zap.Error(err),
				)
				return nil // don't abort batch on individual failure
			}
			succeeded.Add(1)
			slots[i] = &batchResult{Row: entry.Row, Playbook: pb}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch: interrupted")
	}

	results := make([]batchResult, 0, len(entries))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	log.Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// writeBatchOutput writes results to path, or JSON lines to stdout when path
// is empty.
func writeBatchOutput(stdout io.Writer, path string, results []batchResult) (err error) {
	if path == "" {
		return writeJSONLines(stdout, results)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "batch: create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = eris.Wrap(cerr, "batch: close output")
		}
	}()

	return writeBatchFile(f, path, results)
}

func writeBatchFile(w io.Writer, path string, results []batchResult) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		pbs := make([]model.CSPlaybook, len(results))
		for i, r := range results {
			pbs[i] = r.Playbook
		}
		return export.WriteWorkbook(w, pbs)
	}
	return writeJSONLines(w, results)
}

func writeJSONLines(w io.Writer, results []batchResult) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "batch: encode result")
		}
	}
	return nil
}
