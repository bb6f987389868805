package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shpitdev/air-assist/internal/batch"
)

var (
	batchOutput   string
	batchFormat   string
	batchWorkers  int
	batchRate     float64
	batchFailFast bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input>",
	Short: "Run many questionnaires and write JSON lines",
	Long: `Reads questionnaires from a CSV file (header columns are answer keys) or a
JSONL file (one answer object per line) and writes one JSON line per
questionnaire, in input order.

By default failures are recorded on their line and the run continues; with
--fail-fast the first failure aborts the run and nothing is written.`,
	Example: `  airassist batch trips.csv -o results.jsonl --workers 4 --rate-limit-rps 2`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchOutput, "output", "o", "-", "output JSONL path, - for stdout")
	f.StringVar(&batchFormat, "format", "", "input format: csv or jsonl (default: from the file extension)")
	f.IntVar(&batchWorkers, "workers", 0, "concurrent questionnaires (env: WORKERS)")
	f.Float64Var(&batchRate, "rate-limit-rps", 0, "questionnaire starts per second, 0 disables (env: RATE_LIMIT_RPS)")
	f.BoolVar(&batchFailFast, "fail-fast", false, "abort on the first failed questionnaire (env: FAIL_FAST)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Batch.Workers = batchWorkers
	}
	if flags.Changed("rate-limit-rps") {
		cfg.Batch.RateLimitRPS = batchRate
	}
	if flags.Changed("fail-fast") {
		cfg.Batch.FailFast = batchFailFast
	}

	inputPath := args[0]
	format := strings.ToLower(strings.TrimSpace(batchFormat))
	if format == "" {
		var err error
		if format, err = batch.FormatFromPath(inputPath); err != nil {
			return usageError(err)
		}
	}

	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return usageError(fmt.Errorf("open input: %w", err))
	}
	items, err := batch.ReadAnswers(in, format)
	_ = in.Close()
	if err != nil {
		return usageError(fmt.Errorf("read %s: %w", inputPath, err))
	}

	policy := batch.FailurePolicyPartialOutput
	if cfg.Batch.FailFast {
		policy = batch.FailurePolicyFailFast
	}

	done := 0
	rows, err := batch.Run(cmd.Context(), p, items, batch.Options{
		Workers:       cfg.Batch.Workers,
		RateLimitRPS:  cfg.Batch.RateLimitRPS,
		FailurePolicy: policy,
	}, func(row batch.Row) error {
		done++
		logger.Debug("batch: row complete",
			zap.Int("line", row.Line),
			zap.String("status", row.Status),
			zap.Int("done", done),
			zap.Int("total", len(items)),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	return writeRows(cmd.OutOrStdout(), batchOutput, rows)
}

func writeRows(stdout io.Writer, path string, rows []batch.Row) error {
	if path == "" || path == "-" {
		return batch.WriteJSONL(stdout, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := batch.WriteJSONL(w, rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
