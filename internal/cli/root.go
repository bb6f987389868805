// Package cli implements the airassist command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shpitdev/air-assist/internal/config"
	"github.com/shpitdev/air-assist/internal/logging"
	"github.com/shpitdev/air-assist/internal/util"
)

var (
	configPath    string
	logLevel      string
	logFormat     string
	geminiModel   string
	geminiBaseURL string
	transport     string
	timeout       config.Duration

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "airassist",
	Short: "Trip recommendations from a short questionnaire",
	Long: `airassist turns a trip questionnaire into homes to stay in, places to visit
and places to eat, using a Gemini model.

Settings come from (later wins): defaults, --config file, .env, environment
variables, then flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env: LOG_LEVEL)")
	pf.StringVar(&logFormat, "log-format", "", "log format: console or json (env: LOG_FORMAT)")
	pf.StringVar(&geminiModel, "gemini-model", "", "Gemini model name (env: GEMINI_MODEL)")
	pf.StringVar(&geminiBaseURL, "gemini-base-url", "", "Gemini API base URL override (env: GEMINI_BASE_URL)")
	pf.StringVar(&transport, "transport", "", "generation transport: rest or sdk (env: GEMINI_TRANSPORT)")
	pf.Var(&durationFlag{&timeout}, "timeout", "per-request generation timeout, e.g. 30s (env: GEMINI_TIMEOUT)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return usageError(err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		loaded.Log.Format = logFormat
	}
	if flags.Changed("gemini-model") {
		loaded.Gemini.Model = geminiModel
	}
	if flags.Changed("gemini-base-url") {
		loaded.Gemini.BaseURL = geminiBaseURL
	}
	if flags.Changed("transport") {
		loaded.Gemini.Transport = transport
	}
	if flags.Changed("timeout") {
		loaded.Gemini.Timeout = timeout
	}

	l, err := logging.NewWriter(cmd.ErrOrStderr(), loaded.Log.Level, loaded.Log.Format)
	if err != nil {
		return usageError(err)
	}
	cfg = loaded
	logger = l
	zap.ReplaceGlobals(l)
	return nil
}

// Execute runs the command tree and returns the process exit code: 0 on success,
// 2 for usage or configuration errors, 1 for failed runs.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %s\n", util.RedactSecrets(ee.err.Error()))
		}
		return ee.code
	}
	_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %s\n", util.RedactSecrets(err.Error()))
	return 1
}

// exitError carries a process exit code. A nil err means the command already
// reported the failure itself.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: 2, err: err} }

func silentFailure() error { return &exitError{code: 1} }

type durationFlag struct{ d *config.Duration }

func (f *durationFlag) String() string {
	if f.d == nil || *f.d == 0 {
		return ""
	}
	b, _ := f.d.MarshalText()
	return string(b)
}

func (f *durationFlag) Set(s string) error { return f.d.UnmarshalText([]byte(s)) }

func (f *durationFlag) Type() string { return "duration" }
