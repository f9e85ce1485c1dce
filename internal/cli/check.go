// Package cli provides the command-line interface for the parity gate.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aloundoye/paritygate/internal/config"
	"github.com/aloundoye/paritygate/internal/ctxutil"
	"github.com/aloundoye/paritygate/internal/errors"
	"github.com/aloundoye/paritygate/internal/gate"
	"github.com/aloundoye/paritygate/internal/github"
	"github.com/aloundoye/paritygate/internal/tui"
)

// AddCheckCommand adds the check command to the root command.
func AddCheckCommand(root *cobra.Command) {
	root.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate the parity streak gate against recent nightly runs",
		Long: `Evaluate the parity streak gate.

The gate inspects the most recent completed nightly workflow runs on the
configured branch, newest first. It passes only when the required number of
consecutive runs concluded with success AND each run's parity journey report
artifact passes its required journeys.

Exit codes:
  0  gate passed
  1  gate failed, or evaluation could not complete
  2  invalid usage

Examples:
  paritygate check
  paritygate check --output json
  paritygate check --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runCheck(cmd.Context(), cmd, cmd.OutOrStdout())
			// A failed gate or a JSON-rendered error has already been
			// reported; silence cobra's duplicate error printing but keep
			// the non-zero exit code.
			if stderrors.Is(err, errors.ErrGateFailed) || stderrors.Is(err, errors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	return cmd
}

// runCheck executes the check command.
func runCheck(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	outputFormat := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, outputFormat)

	// A short evaluation ID ties together all log lines of one gate run.
	evalID := uuid.New().String()[:8]
	logger := GetLogger().With().Str("eval_id", evalID).Logger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return handleCheckError(out, logger, outputFormat, err)
	}

	logger.Debug().
		Str("repository", cfg.Repository).
		Str("workflow_file", cfg.WorkflowFile).
		Str("branch", cfg.Branch).
		Int("required_streak", cfg.RequiredStreak).
		Msg("starting gate evaluation")

	result, err := evaluateGate(ctx, cfg, logger)
	if err != nil {
		return handleCheckError(out, logger, outputFormat, err)
	}

	return renderCheckResult(out, outputFormat, result)
}

// evaluateGate wires the GitHub client and evaluator from config and runs
// a single evaluation.
func evaluateGate(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*gate.Result, error) {
	client := github.NewClient(cfg.Token,
		github.WithBaseURL(cfg.APIBaseURL),
		github.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		github.WithDownloadClient(&http.Client{Timeout: cfg.DownloadTimeout}),
		github.WithLogger(logger),
	)

	evaluator := gate.NewEvaluator(
		client,
		cfg.Repository,
		cfg.WorkflowFile,
		cfg.Branch,
		cfg.RequiredStreak,
		gate.WithLogger(logger),
	)

	return evaluator.Evaluate(ctx)
}

// renderCheckResult prints the verdict and converts a negative one into
// ErrGateFailed so the process exits non-zero.
func renderCheckResult(out tui.Output, outputFormat string, result *gate.Result) error {
	if outputFormat == OutputJSON {
		if err := out.JSON(result); err != nil {
			return err
		}
		if !result.Passed {
			return errors.ErrGateFailed
		}
		return nil
	}

	if !result.Passed {
		out.Failure("Parity streak gate failed: " + result.Message)
		return errors.ErrGateFailed
	}

	out.Success("Parity streak gate passed: " + result.Message)
	return nil
}

// handleCheckError reports an evaluation error in the requested format.
// Text mode renders the same "Parity streak gate failed: ..." line CI logs
// grep for; JSON mode emits an error object and suppresses duplicate text.
func handleCheckError(out tui.Output, logger zerolog.Logger, outputFormat string, err error) error {
	logger.Error().Err(err).Msg("gate evaluation did not complete")

	if message, action := errors.Actionable(err); action != "" {
		logger.Debug().Str("suggestion", action).Msg(message)
	}

	if outputFormat == OutputJSON {
		out.Error(err)
		return errors.ErrJSONErrorOutput
	}

	out.Failure("Parity streak gate failed: " + err.Error())
	return errors.Wrap(errors.ErrGateFailed, "evaluation incomplete")
}
