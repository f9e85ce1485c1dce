// Package gate decides whether the parity streak holds: the N most recent
// completed nightly runs must all have concluded successfully and each must
// carry a journey report that passes policy. Evaluation is stateless and
// strictly sequential; the first failing run ends it.
package gate

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/ctxutil"
	"github.com/aloundoye/paritygate/internal/errors"
	"github.com/aloundoye/paritygate/internal/github"
	"github.com/aloundoye/paritygate/internal/report"
)

// RunsAPI is the slice of the GitHub client the evaluator needs.
// This allows mocking in tests.
type RunsAPI interface {
	// ListWorkflowRuns returns the most recent completed runs of a
	// workflow on a branch, most recent first.
	ListWorkflowRuns(ctx context.Context, repo, workflowFile, branch string, perPage int) ([]github.WorkflowRun, error)

	// ListRunArtifacts returns the artifacts of a run.
	ListRunArtifacts(ctx context.Context, artifactsURL string) ([]github.Artifact, error)

	// DownloadArtifact fetches an artifact's ZIP archive.
	DownloadArtifact(ctx context.Context, archiveURL string) ([]byte, error)
}

// Compile-time interface check.
var _ RunsAPI = (*github.Client)(nil)

// Result is the gate's verdict for one evaluation.
type Result struct {
	// Passed is true when every required run succeeded with a passing report.
	Passed bool `json:"passed"`

	// Message is the single-line explanation of the verdict.
	Message string `json:"message"`

	// RunsEvaluated is how many runs were individually inspected before
	// the verdict was reached.
	RunsEvaluated int `json:"runs_evaluated"`
}

// Evaluator applies the parity streak policy to recent workflow runs.
type Evaluator struct {
	api            RunsAPI
	repo           string
	workflowFile   string
	branch         string
	requiredStreak int
	logger         zerolog.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger sets the logger for the evaluator.
func WithLogger(logger zerolog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator creates an Evaluator for the given repository and workflow.
func NewEvaluator(api RunsAPI, repo, workflowFile, branch string, requiredStreak int, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		api:            api,
		repo:           repo,
		workflowFile:   workflowFile,
		branch:         branch,
		requiredStreak: requiredStreak,
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate runs the gate once: list the most recent completed nightly runs,
// then check conclusion and journey report for each of the first
// requiredStreak runs in order, stopping at the first failure.
//
// Policy failures (too few runs, a non-success conclusion, a report that
// does not pass) are the expected negative outcome and return a Result with
// Passed=false and a nil error. Transport, protocol, and artifact problems
// return (nil, error) instead. Nothing is retried and later runs are never
// fetched once the verdict is known.
func (e *Evaluator) Evaluate(ctx context.Context) (*Result, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	perPage := constants.RunsPerPage
	if e.requiredStreak > perPage {
		perPage = e.requiredStreak
	}

	runs, err := e.api.ListWorkflowRuns(ctx, e.repo, e.workflowFile, e.branch, perPage)
	if err != nil {
		return nil, err
	}

	if len(runs) < e.requiredStreak {
		return e.fail(fmt.Sprintf("need %d completed nightly runs, found %d", e.requiredStreak, len(runs)), 0), nil
	}

	for i := 0; i < e.requiredStreak; i++ {
		run := runs[i]

		e.logger.Debug().
			Int("position", i+1).
			Int64("run_id", run.ID).
			Str("conclusion", run.Conclusion).
			Msg("evaluating nightly run")

		if run.Conclusion != constants.RunConclusionSuccess {
			return e.fail(fmt.Sprintf("run #%d (id=%d) conclusion=%s", i+1, run.ID, run.Conclusion), i+1), nil
		}

		rep, err := e.fetchReport(ctx, run)
		if err != nil {
			return nil, err
		}

		if !rep.Passes() {
			return e.fail(fmt.Sprintf("report in run id=%d did not pass required journeys", run.ID), i+1), nil
		}
	}

	e.logger.Info().
		Int("required_streak", e.requiredStreak).
		Msg("parity streak intact")

	return &Result{
		Passed:        true,
		Message:       fmt.Sprintf("last %d nightly runs succeeded with passing journey reports", e.requiredStreak),
		RunsEvaluated: e.requiredStreak,
	}, nil
}

// fail assembles a failing result and logs the reason.
func (e *Evaluator) fail(msg string, evaluated int) *Result {
	e.logger.Warn().
		Int("runs_evaluated", evaluated).
		Str("reason", msg).
		Msg("parity streak broken")

	return &Result{
		Passed:        false,
		Message:       msg,
		RunsEvaluated: evaluated,
	}
}

// fetchReport locates, downloads, and decodes a run's journey report.
// Every error cites the run id so the diagnostic line pinpoints the run.
func (e *Evaluator) fetchReport(ctx context.Context, run github.WorkflowRun) (*report.Report, error) {
	artifacts, err := e.api.ListRunArtifacts(ctx, run.ArtifactsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "run %d artifact listing failed", run.ID)
	}

	var archiveURL string
	for _, a := range artifacts {
		if a.Name == constants.ReportArtifactName {
			archiveURL = a.ArchiveDownloadURL
			break
		}
	}
	if archiveURL == "" {
		return nil, errors.Wrapf(errors.ErrArtifactMissing,
			"run %d missing %s artifact", run.ID, constants.ReportArtifactName)
	}

	data, err := e.api.DownloadArtifact(ctx, archiveURL)
	if err != nil {
		return nil, errors.Wrapf(err, "run %d artifact download failed", run.ID)
	}

	rep, err := report.FromArchive(data)
	if err != nil {
		if stderrors.Is(err, errors.ErrArtifactMissing) {
			return nil, errors.Wrapf(err, "run %d artifact missing %s", run.ID, constants.ReportFileName)
		}
		return nil, errors.Wrapf(err, "run %d report extraction failed", run.ID)
	}

	return rep, nil
}
