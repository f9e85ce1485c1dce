// Package constants provides centralized constant values used throughout the
// parity gate. This package is the single source of truth for all shared
// constants and MUST NOT import any other internal packages.
package constants

import "time"

// Report artifact identity. The nightly workflow publishes a ZIP artifact
// with this name, containing the journey report JSON somewhere inside it.
const (
	// ReportArtifactName is the name of the workflow artifact that carries
	// the parity journey report.
	ReportArtifactName = "parity-journey-report"

	// ReportFileName is the file the extractor looks for inside the artifact
	// archive. Matching is by suffix, so nested paths like
	// "reports/parity_journey_report.json" are accepted.
	ReportFileName = "parity_journey_report.json"
)

// GitHub API protocol values sent on every request.
const (
	// GitHubAPIBaseURL is the default base URL for the GitHub REST API.
	GitHubAPIBaseURL = "https://api.github.com"

	// GitHubAPIVersion is the value of the X-GitHub-Api-Version header.
	GitHubAPIVersion = "2022-11-28"

	// GitHubAcceptHeader is the value of the Accept header.
	GitHubAcceptHeader = "application/vnd.github+json"

	// UserAgent identifies the gate to the API.
	UserAgent = "deepseek-parity-streak-gate"
)

// Workflow run fields the gate filters and inspects.
const (
	// RunStatusCompleted is the status filter applied when listing runs.
	RunStatusCompleted = "completed"

	// RunConclusionSuccess is the only conclusion that keeps a streak alive.
	RunConclusionSuccess = "success"
)

// Gate defaults, overridable through the environment.
const (
	// DefaultWorkflowFile is the nightly workflow file evaluated by default.
	DefaultWorkflowFile = "parity-nightly.yml"

	// DefaultRequiredStreak is how many consecutive passing runs are needed.
	DefaultRequiredStreak = 3

	// DefaultBranch is the branch whose runs are evaluated.
	DefaultBranch = "main"

	// RunsPerPage is the minimum page size requested when listing runs.
	// The effective page size is the larger of this and the required streak.
	RunsPerPage = 20
)

// Timeout configurations for API operations.
const (
	// DefaultHTTPTimeout bounds JSON API requests (run and artifact listings).
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultDownloadTimeout bounds artifact archive downloads, which are
	// larger and routinely redirect to blob storage.
	DefaultDownloadTimeout = 60 * time.Second
)

// Environment variable names read by the configuration loader.
const (
	// EnvRepository names the "owner/name" repository to evaluate.
	EnvRepository = "GITHUB_REPOSITORY"

	// EnvToken is the bearer token used for API authentication.
	EnvToken = "GITHUB_TOKEN"

	// EnvWorkflowFile overrides the nightly workflow file name.
	EnvWorkflowFile = "PARITY_WORKFLOW_FILE"

	// EnvRequiredStreak overrides the required consecutive-success count.
	EnvRequiredStreak = "PARITY_REQUIRED_STREAK"

	// EnvBranch overrides the branch whose runs are evaluated.
	EnvBranch = "DEFAULT_BRANCH"

	// EnvAPIBaseURL overrides the API base URL (mock servers, GHES).
	EnvAPIBaseURL = "PARITY_API_BASE_URL"

	// EnvHTTPTimeout overrides the JSON request timeout.
	EnvHTTPTimeout = "PARITY_HTTP_TIMEOUT"

	// EnvDownloadTimeout overrides the artifact download timeout.
	EnvDownloadTimeout = "PARITY_DOWNLOAD_TIMEOUT"

	// EnvLogFile, when set, enables a rotating file log at the given path.
	// The gate writes nothing to disk unless this is set.
	EnvLogFile = "PARITY_GATE_LOG_FILE"
)

// Rotation settings for the opt-in file log.
const (
	// LogMaxSizeMB is the maximum size of the log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of a rotated log file in days.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Mock API server defaults. The mock stands in for the DeepSeek
// chat-completions endpoint in parity test environments.
const (
	// MockDefaultHost is the interface the mock server binds by default.
	MockDefaultHost = "127.0.0.1"

	// MockDefaultPort is the port the mock server binds by default.
	MockDefaultPort = 18765

	// MockDefaultFailStatus is the HTTP status returned for injected failures.
	MockDefaultFailStatus = 503

	// MockCompletionsPath is the only route the mock server serves.
	MockCompletionsPath = "/chat/completions"
)
