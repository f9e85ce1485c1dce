package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigMissing,
		info: ErrorInfo{
			Message: "Required configuration is missing.",
			Action:  "Set GITHUB_REPOSITORY and GITHUB_TOKEN before running the gate.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "A configuration value is invalid.",
			Action:  "Check PARITY_REQUIRED_STREAK and related variables for valid values.",
		},
	},

	// ===================
	// API access
	// ===================
	{
		err: ErrNetwork,
		info: ErrorInfo{
			Message: "Could not reach the GitHub API.",
			Action:  "Check your network connection and PARITY_API_BASE_URL, then retry.",
		},
	},
	{
		err: ErrProtocol,
		info: ErrorInfo{
			Message: "The GitHub API returned an unexpected response.",
			Action:  "Verify GITHUB_TOKEN permissions and that the workflow file name is correct.",
		},
	},

	// ===================
	// Report artifacts
	// ===================
	{
		err: ErrArtifactMissing,
		info: ErrorInfo{
			Message: "A nightly run did not publish the parity report artifact.",
			Action:  "Check that the nightly workflow uploads the parity-journey-report artifact.",
		},
	},
	{
		err: ErrReportMalformed,
		info: ErrorInfo{
			Message: "A parity report artifact could not be read.",
			Action:  "Inspect the artifact in the run; the report JSON may be corrupt.",
		},
	},
	{
		err: ErrGateFailed,
		info: ErrorInfo{
			Message: "The parity streak gate did not pass.",
			Action:  "Inspect the most recent nightly runs for the failing run or report.",
		},
	},

	// ===================
	// CLI usage
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "An invalid output format was specified.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrUnsupportedOutputFormat,
		info: ErrorInfo{
			Message: "An unsupported output format was specified.",
			Action:  "Check the command help for supported formats.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
