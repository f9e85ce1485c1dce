package github

// WorkflowRun is a single workflow run as returned by the Actions API.
// Only the fields the gate reads are decoded.
type WorkflowRun struct {
	// ID is the run's unique identifier, cited in gate diagnostics.
	ID int64 `json:"id"`

	// Name is the workflow's display name.
	Name string `json:"name"`

	// HeadBranch is the branch the run was triggered on.
	HeadBranch string `json:"head_branch"`

	// Status is the run's lifecycle state ("completed" once finished).
	Status string `json:"status"`

	// Conclusion is the terminal outcome ("success", "failure",
	// "cancelled", ...). Empty until the run completes.
	Conclusion string `json:"conclusion"`

	// ArtifactsURL is the absolute URL of the run's artifact listing,
	// used verbatim for the follow-up request.
	ArtifactsURL string `json:"artifacts_url"`
}

// Artifact is an uploaded workflow artifact.
type Artifact struct {
	// Name is the artifact name given at upload time.
	Name string `json:"name"`

	// ArchiveDownloadURL is the absolute URL of the artifact's ZIP archive.
	ArchiveDownloadURL string `json:"archive_download_url"`
}

// workflowRunsResponse is the list envelope of the workflow runs endpoint.
type workflowRunsResponse struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// artifactsResponse is the list envelope of the run artifacts endpoint.
type artifactsResponse struct {
	TotalCount int        `json:"total_count"`
	Artifacts  []Artifact `json:"artifacts"`
}
