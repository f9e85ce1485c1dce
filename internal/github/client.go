// Package github provides a minimal GitHub Actions REST API client for the
// parity gate: list the completed runs of a workflow, list a run's artifacts,
// and download an artifact archive. The client is read-only and never
// retries; one invocation of the gate issues each request at most once.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/ctxutil"
	"github.com/aloundoye/paritygate/internal/errors"
)

// Client talks to the GitHub REST API.
type Client struct {
	baseURL        string
	token          string
	httpClient     *http.Client // JSON API requests
	downloadClient *http.Client // archive downloads, longer timeout
	logger         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (GitHub Enterprise, tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient overrides the HTTP client used for JSON API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDownloadClient overrides the HTTP client used for archive downloads.
func WithDownloadClient(hc *http.Client) Option {
	return func(c *Client) {
		c.downloadClient = hc
	}
}

// NewClient creates a Client authenticating with the given bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: constants.GitHubAPIBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		downloadClient: &http.Client{
			Timeout: constants.DefaultDownloadTimeout,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListWorkflowRuns returns the most recent completed runs of workflowFile on
// branch, in the API's order (most recent first). Only the first page is
// fetched, so perPage must be at least the streak the caller will evaluate.
func (c *Client) ListWorkflowRuns(ctx context.Context, repo, workflowFile, branch string, perPage int) ([]WorkflowRun, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	listURL := fmt.Sprintf("%s/repos/%s/actions/workflows/%s/runs?branch=%s&status=%s&per_page=%d",
		c.baseURL, repo, workflowFile, url.QueryEscape(branch), constants.RunStatusCompleted, perPage)

	var envelope workflowRunsResponse
	if err := c.getJSON(ctx, listURL, &envelope); err != nil {
		return nil, errors.Wrapf(err, "failed to list %s runs for %s", workflowFile, repo)
	}

	c.logger.Debug().
		Str("repo", repo).
		Str("workflow_file", workflowFile).
		Str("branch", branch).
		Int("total_count", envelope.TotalCount).
		Int("returned", len(envelope.WorkflowRuns)).
		Msg("listed workflow runs")

	return envelope.WorkflowRuns, nil
}

// ListRunArtifacts returns the artifacts of a run. artifactsURL is the
// absolute URL taken verbatim from the run object.
func (c *Client) ListRunArtifacts(ctx context.Context, artifactsURL string) ([]Artifact, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	var envelope artifactsResponse
	if err := c.getJSON(ctx, artifactsURL, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to list run artifacts")
	}

	c.logger.Debug().
		Int("total_count", envelope.TotalCount).
		Msg("listed run artifacts")

	return envelope.Artifacts, nil
}

// DownloadArtifact fetches an artifact's ZIP archive and returns the raw
// bytes. GitHub answers with a redirect to blob storage; net/http follows it
// and re-sends the Authorization header only to the same host, which is the
// behavior the API expects.
func (c *Client) DownloadArtifact(ctx context.Context, archiveURL string) ([]byte, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	data, err := c.download(ctx, archiveURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download artifact archive")
	}

	c.logger.Debug().
		Int("bytes", len(data)).
		Msg("downloaded artifact archive")

	return data, nil
}

// getJSON performs an authenticated GET and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.get(ctx, c.httpClient, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", errors.ErrProtocol, err) //nolint:errorlint // intentional hybrid wrap
	}

	return nil
}

// download performs an authenticated GET with the download client and
// returns the raw response body.
func (c *Client) download(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.get(ctx, c.downloadClient, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", errors.ErrNetwork, err) //nolint:errorlint // intentional hybrid wrap
	}

	return data, nil
}

// get issues a GET with the standard GitHub protocol headers.
func (c *Client) get(ctx context.Context, hc *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", constants.GitHubAcceptHeader)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", constants.GitHubAPIVersion)
	req.Header.Set("User-Agent", constants.UserAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrNetwork, err) //nolint:errorlint // intentional hybrid wrap
	}

	return resp, nil
}

// checkStatus maps a non-2xx response to ErrProtocol, including the body in
// the message (GitHub error bodies are small JSON documents).
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("%w: status %d (failed to read response body: %v)", errors.ErrProtocol, resp.StatusCode, readErr) //nolint:errorlint // intentional hybrid wrap
	}

	return fmt.Errorf("%w: status %d: %s", errors.ErrProtocol, resp.StatusCode, strings.TrimSpace(string(body)))
}
