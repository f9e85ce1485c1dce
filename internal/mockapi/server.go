// Package mockapi implements a DeepSeek-compatible mock chat completions
// server for CI smoke and reliability tests. The server answers every
// completion request with canned content and can be configured to fail the
// first N requests or to delay each response, which is how the nightly
// parity workflows exercise retry handling without the real service.
package mockapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/errors"
)

const shutdownTimeout = 5 * time.Second

// Server serves the mock chat completions endpoint.
type Server struct {
	addr   string
	state  *State
	logger zerolog.Logger
	out    io.Writer

	// sleep is swapped out in tests so delay handling can be asserted
	// without real waiting.
	sleep func(time.Duration)
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for request and lifecycle logging.
func WithLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOutput sets the writer that receives the listen line. Defaults to
// stdout, which CI scripts scrape to learn the bound address.
func WithOutput(out io.Writer) ServerOption {
	return func(s *Server) {
		s.out = out
	}
}

// NewServer creates a mock API server that will bind addr when run.
func NewServer(addr string, state *State, opts ...ServerOption) *Server {
	s := &Server{
		addr:   addr,
		state:  state,
		logger: zerolog.Nop(),
		out:    os.Stdout,
		sleep:  time.Sleep,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router assembles the chi router: the completions route plus the canonical
// JSON not-found shape for everything else, verbs included.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)

	r.Post(constants.MockCompletionsPath, s.handleCompletions)
	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)

	return r
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.addr)
	}

	return s.Serve(ctx, listener)
}

// Serve runs the server on an existing listener until ctx is canceled,
// then drains in-flight requests gracefully. Tests use it with an
// ephemeral port.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler: s.Router(),
		// No write timeout: responses may be artificially delayed.
		ReadHeaderTimeout: 10 * time.Second,
	}

	addr := listener.Addr().String()
	fmt.Fprintf(s.out, "mock deepseek api listening on http://%s%s\n", addr, constants.MockCompletionsPath)
	s.logger.Info().
		Str("addr", addr).
		Int("fail_first", s.state.failFirst).
		Int("fail_status", s.state.failStatus).
		Dur("response_delay", s.state.delay).
		Msg("mock deepseek api started")

	var g errgroup.Group

	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "mock api server failed")
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "mock api shutdown failed")
		}

		s.logger.Info().Msg("mock deepseek api stopped")

		return nil
	})

	return g.Wait()
}

// logRequests emits one debug line per request with the chi request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("handled request")
	})
}

// completionsRequest is the subset of a chat completions request the mock
// inspects. Message content stays raw because clients send plain strings
// as well as structured blocks.
type completionsRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// completionsResponse mirrors the DeepSeek chat completions envelope that
// harness clients decode.
type completionsResponse struct {
	Choices []completionChoice `json:"choices"`
}

type completionChoice struct {
	FinishReason string           `json:"finish_reason"`
	Message      completionOutput `json:"message"`
}

type completionOutput struct {
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content"`
	ToolCalls        []any  `json:"tool_calls"`
}

func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	var req completionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Malformed bodies are treated as empty requests so reliability
		// tests can hammer the endpoint with garbage.
		req = completionsRequest{}
	}

	attempt := s.state.NextAttempt()

	if delay := s.state.Delay(); delay > 0 {
		s.sleep(delay)
	}

	if status, failing := s.state.FailingAttempt(attempt); failing {
		if status == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "0")
		}

		s.logger.Info().
			Int("attempt", attempt).
			Int("status", status).
			Msg("injecting configured failure")
		s.respondJSON(w, status, map[string]any{
			"error":   "transient_mock_failure",
			"attempt": attempt,
		})

		return
	}

	content := cannedContent(lastUserPrompt(req.Messages))

	s.respondJSON(w, http.StatusOK, completionsResponse{
		Choices: []completionChoice{
			{
				FinishReason: "stop",
				Message: completionOutput{
					Content:          content,
					ReasoningContent: "mock reasoning",
					ToolCalls:        []any{},
				},
			},
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

// respondJSON writes a JSON body with explicit Content-Length and
// Connection: close, the framing harness clients were built against.
func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "encoding failure", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Connection", "close")
	w.WriteHeader(status)

	if _, err = w.Write(body); err != nil {
		s.logger.Debug().Err(err).Msg("failed to write response")
	}
}

// lastUserPrompt extracts the content of the most recent user-role
// message. String content is used as-is; structured content is stringified
// so prompt matching still sees it.
func lastUserPrompt(messages []chatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != "user" {
			continue
		}

		raw := messages[i].Content
		if len(raw) == 0 {
			return ""
		}

		var prompt string
		if err := json.Unmarshal(raw, &prompt); err == nil {
			return prompt
		}

		return string(raw)
	}

	return ""
}

// cannedContent picks the response body for a prompt. Plan and status
// prompts get purpose-built lines that parity journeys assert on;
// everything else is echoed back.
func cannedContent(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "plan"):
		return "Generated plan: discover files, propose edits, verify with tests."
	case strings.Contains(lower, "status"):
		return "Status: mock service healthy."
	case prompt == "":
		return "Mock response: ok"
	default:
		return "Mock response: " + prompt
	}
}
