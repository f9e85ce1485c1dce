package mockapi

import (
	"sync"
	"time"
)

// State is the mock server's mutable state. It is constructed once at
// server start and passed by reference into each request handler; the
// fault-injection knobs are immutable after construction, only the request
// counter changes under the mutex.
type State struct {
	mu           sync.Mutex
	requestCount int

	failFirst  int           // how many initial requests fail
	failStatus int           // HTTP status used for injected failures
	delay      time.Duration // artificial per-request latency
}

// NewState creates the server state with its fault-injection settings.
func NewState(failFirst, failStatus int, delay time.Duration) *State {
	return &State{
		failFirst:  failFirst,
		failStatus: failStatus,
		delay:      delay,
	}
}

// NextAttempt increments the request counter and returns the attempt
// number, starting at 1. Safe for concurrent handlers.
func (s *State) NextAttempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestCount++
	return s.requestCount
}

// RequestCount returns how many requests have been counted so far.
func (s *State) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

// FailingAttempt reports whether the given attempt should fail, and with
// which HTTP status.
func (s *State) FailingAttempt(attempt int) (int, bool) {
	if attempt <= s.failFirst {
		return s.failStatus, true
	}
	return 0, false
}

// Delay returns the configured artificial latency.
func (s *State) Delay() time.Duration {
	return s.delay
}
