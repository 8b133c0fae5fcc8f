package genai

import (
	"context"
	"errors"
	"math"
	"time"
)

// Invoker executes one request against the remote model service. The process
// holds a single Invoker, created once at startup and safe for concurrent
// reuse; implementations live in the transport adapters.
type Invoker interface {
	Invoke(ctx context.Context, req GenerationRequest) (*RawResponse, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, req GenerationRequest) (*RawResponse, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, req GenerationRequest) (*RawResponse, error) {
	return f(ctx, req)
}

// RetryConfig holds the envelope's retry policy.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64

	// TransportOnly restricts retries to transport errors. The default
	// mirrors the broad retry-on-any-error policy of the original system,
	// trading precision for robustness; enabling this stops retries on
	// errors another attempt cannot fix.
	TransportOnly bool
}

// DefaultRetryConfig returns the standard policy: 3 total attempts, delays
// of roughly 1s then 2s, capped at 10s, retrying on any error.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
	}
}

// Backoff returns the delay after the given 1-based attempt number, clamped
// to [InitialBackoff, MaxBackoff].
func (c RetryConfig) Backoff(attempt int) time.Duration {
	backoff := float64(c.InitialBackoff) * math.Pow(c.Multiplier, float64(attempt-1))
	if backoff > float64(c.MaxBackoff) {
		backoff = float64(c.MaxBackoff)
	}
	if backoff < float64(c.InitialBackoff) {
		backoff = float64(c.InitialBackoff)
	}
	return time.Duration(backoff)
}

// shouldRetry decides whether err is worth another attempt under this policy.
func (c RetryConfig) shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if !c.TransportOnly {
		return true
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.IsRetryable()
	}
	return false
}

// AttemptOutcome labels how a single attempt ended.
type AttemptOutcome string

const (
	OutcomeSuccess          AttemptOutcome = "success"
	OutcomeTransientFailure AttemptOutcome = "transient_failure"
	OutcomeTerminalFailure  AttemptOutcome = "terminal_failure"
)

// Observation is the structured record emitted for every attempt, including
// failed ones.
type Observation struct {
	Model   string
	Task    string
	Attempt int
	Started time.Time
	Elapsed time.Duration
	Outcome AttemptOutcome
	Err     error
}

// Observer receives attempt observations. Implementations must be safe for
// concurrent use and must never block or fail the caller.
type Observer interface {
	ObserveAttempt(ctx context.Context, obs Observation)
}

// Result carries a successful invocation's response together with the total
// wall-clock time across all attempts, for display to the caller.
type Result struct {
	Response *RawResponse
	Attempts int
	Elapsed  time.Duration
}

// Envelope executes generation requests under bounded retry with per-attempt
// timing and observations. It holds no cross-call state; concurrent
// invocations are independent.
type Envelope struct {
	invoker  Invoker
	retry    RetryConfig
	observer Observer
}

// NewEnvelope wires an envelope around an invoker. A nil observer disables
// observations.
func NewEnvelope(invoker Invoker, retry RetryConfig, observer Observer) *Envelope {
	if retry.MaxAttempts < 1 {
		retry = DefaultRetryConfig()
	}
	return &Envelope{
		invoker:  invoker,
		retry:    retry,
		observer: observer,
	}
}

// Invoke runs the request until an attempt succeeds, the policy declines to
// retry, or attempts are exhausted. The task label only feeds observations.
//
// On exhaustion the final attempt's error is returned wrapped in
// *RetriesExhausted; errors.Is and errors.As see through the wrapper, so the
// caller observes the original failure unchanged.
func (e *Envelope) Invoke(ctx context.Context, task string, req GenerationRequest) (*Result, error) {
	started := time.Now()
	var lastErr error

	for attempt := 1; attempt <= e.retry.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := e.attempt(ctx, task, attempt, req)
		if err == nil {
			return &Result{
				Response: resp,
				Attempts: attempt,
				Elapsed:  time.Since(started),
			}, nil
		}
		lastErr = err

		if !e.retry.shouldRetry(err) {
			return nil, err
		}
		if attempt == e.retry.MaxAttempts {
			break
		}

		select {
		case <-time.After(e.retry.Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &RetriesExhausted{Attempts: e.retry.MaxAttempts, Last: lastErr}
}

// attempt runs a single call under a scoped observation whose emission is
// guaranteed regardless of how the call ends.
func (e *Envelope) attempt(ctx context.Context, task string, number int, req GenerationRequest) (resp *RawResponse, err error) {
	attemptStart := time.Now()

	defer func() {
		if e.observer == nil {
			return
		}
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeTerminalFailure
			if e.retry.shouldRetry(err) && number < e.retry.MaxAttempts {
				outcome = OutcomeTransientFailure
			}
		}
		e.observer.ObserveAttempt(ctx, Observation{
			Model:   req.Model,
			Task:    task,
			Attempt: number,
			Started: attemptStart,
			Elapsed: time.Since(attemptStart),
			Outcome: outcome,
			Err:     err,
		})
	}()

	return e.invoker.Invoke(ctx, req)
}
