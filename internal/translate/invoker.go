package translate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Generator is the upstream model. The concrete implementation talks to
// Gemini (gemini.go); tests substitute a stub.
type Generator interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// UpstreamError classifies a model failure. Overloaded errors are the only
// retryable class; everything else surfaces immediately.
type UpstreamError struct {
	Overloaded bool
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Overloaded {
		return "upstream model overloaded: " + e.Err.Error()
	}
	return "upstream model error: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsOverloaded reports whether err looks like a transient-capacity failure.
// Classification matches on the error text ("503", "overloaded",
// "unavailable", case-insensitive) so it works identically for the real
// Gemini client and for stubs.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Overloaded
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "unavailable")
}

// RetryPolicy bounds the retry loop. MaxAttempts counts the first call:
// the default of 4 means one call plus up to three retries, with delays
// doubling from InitialDelay (1s, 2s, 4s). No jitter.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultRetryPolicy matches the documented upstream contract.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:  4,
	InitialDelay: time.Second,
}

// Invoker calls the upstream model with bounded retry on overload, behind
// a circuit breaker that trips after sustained whole-call failures.
type Invoker struct {
	gen     Generator
	policy  RetryPolicy
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewInvoker creates an Invoker with the given retry policy.
func NewInvoker(gen Generator, policy RetryPolicy, logger *slog.Logger) *Invoker {
	return &Invoker{
		gen:    gen,
		policy: policy,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "model",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				// One breaker sample per Invoke, not per attempt, so a
				// single request's retries cannot trip it.
				return counts.ConsecutiveFailures > 5
			},
		}),
		logger: logger,
	}
}

// Invoke sends the request and returns the raw response text.
//
// Only overloaded-class failures are retried; others return immediately.
// Exhausting all attempts returns the last error wrapped as an overloaded
// UpstreamError. Retry waits respect ctx so the caller's deadline spans
// the whole sequence.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (string, error) {
	out, err := inv.breaker.Execute(func() (any, error) {
		return inv.invokeWithRetry(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			// An open breaker means the model has been failing across
			// requests — report it like an overload so callers back off.
			return "", &UpstreamError{Overloaded: true, Err: err}
		}
		return "", err
	}
	return out.(string), nil
}

func (inv *Invoker) invokeWithRetry(ctx context.Context, req Request) (string, error) {
	delay := inv.policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= inv.policy.MaxAttempts; attempt++ {
		text, err := inv.gen.GenerateContent(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !IsOverloaded(err) {
			return "", &UpstreamError{Err: err}
		}
		if attempt == inv.policy.MaxAttempts {
			break
		}

		inv.logger.Warn("model overloaded, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", &UpstreamError{Overloaded: true, Err: lastErr}
}
