package retryhost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// requestStats tracks request operation statistics.
type requestStats struct {
	mu              sync.RWMutex
	totalAttempts   int64
	totalRetries    int64
	totalSuccesses  int64
	totalFailures   int64
	lastAttemptTime time.Time
	lastError       error
}

func (s *requestStats) recordAttempt(isRetry bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalAttempts++
	if isRetry {
		s.totalRetries++
	}
	s.lastAttemptTime = time.Now()
}

func (s *requestStats) recordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalSuccesses++
}

func (s *requestStats) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalFailures++
	s.lastError = err
}

// Do executes one logical request of the given operation kind. It builds the
// host pool for the operation, starts at the shared cursor (the last known
// good host for this application ID), and on each retryable failure advances
// the cursor and retries against the next host with a strictly larger
// timeout. After every host has failed, the cursor resets to zero and Do
// returns a HostsExhaustedError.
//
// On success the transport's response is returned unchanged and the cursor is
// left pointing at the host that served the request, so the next logical
// request starts there. Non-retryable errors propagate immediately without
// touching the cursor. Do settles exactly once per call; it is safe to call
// concurrently.
func (c *Client[Req, Resp]) Do(ctx context.Context, op Operation, payload Req) (Resp, error) {
	var zero Resp

	if op != OperationRead && op != OperationWrite {
		return zero, fmt.Errorf("retryhost: unknown operation %q", op)
	}

	logger := c.logger.With(
		"app_id", c.appID,
		"op", string(op),
		"request_id", uuid.NewString(),
	)

	// Check if the caller's context is already done before attempting any
	// requests.
	select {
	case <-ctx.Done():
		logger.Warn("context already done before request (expected condition)",
			"error", ctx.Err())
		return zero, ctx.Err()
	default:
	}

	pool := hostPool(c.appID, op, c.domains)

	var (
		response Resp
		attempt  int
		lastErr  error
	)

	// Host rotation is paced by timeout escalation, not backoff sleeps, so
	// the delay between attempts defaults to zero.
	backoff := retry.WithMaxRetries(
		uint64(len(pool)-1),
		retry.BackoffFunc(func() (time.Duration, bool) {
			return c.retryDelay, false
		}),
	)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		cursor := c.store.Cursor(c.appID)
		host := pool[cursor%len(pool)]
		timeout := c.timeouts(attempt)

		c.stats.recordAttempt(attempt > 0)

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := c.transport(attemptCtx, host, timeout, op, payload)
		cancel()

		if err == nil {
			if attempt > 0 {
				logger.Info("request succeeded after host rotation",
					"attempts", attempt+1,
					"host", host)
			}
			response = resp
			return nil
		}

		// The caller's own context ending always wins over attempt-level
		// classification.
		if parentErr := ctx.Err(); parentErr != nil {
			logger.Warn("context done during attempt (expected condition)",
				"attempt", attempt,
				"host", host,
				"error", parentErr)
			return parentErr
		}

		// An attempt that outlived its per-attempt deadline is a timeout
		// failure like any other the transport could report.
		if errors.Is(err, context.DeadlineExceeded) {
			err = NewTransportError(ReasonTimeout, err)
		}

		if !c.classifier.IsRetryable(err) {
			logger.Debug("non-retryable error, giving up",
				"attempt", attempt,
				"host", host,
				"error", err)
			return err
		}

		c.store.Advance(c.appID)
		lastErr = err
		attempt++

		logger.Debug("rotating to next host after retryable error",
			"attempt", attempt,
			"failed_host", host,
			"timeout", timeout,
			"error", err)

		return retry.RetryableError(err)
	})
	if err != nil {
		if attempt >= len(pool) {
			c.store.Reset(c.appID)
			exhausted := &HostsExhaustedError{
				AppID:    c.appID,
				Op:       op,
				Attempts: attempt,
				LastErr:  lastErr,
			}
			logger.Warn("host pool exhausted, cursor reset to primary",
				"attempts", attempt,
				"error", exhausted)
			c.stats.recordFailure(exhausted)
			return zero, exhausted
		}

		logger.Warn("request failed",
			"attempts", attempt+1,
			"error", err)
		c.stats.recordFailure(err)
		return zero, err
	}

	c.stats.recordSuccess()
	return response, nil
}

// RequestStats holds statistics about request operations.
type RequestStats struct {
	// TotalAttempts is the total number of transport attempts made
	// (including initial attempts and retries)
	TotalAttempts int64

	// TotalRetries is the number of retry attempts (not including initial
	// attempts)
	TotalRetries int64

	// TotalSuccesses is the number of successful logical requests
	TotalSuccesses int64

	// TotalFailures is the number of failed logical requests (non-retryable
	// or exhausted)
	TotalFailures int64

	// LastAttemptTime is the time of the last attempt
	LastAttemptTime time.Time

	// LastError is the last error encountered (if any)
	LastError error
}

// Stats returns statistics about this client's request operations.
// This method is thread-safe and returns a snapshot of the current statistics.
func (c *Client[Req, Resp]) Stats() RequestStats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return RequestStats{
		TotalAttempts:   c.stats.totalAttempts,
		TotalRetries:    c.stats.totalRetries,
		TotalSuccesses:  c.stats.totalSuccesses,
		TotalFailures:   c.stats.totalFailures,
		LastAttemptTime: c.stats.lastAttemptTime,
		LastError:       c.stats.lastError,
	}
}
