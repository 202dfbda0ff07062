package retryhost

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/JohnPlummer/jp-go-errors"
)

// Configuration errors returned by New. They signal caller bugs and are
// surfaced synchronously, before any request is possible.
var (
	// ErrMissingAppID is returned when the application ID is empty.
	ErrMissingAppID = errors.New("retryhost: application ID is required")

	// ErrMissingAPIKey is returned when the API credential is empty.
	ErrMissingAPIKey = errors.New("retryhost: API key is required")

	// ErrMissingTransport is returned when no transport function is provided.
	ErrMissingTransport = errors.New("retryhost: transport is required")
)

// ErrHostsExhausted is the sentinel matched by errors.Is when a logical
// request has consumed every host in the pool without success.
var ErrHostsExhausted = errors.New("retryhost: all hosts exhausted")

// Reason tags a transport failure with the transient condition it represents.
// Network, server, and timeout failures are retryable; every other reason is
// propagated to the caller without rotating hosts.
type Reason string

const (
	// ReasonNetwork marks connection-level failures (refused, reset, DNS).
	ReasonNetwork Reason = "network"

	// ReasonServer marks upstream 5xx-class failures.
	ReasonServer Reason = "server"

	// ReasonTimeout marks an attempt that outlived its deadline.
	ReasonTimeout Reason = "timeout"
)

// ErrorClassifier determines whether a transport error should trigger host
// rotation and a retry. Implement this interface to customize retry behavior
// for transports with their own error taxonomy.
type ErrorClassifier interface {
	// IsRetryable returns true if the error represents a transient failure
	// that should be retried against the next host in the pool.
	IsRetryable(err error) bool
}

// ReasonError is the minimal structural contract a transport error must
// satisfy to be considered for retry: it exposes a retry reason. Any error in
// the chain may provide it; extraction uses errors.As, so wrapping is fine.
type ReasonError interface {
	error
	RetryReason() Reason
}

// ReasonClassifier classifies errors by their retry reason tag. Errors that
// carry no reason are treated as non-retryable caller or protocol errors.
type ReasonClassifier struct {
	// RetryableReasons lists the reasons that trigger host rotation.
	// Defaults to network, server, and timeout if nil.
	RetryableReasons []Reason
}

// NewReasonClassifier creates a ReasonClassifier with the default retryable
// set: network, server, timeout.
func NewReasonClassifier() *ReasonClassifier {
	return &ReasonClassifier{
		RetryableReasons: []Reason{ReasonNetwork, ReasonServer, ReasonTimeout},
	}
}

// IsRetryable implements ErrorClassifier.
func (c *ReasonClassifier) IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// A tagged error is the transport's own classification; trust it even
	// when a context error sits underneath (an attempt deadline surfaces as
	// a timeout-tagged context.DeadlineExceeded).
	if reason, ok := extractReason(err); ok {
		return containsReason(c.retryableReasons(), reason)
	}

	// An untagged context error means the caller's own context is done;
	// retrying against it would fail immediately.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// Timeout errors from jp-go-errors-aware transports carry no Reason tag
	// but are timeouts all the same.
	if pkgerrors.IsTimeout(err) {
		return containsReason(c.retryableReasons(), ReasonTimeout)
	}

	return false
}

// retryableReasons returns the configured retryable reasons or defaults.
func (c *ReasonClassifier) retryableReasons() []Reason {
	if c.RetryableReasons != nil {
		return c.RetryableReasons
	}
	return []Reason{ReasonNetwork, ReasonServer, ReasonTimeout}
}

// extractReason pulls a retry reason out of an error chain.
func extractReason(err error) (Reason, bool) {
	var rerr ReasonError
	if errors.As(err, &rerr) {
		return rerr.RetryReason(), true
	}
	return "", false
}

// containsReason checks if a reason is in the list.
func containsReason(reasons []Reason, reason Reason) bool {
	for _, r := range reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// DefaultErrorClassifier provides reasonable defaults for most transports:
// network, server, and timeout failures rotate hosts; everything else
// propagates immediately.
func DefaultErrorClassifier() ErrorClassifier {
	return NewReasonClassifier()
}

// TransportError wraps an error with a retry reason. Transports use it to
// mark transient failures without the client depending on their concrete
// error types.
type TransportError struct {
	Err    error
	Reason Reason
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Err.Error())
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RetryReason returns the retry reason tag.
// This implements the ReasonError interface.
func (e *TransportError) RetryReason() Reason {
	return e.Reason
}

// NewTransportError wraps err with a retry reason.
//
// Example:
//
//	if errors.Is(err, syscall.ECONNREFUSED) {
//	    return retryhost.NewTransportError(retryhost.ReasonNetwork, err)
//	}
func NewTransportError(reason Reason, err error) error {
	return &TransportError{
		Reason: reason,
		Err:    err,
	}
}

// HostsExhaustedError reports that a logical request tried every host in the
// pool and failed each time with a retryable error. It is the only error this
// package manufactures itself; everything else is passed through from the
// transport.
type HostsExhaustedError struct {
	AppID    string
	Op       Operation
	Attempts int
	LastErr  error
}

// Error implements the error interface.
func (e *HostsExhaustedError) Error() string {
	return fmt.Sprintf("retryhost: %s %s: all %d hosts exhausted, last error: %v",
		e.AppID, e.Op, e.Attempts, e.LastErr)
}

// Unwrap returns the failure of the final attempt.
func (e *HostsExhaustedError) Unwrap() error {
	return e.LastErr
}

// Is reports ErrHostsExhausted so callers can match with errors.Is without
// holding the concrete type.
func (e *HostsExhaustedError) Is(target error) bool {
	return target == ErrHostsExhausted
}
