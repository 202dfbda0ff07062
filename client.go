// Package retryhost provides the resilient-request core of a search API
// client: it delivers read and write operations to one of several redundant
// hosts derived from an application ID, transparently retrying transient
// failures by rotating to the next host with an escalating per-attempt
// timeout. Host-health state (a cursor into the host pool) is shared
// process-wide per application ID, so every client constructed for the same
// application starts from the last known good host.
//
// The package is transport-agnostic: callers inject a Transport function and
// the request/response types via generics, making it suitable for HTTP, gRPC,
// or any other wire layer.
package retryhost

import (
	"context"
	"log/slog"
	"time"
)

// Operation identifies the kind of request being delivered. Read operations
// target a read-optimized primary host; write operations target the
// general-purpose primary. Both kinds share the same fallback hosts.
type Operation string

const (
	// OperationRead targets the read-optimized primary host.
	OperationRead Operation = "read"

	// OperationWrite targets the general-purpose primary host.
	OperationWrite Operation = "write"
)

// Transport delivers a single attempt to a concrete host and returns the raw
// response or an error. Implementations should respect ctx, which carries the
// per-attempt deadline; timeout is the same value in explicit form for
// transports that manage their own deadlines.
//
// Errors that represent transient conditions should carry a retry reason so
// the client rotates hosts and tries again:
//
//	func transport(ctx context.Context, host string, timeout time.Duration,
//	    op retryhost.Operation, payload Query) (Result, error) {
//	    resp, err := doHTTP(ctx, host, payload)
//	    if err != nil {
//	        return Result{}, retryhost.NewTransportError(retryhost.ReasonNetwork, err)
//	    }
//	    return resp, nil
//	}
type Transport[Req, Resp any] func(ctx context.Context, host string, timeout time.Duration, op Operation, payload Req) (Resp, error)

// Client executes operations against the redundant host pool for one
// application ID. Construct it with New; the zero value is not usable.
//
// Clients are safe for concurrent use. Two clients constructed for the same
// application ID share one host cursor (unless a private HostStateStore is
// injected), so a host discovered down by one client is skipped by the other.
type Client[Req, Resp any] struct {
	appID      string
	apiKey     string
	transport  Transport[Req, Resp]
	store      HostStateStore
	classifier ErrorClassifier
	timeouts   TimeoutPolicy
	logger     *slog.Logger
	domains    domainSet
	retryDelay time.Duration
	stats      *requestStats
}

// New creates a Client for the given application ID and API credential.
// It fails synchronously when appID or apiKey is empty, or when transport is
// nil; these are caller bugs and are never retried.
//
// Example:
//
//	client, err := retryhost.New("MYAPP", apiKey, transport,
//	    retryhost.WithBaseTimeout(5*time.Second),
//	)
func New[Req, Resp any](appID, apiKey string, transport Transport[Req, Resp], opts ...Option) (*Client[Req, Resp], error) {
	switch {
	case appID == "":
		return nil, ErrMissingAppID
	case apiKey == "":
		return nil, ErrMissingAPIKey
	case transport == nil:
		return nil, ErrMissingTransport
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ErrorClassifier == nil {
		config.ErrorClassifier = DefaultErrorClassifier()
	}
	if config.Store == nil {
		config.Store = DefaultHostStateStore()
	}
	if config.TimeoutPolicy == nil {
		config.TimeoutPolicy = LinearTimeoutPolicy(config.BaseTimeout)
	}

	return &Client[Req, Resp]{
		appID:      appID,
		apiKey:     apiKey,
		transport:  transport,
		store:      config.Store,
		classifier: config.ErrorClassifier,
		timeouts:   config.TimeoutPolicy,
		logger:     config.Logger,
		domains:    domainSet{search: config.SearchDomain, fallback: config.FallbackDomain},
		retryDelay: config.RetryDelay,
		stats:      &requestStats{},
	}, nil
}

// AppID returns the application ID this client was constructed for.
func (c *Client[Req, Resp]) AppID() string {
	return c.appID
}

// APIKey returns the credential this client was constructed with. Transports
// that sign requests read it from here rather than capturing it separately.
func (c *Client[Req, Resp]) APIKey() string {
	return c.apiKey
}
