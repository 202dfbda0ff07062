package retryhost

import (
	"log/slog"
	"time"
)

// Config holds client configuration options.
type Config struct {
	// ErrorClassifier determines which transport errors trigger host
	// rotation and retry.
	// Default: ReasonClassifier with network, server, and timeout retryable
	ErrorClassifier ErrorClassifier

	// Store holds the host cursor shared across clients for the same
	// application ID.
	// Default: the process-wide store returned by DefaultHostStateStore
	Store HostStateStore

	// TimeoutPolicy computes the per-attempt timeout. When nil, a linear
	// policy derived from BaseTimeout is used.
	TimeoutPolicy TimeoutPolicy

	// Logger for request and retry operations.
	// Default: slog.Default()
	Logger *slog.Logger

	// SearchDomain is the domain suffix of the primary hosts.
	// Default: "algolia.net"
	SearchDomain string

	// FallbackDomain is the domain suffix of the shared fallback hosts.
	// Default: "algolianet.com"
	FallbackDomain string

	// BaseTimeout is the timeout of attempt 0. Later attempts within the
	// same logical request escalate from this value; every new logical
	// request starts again from it.
	// Default: 2 seconds
	BaseTimeout time.Duration

	// RetryDelay is the pause before rotating to the next host after a
	// retryable failure. The default is zero: timeout escalation, not
	// backoff sleep, is the pacing mechanism for host rotation.
	RetryDelay time.Duration
}

// Option is a functional option for configuring a Client.
type Option func(*Config)

// WithBaseTimeout sets the timeout of the first attempt of every logical
// request.
//
// Example:
//
//	retryhost.WithBaseTimeout(5 * time.Second)
func WithBaseTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.BaseTimeout = d
	}
}

// WithTimeoutPolicy replaces the per-attempt timeout computation entirely.
// The policy must be strictly increasing in the attempt index.
//
// Example:
//
//	retryhost.WithTimeoutPolicy(func(attempt int) time.Duration {
//	    return time.Second << attempt // 1s, 2s, 4s, 8s
//	})
func WithTimeoutPolicy(policy TimeoutPolicy) Option {
	return func(c *Config) {
		c.TimeoutPolicy = policy
	}
}

// WithErrorClassifier sets a custom error classifier for retry decisions.
//
// Example:
//
//	classifier := &MyCustomClassifier{}
//	retryhost.WithErrorClassifier(classifier)
func WithErrorClassifier(classifier ErrorClassifier) Option {
	return func(c *Config) {
		c.ErrorClassifier = classifier
	}
}

// WithHostStateStore injects a private host-state store, isolating this
// client's cursor from the process-wide one. Mainly useful in tests and when
// embedding multiple independent client universes in one process.
//
// Example:
//
//	store := retryhost.NewMemoryHostStateStore()
//	retryhost.WithHostStateStore(store)
func WithHostStateStore(store HostStateStore) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithDomains overrides the domain suffixes used for host-name derivation.
// search is the suffix of the primary hosts, fallback the suffix of the
// shared fallback hosts.
//
// Example:
//
//	retryhost.WithDomains("search.internal", "search-fallback.internal")
func WithDomains(search, fallback string) Option {
	return func(c *Config) {
		c.SearchDomain = search
		c.FallbackDomain = fallback
	}
}

// WithRetryDelay sets a fixed pause before each host rotation.
//
// Example:
//
//	retryhost.WithRetryDelay(50 * time.Millisecond)
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

// WithLogger sets a custom logger for request operations.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	retryhost.WithLogger(logger)
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns client configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseTimeout:     2 * time.Second,
		SearchDomain:    DefaultSearchDomain,
		FallbackDomain:  DefaultFallbackDomain,
		ErrorClassifier: DefaultErrorClassifier(),
		Store:           DefaultHostStateStore(),
		Logger:          slog.Default(),
	}
}
