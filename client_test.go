package retryhost_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	retryhost "github.com/searchkit/retryhost"
)

// mockTransport records every attempt it receives and delegates to fn.
type mockTransport struct {
	mu        sync.Mutex
	fn        func(ctx context.Context, host string, timeout time.Duration, op retryhost.Operation, payload string) (string, error)
	hosts     []string
	timeouts  []time.Duration
	callCount atomic.Int32
}

func (m *mockTransport) transport(ctx context.Context, host string, timeout time.Duration, op retryhost.Operation, payload string) (string, error) {
	m.callCount.Add(1)
	m.mu.Lock()
	m.hosts = append(m.hosts, host)
	m.timeouts = append(m.timeouts, timeout)
	m.mu.Unlock()
	return m.fn(ctx, host, timeout, op, payload)
}

func (m *mockTransport) getCallCount() int {
	return int(m.callCount.Load())
}

func (m *mockTransport) seenHosts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.hosts...)
}

func (m *mockTransport) seenTimeouts() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.timeouts...)
}

// quietLogger keeps test output clean.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

var _ = Describe("New", func() {
	var mock *mockTransport

	BeforeEach(func() {
		mock = &mockTransport{}
		mock.fn = func(ctx context.Context, host string, timeout time.Duration, op retryhost.Operation, payload string) (string, error) {
			return "ok", nil
		}
	})

	It("creates a client with default config", func() {
		client, err := retryhost.New("APP", "key", mock.transport)
		Expect(err).NotTo(HaveOccurred())
		Expect(client).NotTo(BeNil())
		Expect(client.AppID()).To(Equal("APP"))
		Expect(client.APIKey()).To(Equal("key"))
		Expect(client.PoolSize()).To(Equal(4))
	})

	It("creates a client with custom options", func() {
		client, err := retryhost.New("APP", "key", mock.transport,
			retryhost.WithBaseTimeout(5*time.Second),
			retryhost.WithDomains("search.internal", "fallback.internal"),
			retryhost.WithHostStateStore(retryhost.NewMemoryHostStateStore()),
			retryhost.WithLogger(quietLogger()),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(client).NotTo(BeNil())
	})

	Context("invalid configuration", func() {
		It("rejects an empty application ID", func() {
			client, err := retryhost.New("", "key", mock.transport)
			Expect(err).To(MatchError(retryhost.ErrMissingAppID))
			Expect(client).To(BeNil())
		})

		It("rejects an empty API key", func() {
			client, err := retryhost.New("APP", "", mock.transport)
			Expect(err).To(MatchError(retryhost.ErrMissingAPIKey))
			Expect(client).To(BeNil())
		})

		It("rejects a nil transport", func() {
			client, err := retryhost.New[string, string]("APP", "key", nil)
			Expect(err).To(MatchError(retryhost.ErrMissingTransport))
			Expect(client).To(BeNil())
		})

		It("fails before any request is possible", func() {
			_, err := retryhost.New[string, string]("", "", nil)
			Expect(err).To(HaveOccurred())
			Expect(mock.getCallCount()).To(Equal(0))
		})
	})
})
