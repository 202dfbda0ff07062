package retryhost

import "sync"

// HostStateStore is the single source of truth for "which host to try next"
// per application ID. All three operations must be atomic with respect to
// each other: a Cursor read observes either a fully applied Advance/Reset or
// none, never a partial update.
//
// Implementations must be safe for concurrent use by multiple clients and
// multiple in-flight requests.
type HostStateStore interface {
	// Cursor returns the current cursor for appID, 0 if absent.
	Cursor(appID string) int

	// Advance atomically increments the cursor for appID by one and returns
	// the new value.
	Advance(appID string) int

	// Reset atomically sets the cursor for appID back to zero.
	Reset(appID string)
}

// MemoryHostStateStore implements HostStateStore with an in-memory map.
// Entries are created lazily on first Advance and live for the process
// lifetime; nothing is persisted.
type MemoryHostStateStore struct {
	mu      sync.RWMutex
	cursors map[string]int
}

// NewMemoryHostStateStore creates an empty in-memory host-state store.
func NewMemoryHostStateStore() *MemoryHostStateStore {
	return &MemoryHostStateStore{
		cursors: make(map[string]int),
	}
}

// Cursor returns the current cursor for appID, defaulting to 0.
func (s *MemoryHostStateStore) Cursor(appID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cursors[appID]
}

// Advance increments the cursor for appID and returns the new value.
func (s *MemoryHostStateStore) Advance(appID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[appID]++
	return s.cursors[appID]
}

// Reset sets the cursor for appID back to zero.
func (s *MemoryHostStateStore) Reset(appID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cursors, appID)
}

// defaultStore is the process-wide store shared by every client that does not
// inject its own. It is what makes two independently constructed clients for
// the same application ID observe one cursor.
var defaultStore = NewMemoryHostStateStore()

// DefaultHostStateStore returns the process-wide shared host-state store.
func DefaultHostStateStore() HostStateStore {
	return defaultStore
}
