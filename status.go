package retryhost

// HostStatus is a snapshot of the shared host-rotation state for one
// application ID. It provides a strongly-typed view for health endpoints and
// diagnostics without exposing the store itself.
type HostStatus struct {
	// AppID is the application ID the snapshot describes.
	AppID string `json:"app_id"`

	// Cursor is the raw shared cursor value; the effective pool position is
	// Cursor modulo PoolSize.
	Cursor int `json:"cursor"`

	// PoolSize is the number of candidate hosts per operation.
	PoolSize int `json:"pool_size"`

	// OnPrimary indicates whether the next request will target the primary
	// host, i.e. no fallback is currently in effect.
	OnPrimary bool `json:"on_primary"`

	// NextReadHost is the host the next read request will target.
	NextReadHost string `json:"next_read_host"`

	// NextWriteHost is the host the next write request will target.
	NextWriteHost string `json:"next_write_host"`
}

// HostStatus returns a snapshot of the shared host-rotation state as this
// client currently observes it. Because the cursor is shared, the snapshot
// can be stale by the time it is read; it is informational only.
func (c *Client[Req, Resp]) HostStatus() HostStatus {
	cursor := c.store.Cursor(c.appID)
	size := numFallbackHosts + 1
	pos := cursor % size

	return HostStatus{
		AppID:         c.appID,
		Cursor:        cursor,
		PoolSize:      size,
		OnPrimary:     pos == 0,
		NextReadHost:  hostPool(c.appID, OperationRead, c.domains)[pos],
		NextWriteHost: hostPool(c.appID, OperationWrite, c.domains)[pos],
	}
}
