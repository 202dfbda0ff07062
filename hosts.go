package retryhost

import "fmt"

// Default domain suffixes for host-name derivation.
const (
	// DefaultSearchDomain is the suffix of the primary hosts.
	DefaultSearchDomain = "algolia.net"

	// DefaultFallbackDomain is the suffix of the shared fallback hosts.
	DefaultFallbackDomain = "algolianet.com"
)

// numFallbackHosts is the number of fallback hosts after the primary. The
// pool size is therefore numFallbackHosts+1, which also bounds the retry
// loop of a single logical request.
const numFallbackHosts = 3

// domainSet carries the two domain suffixes host names are derived from.
type domainSet struct {
	search   string
	fallback string
}

// hostPool derives the ordered candidate hosts for one (appID, op) pair.
// Position 0 is the operation-specific primary; positions 1..3 are fallbacks
// shared by both operation kinds, so the shared cursor treats a fallback
// found down during a write as down for a following read too.
//
// The derivation is fixed:
//
//	read primary:  {appID}-dsn.{search}
//	write primary: {appID}.{search}
//	fallback i:    {appID}-{i}.{fallback}
func hostPool(appID string, op Operation, domains domainSet) []string {
	pool := make([]string, 0, numFallbackHosts+1)

	if op == OperationRead {
		pool = append(pool, fmt.Sprintf("%s-dsn.%s", appID, domains.search))
	} else {
		pool = append(pool, fmt.Sprintf("%s.%s", appID, domains.search))
	}

	for i := 1; i <= numFallbackHosts; i++ {
		pool = append(pool, fmt.Sprintf("%s-%d.%s", appID, i, domains.fallback))
	}

	return pool
}

// PoolSize returns the number of candidate hosts per operation, which is also
// the maximum number of attempts a single logical request will make.
func (c *Client[Req, Resp]) PoolSize() int {
	return numFallbackHosts + 1
}
