package retryhost

import "time"

// TimeoutPolicy computes the timeout of one attempt from its 0-based index
// within a logical request. Policies must be strictly increasing in the
// attempt index; the value at attempt 0 is the base timeout of every new
// logical request, regardless of how far a previous request escalated.
type TimeoutPolicy func(attempt int) time.Duration

// LinearTimeoutPolicy escalates linearly: attempt n gets base * (n+1).
// With the default 2s base that is 2s, 4s, 6s, 8s across a full pool sweep.
func LinearTimeoutPolicy(base time.Duration) TimeoutPolicy {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		return base * time.Duration(attempt+1)
	}
}
