package breaker

import "time"

// Metrics is a snapshot of breaker activity. TotalRequests counts only calls
// that reached the protected operation; rejected calls are not included.
type Metrics struct {
	// TotalRequests is the number of admitted calls
	TotalRequests int64

	// SuccessfulRequests is the number of admitted calls that succeeded
	SuccessfulRequests int64

	// FailedRequests is the number of admitted calls that failed
	FailedRequests int64

	// OpenStateCount is the number of entries into OPEN
	OpenStateCount int64

	// HalfOpenStateCount is the number of entries into HALF_OPEN
	HalfOpenStateCount int64

	// StateTransitions is the total number of state transitions
	StateTransitions int64

	// LastFailureTime is the time of the most recent failure (zero if none)
	LastFailureTime time.Time

	// LastSuccessTime is the time of the most recent success (zero if none)
	LastSuccessTime time.Time
}

// SuccessRate returns successful/total, or 0 when no calls were admitted
func (m Metrics) SuccessRate() float64 {
	if m.TotalRequests == 0 {
		return 0
	}
	return float64(m.SuccessfulRequests) / float64(m.TotalRequests)
}

// FailureRate returns failed/total, or 0 when no calls were admitted
func (m Metrics) FailureRate() float64 {
	if m.TotalRequests == 0 {
		return 0
	}
	return float64(m.FailedRequests) / float64(m.TotalRequests)
}
