package breaker

// slidingWindow is a fixed-capacity FIFO of recent call outcomes
// (true = success). Pushing beyond capacity evicts the oldest outcome.
// Not safe for concurrent use; the owning breaker serializes access.
type slidingWindow struct {
	outcomes []bool
	head     int // index of the oldest outcome
	count    int
}

// newSlidingWindow creates a window with the given capacity
func newSlidingWindow(capacity int) *slidingWindow {
	return &slidingWindow{
		outcomes: make([]bool, capacity),
	}
}

// push records an outcome, evicting the oldest when full
func (w *slidingWindow) push(success bool) {
	if w.count < len(w.outcomes) {
		w.outcomes[(w.head+w.count)%len(w.outcomes)] = success
		w.count++
		return
	}

	w.outcomes[w.head] = success
	w.head = (w.head + 1) % len(w.outcomes)
}

// failureCount returns the number of failures currently in the window
func (w *slidingWindow) failureCount() int {
	failures := 0
	for i := 0; i < w.count; i++ {
		if !w.outcomes[(w.head+i)%len(w.outcomes)] {
			failures++
		}
	}
	return failures
}

// size returns the number of recorded outcomes
func (w *slidingWindow) size() int {
	return w.count
}

// reset discards all recorded outcomes
func (w *slidingWindow) reset() {
	w.head = 0
	w.count = 0
}
