package session

// Signal is the process-wide session-expired broadcast. Token expiry can be
// discovered deep inside a background fetch, far from any code that could
// react to it, so this is the one deliberate piece of global state in the
// client: constructed once at startup, subscribed to by exactly one owner
// (the top-level session holder), and alive for the whole process.
type Signal struct {
	ch chan struct{}
}

// NewSignal returns a ready-to-use signal.
func NewSignal() *Signal {
	// Capacity 1 so Fire never blocks; firings between reads coalesce.
	return &Signal{ch: make(chan struct{}, 1)}
}

// Fire notifies the subscriber that the session has been invalidated.
// Safe to call from any goroutine; never blocks.
func (s *Signal) Fire() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Expired returns the channel the single subscriber receives on.
func (s *Signal) Expired() <-chan struct{} {
	return s.ch
}
