package admission

import "time"

// Clock provides the current time. Tests inject a deterministic
// implementation to control refill arithmetic.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
