package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/maxsrimongkol-lgtm/study-buddy/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current local time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Useful in tests and for replaying a board at a given time.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c *FixedClock) Now() time.Time {
	return c.At
}
