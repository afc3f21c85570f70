// Package clock abstracts wall-clock time so row timestamps are injectable
// in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewSystem returns the production UTC wall clock.
func NewSystem() Clock { return systemClock{} }
