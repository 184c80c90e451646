// Package clock provides an injectable time source so that expiry
// decisions can be simulated in tests instead of sleeping.
package clock

import "time"

// Clock abstracts time.Now for the booking engine.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.  All timestamps are
// normalized to UTC to keep expiry comparisons consistent.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always reports the same instant.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
