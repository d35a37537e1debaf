package gate

import "time"

// Clock abstracts wall-clock reads and sleeping so the poll loop's timeout
// boundary can be tested without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock {
	return systemClock{}
}
