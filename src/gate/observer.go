package gate

import "time"

// Progress is one non-terminal poll observation.
type Progress struct {
	RunID      int64
	Status     string
	Conclusion string
	Elapsed    time.Duration
}

// Observer receives one call per non-terminal poll iteration.
type Observer interface {
	PollObserved(p Progress)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Progress)

func (f ObserverFunc) PollObserved(p Progress) { f(p) }

// NopObserver discards all observations.
func NopObserver() Observer {
	return ObserverFunc(func(Progress) {})
}

// MultiObserver fans each observation out to all given observers in order.
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(p Progress) {
		for _, o := range observers {
			o.PollObserved(p)
		}
	})
}
