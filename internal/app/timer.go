package app

import (
	"sync"
	"time"
)

// DefaultTickInterval is how often the live elapsed time refreshes.
const DefaultTickInterval = time.Second

// Tick is delivered to the display observer while a quiz is in progress.
type Tick struct {
	ElapsedSeconds int       `json:"elapsedSeconds"`
	Elapsed        string    `json:"elapsed"`
	At             time.Time `json:"-"`
}

// displayTimer runs a periodic tick in its own goroutine until stopped.
type displayTimer struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func startDisplayTimer(interval time.Duration, fire func(time.Time)) *displayTimer {
	t := &displayTimer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer close(t.done)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case now := <-ticker.C:
				// stop may race with a pending tick; prefer stopping.
				select {
				case <-t.stop:
					return
				default:
				}
				fire(now)
			}
		}
	}()
	return t
}

// Stop signals the goroutine and returns without waiting, so it is safe to call
// from inside a tick observer or while holding the session lock.
func (t *displayTimer) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed once the goroutine has exited.
func (t *displayTimer) Done() <-chan struct{} {
	return t.done
}
