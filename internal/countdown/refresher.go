package countdown

import (
	"sync"
	"time"
)

const refreshInterval = 24 * time.Hour

// Timer is a trigger that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock is the time source a Refresher schedules on.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock schedules on the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Every(d time.Duration, f func()) Timer {
	t := &interval{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				f()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type interval struct {
	ticker *time.Ticker
	once   sync.Once
	done   chan struct{}
}

func (t *interval) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}

// Refresher calls fn at the next local midnight and every 24h after that.
type Refresher struct {
	clock Clock
	fn    func(now time.Time)

	mu       sync.Mutex
	deferred Timer
	repeat   Timer
	running  bool
	gen      uint64 // bumped by every Start; callbacks from older runs are ignored
}

func NewRefresher(clock Clock, fn func(now time.Time)) *Refresher {
	if clock == nil {
		clock = SystemClock()
	}
	return &Refresher{clock: clock, fn: fn}
}

// Start arms the deferred midnight trigger. Calling Start on a running
// Refresher does nothing.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.gen++
	gen := r.gen
	now := r.clock.Now()
	r.deferred = r.clock.AfterFunc(NextMidnight(now).Sub(now), func() { r.fireMidnight(gen) })
}

func (r *Refresher) current(gen uint64) bool {
	return r.running && r.gen == gen
}

func (r *Refresher) fireMidnight(gen uint64) {
	r.mu.Lock()
	if !r.current(gen) {
		r.mu.Unlock()
		return
	}
	r.deferred = nil
	r.repeat = r.clock.Every(refreshInterval, func() { r.fireInterval(gen) })
	r.mu.Unlock()

	r.fn(r.clock.Now())
}

func (r *Refresher) fireInterval(gen uint64) {
	r.mu.Lock()
	current := r.current(gen)
	r.mu.Unlock()
	if current {
		r.fn(r.clock.Now())
	}
}

// Stop clears whichever trigger is armed. It is safe to call more than once.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if r.deferred != nil {
		r.deferred.Stop()
		r.deferred = nil
	}
	if r.repeat != nil {
		r.repeat.Stop()
		r.repeat = nil
	}
}

// Running reports whether a trigger is armed.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
