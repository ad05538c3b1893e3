package services

import (
	"sync"
	"time"
)

// PointsDebouncer collapses bursts of point edits to the same username into
// a single write once the edits go quiet for the configured interval.
// Distinct usernames debounce independently; the last value in a burst wins.
type PointsDebouncer struct {
	mu       sync.Mutex
	interval time.Duration
	flush    func(login string, points int)
	timers   map[string]*time.Timer
	pending  map[string]int
}

func NewPointsDebouncer(interval time.Duration, flush func(login string, points int)) *PointsDebouncer {
	return &PointsDebouncer{
		interval: interval,
		flush:    flush,
		timers:   make(map[string]*time.Timer),
		pending:  make(map[string]int),
	}
}

// Schedule records a point edit for a username and (re)arms its timer.
func (d *PointsDebouncer) Schedule(login string, points int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[login] = points

	if timer, ok := d.timers[login]; ok {
		timer.Reset(d.interval)
		return
	}

	d.timers[login] = time.AfterFunc(d.interval, func() {
		d.fire(login)
	})
}

// fire flushes the pending value for a username and drops its timer
func (d *PointsDebouncer) fire(login string) {
	d.mu.Lock()
	points, ok := d.pending[login]
	delete(d.pending, login)
	delete(d.timers, login)
	d.mu.Unlock()

	if ok {
		d.flush(login, points)
	}
}

// Flush forces out every pending edit immediately. Used on shutdown.
func (d *PointsDebouncer) Flush() {
	d.mu.Lock()
	pending := d.pending
	d.pending = make(map[string]int)
	for login, timer := range d.timers {
		timer.Stop()
		delete(d.timers, login)
	}
	d.mu.Unlock()

	for login, points := range pending {
		d.flush(login, points)
	}
}
