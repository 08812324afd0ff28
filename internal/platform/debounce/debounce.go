package debounce

import (
	"sync"
	"time"
)

// Keyed coalesces bursts of calls per key: every Trigger replaces the pending
// callback for that key and restarts its timer, so only the latest one runs.
type Keyed struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pending
}

type pending struct {
	timer *time.Timer
	fn    func()
}

func New(delay time.Duration) *Keyed {
	return &Keyed{delay: delay, pending: map[string]*pending{}}
}

func (d *Keyed) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pending{fn: fn}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(key, p) })
	d.pending[key] = p
}

// Flush runs the pending callback for key immediately, if any.
func (d *Keyed) Flush(key string) bool {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()
	if ok {
		p.fn()
	}
	return ok
}

// FlushAll runs every pending callback.
func (d *Keyed) FlushAll() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for key := range d.pending {
		keys = append(keys, key)
	}
	d.mu.Unlock()
	for _, key := range keys {
		d.Flush(key)
	}
}

// Stop cancels every pending callback without running it.
func (d *Keyed) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

func (d *Keyed) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Keyed) fire(key string, p *pending) {
	d.mu.Lock()
	current, ok := d.pending[key]
	if !ok || current != p {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()
	p.fn()
}
