package service

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	readerout "readenvy/internal/modules/reader/port/out"
	"readenvy/internal/platform/clock"
	"readenvy/internal/platform/debounce"
)

const (
	// MaxIdle caps the reading time credited to a single commit, so a reader
	// left open overnight does not count as hours of reading.
	MaxIdle = 15 * time.Minute

	commitTimeout = 10 * time.Second
)

type Commit struct {
	BookID          string
	Page            int
	DurationSeconds int
	Percent         int
	Err             error
}

// Tracker turns page turns into progress writes. Bursts of page changes for a
// book collapse into one write carrying the last page.
type Tracker struct {
	clock    clock.Clock
	progress readerout.ProgressPort
	goals    readerout.GoalsPort
	debounce *debounce.Keyed
	log      hclog.Logger

	mu       sync.Mutex
	since    map[string]time.Time
	onCommit func(Commit)
}

func NewTracker(clock clock.Clock, progress readerout.ProgressPort, goals readerout.GoalsPort, delay time.Duration, logger hclog.Logger) *Tracker {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if delay <= 0 {
		delay = time.Second
	}
	return &Tracker{
		clock:    clock,
		progress: progress,
		goals:    goals,
		debounce: debounce.New(delay),
		log:      logger.Named("tracker"),
		since:    map[string]time.Time{},
	}
}

func (t *Tracker) OnCommit(fn func(Commit)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCommit = fn
}

// Begin starts the reading clock for a book. Page changes on a book that was
// never begun start the clock themselves.
func (t *Tracker) Begin(bookID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.since[bookID]; !ok {
		t.since[bookID] = t.clock.Now()
	}
}

func (t *Tracker) PageChanged(bookID string, page int) {
	t.Begin(bookID)
	t.debounce.Trigger(bookID, func() { t.commit(bookID, page) })
}

func (t *Tracker) Flush(bookID string) {
	t.debounce.Flush(bookID)
}

func (t *Tracker) FlushAll() {
	t.debounce.FlushAll()
}

// Stop drops pending writes without running them.
func (t *Tracker) Stop() {
	t.debounce.Stop()
}

func (t *Tracker) Pending() int {
	return t.debounce.Pending()
}

func (t *Tracker) commit(bookID string, page int) {
	now := t.clock.Now()
	t.mu.Lock()
	elapsed := now.Sub(t.since[bookID])
	t.since[bookID] = now
	notify := t.onCommit
	t.mu.Unlock()

	if elapsed < 0 {
		elapsed = 0
	}
	elapsed = min(elapsed, MaxIdle)
	c := Commit{BookID: bookID, Page: page, DurationSeconds: int(elapsed / time.Second)}

	ctx, cancel := context.WithTimeout(context.Background(), commitTimeout)
	defer cancel()
	c.Percent, c.Err = t.progress.Record(ctx, bookID, page, c.DurationSeconds)
	if c.Err != nil {
		t.log.Error("record progress failed", "book", bookID, "page", page, "error", c.Err)
	} else if err := t.goals.Refresh(ctx); err != nil {
		c.Err = err
		t.log.Error("refresh goals failed", "book", bookID, "error", err)
	}
	if notify != nil {
		notify(c)
	}
}
