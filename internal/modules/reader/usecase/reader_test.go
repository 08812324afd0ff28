package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readenvy/internal/modules/reader/domain"
	"readenvy/internal/modules/reader/dto"
	readerin "readenvy/internal/modules/reader/port/in"
	readerout "readenvy/internal/modules/reader/port/out"
	"readenvy/internal/modules/reader/service"
	"readenvy/internal/modules/reader/usecase"
	apperrors "readenvy/internal/platform/errors"
)

type fakeResolver struct {
	books map[string]domain.BookRef
}

func (r fakeResolver) Resolve(_ context.Context, id string) (domain.BookRef, error) {
	b, ok := r.books[id]
	if !ok {
		return domain.BookRef{}, fmt.Errorf("%w: book %s", apperrors.ErrNotFound, id)
	}
	return b, nil
}

type fakeDoc struct {
	pages   int
	outline []domain.OutlineEntry
	closed  *int
}

func (d fakeDoc) PageCount() int { return d.pages }

func (d fakeDoc) PageText(n int) (string, error) { return fmt.Sprintf("text of page %d", n), nil }

func (d fakeDoc) Outline() ([]domain.OutlineEntry, error) { return d.outline, nil }

func (d fakeDoc) Close() error {
	*d.closed++
	return nil
}

type fakeRenderer struct {
	mu     sync.Mutex
	opens  int
	closed int
	err    error
}

func (r *fakeRenderer) Open(context.Context, string) (readerout.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.opens++
	return fakeDoc{
		pages:   10,
		outline: []domain.OutlineEntry{{Title: "Intro", Page: 1, Children: []domain.OutlineEntry{{Title: "Scope", Page: 2}}}},
		closed:  &r.closed,
	}, nil
}

type recorded struct {
	bookID   string
	page     int
	duration int
}

type fakeProgress struct {
	mu    sync.Mutex
	calls []recorded
	err   error
}

func (p *fakeProgress) Record(_ context.Context, bookID string, page, duration int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, p.err
	}
	p.calls = append(p.calls, recorded{bookID: bookID, page: page, duration: duration})
	return page * 10, nil
}

func (p *fakeProgress) snapshot() []recorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recorded(nil), p.calls...)
}

type fakeGoals struct {
	mu        sync.Mutex
	refreshes int
}

func (g *fakeGoals) Refresh(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refreshes++
	return nil
}

func (g *fakeGoals) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refreshes
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	uc       readerin.Usecase
	renderer *fakeRenderer
	progress *fakeProgress
	goals    *fakeGoals
	clock    *stepClock
}

func newHarness(delay time.Duration) harness {
	h := harness{
		renderer: &fakeRenderer{},
		progress: &fakeProgress{},
		goals:    &fakeGoals{},
		clock:    &stepClock{now: time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)},
	}
	books := fakeResolver{books: map[string]domain.BookRef{
		"b1": {ID: "b1", Title: "Dune", FilePath: "/books/dune.pdf", TotalPages: 10, CurrentPage: 4, PercentComplete: 40},
		"b2": {ID: "b2", Title: "No File", TotalPages: 3},
	}}
	h.uc = usecase.NewInteractor(
		service.NewReaderService(books, h.renderer, nil),
		service.NewTracker(h.clock, h.progress, h.goals, delay, nil),
	)
	return h
}

func TestOpenResumesAndCachesDocument(t *testing.T) {
	t.Parallel()
	h := newHarness(time.Hour)
	ctx := context.Background()

	view, err := h.uc.Open(ctx, dto.OpenInput{BookID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Page)
	assert.Equal(t, 10, view.TotalPages)
	assert.Equal(t, "text of page 4", view.Text)
	assert.Equal(t, 40, view.Percent)
	assert.Equal(t, []dto.HeadingOutput{{Title: "Intro", Page: 1}, {Title: "Scope", Page: 2, Depth: 1}}, view.Outline)
	assert.Equal(t, "- Intro (p. 1)\n  - Scope (p. 2)\n", view.OutlineMarkdown)

	view, err = h.uc.Open(ctx, dto.OpenInput{BookID: "b1", Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 10, view.Page)
	assert.Equal(t, 1, h.renderer.opens)

	require.NoError(t, h.uc.Close(ctx, "b1"))
	assert.Equal(t, 1, h.renderer.closed)
	require.NoError(t, h.uc.Close(ctx, "b1"))
	assert.Equal(t, 1, h.renderer.closed)
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()
	h := newHarness(time.Hour)
	ctx := context.Background()

	_, err := h.uc.Open(ctx, dto.OpenInput{BookID: " "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = h.uc.Open(ctx, dto.OpenInput{BookID: "missing"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = h.uc.Open(ctx, dto.OpenInput{BookID: "b2"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	h.renderer.err = errors.New("malformed pdf")
	_, err = h.uc.Open(ctx, dto.OpenInput{BookID: "b1"})
	require.ErrorContains(t, err, "malformed pdf")
}

func TestPageChangesCoalesceToLastPage(t *testing.T) {
	t.Parallel()
	h := newHarness(30 * time.Millisecond)
	commits := make(chan dto.CommitOutput, 4)
	h.uc.OnCommit(func(c dto.CommitOutput) { commits <- c })

	for page := 5; page <= 9; page++ {
		h.uc.PageChanged("b1", page)
	}

	select {
	case c := <-commits:
		assert.Equal(t, "b1", c.BookID)
		assert.Equal(t, 9, c.Page)
		assert.Equal(t, 90, c.Percent)
		assert.NoError(t, c.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no commit")
	}
	assert.Equal(t, []recorded{{bookID: "b1", page: 9}}, h.progress.snapshot())
	assert.Equal(t, 1, h.goals.count())
}

func TestFlushCreditsElapsedTime(t *testing.T) {
	t.Parallel()
	h := newHarness(time.Hour)
	ctx := context.Background()

	_, err := h.uc.Open(ctx, dto.OpenInput{BookID: "b1"})
	require.NoError(t, err)
	h.clock.advance(90 * time.Second)
	h.uc.PageChanged("b1", 5)
	h.uc.Flush("b1")

	h.clock.advance(3 * time.Hour)
	h.uc.PageChanged("b1", 6)
	require.NoError(t, h.uc.CloseAll(ctx))

	assert.Equal(t, []recorded{
		{bookID: "b1", page: 5, duration: 90},
		{bookID: "b1", page: 6, duration: int(service.MaxIdle / time.Second)},
	}, h.progress.snapshot())
	assert.Equal(t, 2, h.goals.count())
}

func TestStopDropsPendingWrites(t *testing.T) {
	t.Parallel()
	h := newHarness(time.Hour)

	h.uc.PageChanged("b1", 5)
	h.uc.Stop()
	h.uc.FlushAll()

	assert.Empty(t, h.progress.snapshot())
	assert.Zero(t, h.goals.count())
}

func TestFailedRecordSkipsGoalRefresh(t *testing.T) {
	t.Parallel()
	h := newHarness(time.Hour)
	h.progress.err = apperrors.ErrStoreFailure
	var got dto.CommitOutput
	h.uc.OnCommit(func(c dto.CommitOutput) { got = c })

	h.uc.PageChanged("b1", 3)
	h.uc.Flush("b1")

	require.ErrorIs(t, got.Err, apperrors.ErrStoreFailure)
	assert.Zero(t, h.goals.count())
}
