package main

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Thiht/transactor"
	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/benjamonnguyen/pomomo-tui/cmd/pomomo/models"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransactor is a mock implementation of transactor.Transactor
type mockTransactor struct {
	withinTransactionFunc func(context.Context, func(context.Context) error) error
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if m.withinTransactionFunc != nil {
		return m.withinTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

var _ transactor.Transactor = (*mockTransactor)(nil)

type mockPlayer struct {
	mu     sync.Mutex
	played []pomomo.NotificationSound
	err    error
}

func (p *mockPlayer) Play(s pomomo.NotificationSound) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, s)
	return p.err
}

func (p *mockPlayer) Close() {}

type mockNotifier struct {
	mu    sync.Mutex
	sent  []pomomo.Notification
	block chan struct{}
	err   error
}

func (n *mockNotifier) Notify(ctx context.Context, notification pomomo.Notification) error {
	if n.block != nil {
		select {
		case <-n.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return n.err
}

type mockHistoryRepo struct {
	fakeHistory
	mu       sync.Mutex
	inserted []pomomo.IntervalRecord
	err      error
}

func (r *mockHistoryRepo) InsertInterval(_ context.Context, rec pomomo.IntervalRecord) (pomomo.ExistingIntervalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return pomomo.ExistingIntervalRecord{}, r.err
	}
	r.inserted = append(r.inserted, rec)
	return pomomo.ExistingIntervalRecord{IntervalRecord: rec}, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func workCompletion() models.Completion {
	return models.Completion{
		Finished:               pomomo.WorkMode,
		Next:                   pomomo.ShortBreakMode,
		Planned:                25 * time.Minute,
		Message:                "Time for your break!",
		Sound:                  pomomo.ChimeSound,
		CompletedWorkIntervals: 1,
		Switched:               true,
	}
}

func TestCompletionEffects_Dispatch(t *testing.T) {
	t.Parallel()

	completedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	player := &mockPlayer{}
	notifier := &mockNotifier{}
	repo := &mockHistoryRepo{}
	var txCalls int
	tx := &mockTransactor{
		withinTransactionFunc: func(ctx context.Context, fn func(context.Context) error) error {
			txCalls++
			return fn(ctx)
		},
	}

	e := newCompletionEffects(context.Background(), testLogger()).
		WithPlayer(player).
		WithNotifier(notifier).
		WithHistory(repo, tx)
	e.now = func() time.Time { return completedAt }

	e.Dispatch(workCompletion())
	require.NoError(t, e.Shutdown(context.Background()))

	assert.Equal(t, []pomomo.NotificationSound{pomomo.ChimeSound}, player.played)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, pomomo.Notification{
		Message:                "Time for your break!",
		Finished:               pomomo.WorkMode,
		Next:                   pomomo.ShortBreakMode,
		CompletedWorkIntervals: 1,
		Sound:                  pomomo.ChimeSound,
	}, notifier.sent[0])
	assert.Equal(t, 1, txCalls)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, pomomo.IntervalRecord{
		Mode:                   pomomo.WorkMode,
		Planned:                25 * time.Minute,
		CompletedAt:            completedAt,
		CompletedWorkIntervals: 1,
	}, repo.inserted[0])
}

func TestCompletionEffects_SilentSound(t *testing.T) {
	t.Parallel()

	player := &mockPlayer{}
	e := newCompletionEffects(context.Background(), testLogger()).WithPlayer(player)
	c := workCompletion()
	c.Sound = pomomo.NoSound
	e.Dispatch(c)
	require.NoError(t, e.Shutdown(context.Background()))
	assert.Empty(t, player.played)
}

func TestCompletionEffects_FailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	player := &mockPlayer{err: boom}
	failing := &mockNotifier{err: boom}
	ok := &mockNotifier{}
	repo := &mockHistoryRepo{err: boom}

	e := newCompletionEffects(context.Background(), testLogger()).
		WithPlayer(player).
		WithNotifier(failing).
		WithNotifier(ok).
		WithHistory(repo, &mockTransactor{})

	assert.NotPanics(t, func() { e.Dispatch(workCompletion()) })
	require.NoError(t, e.Shutdown(context.Background()))
	assert.Len(t, failing.sent, 1)
	assert.Len(t, ok.sent, 1)
	assert.Empty(t, repo.inserted)
}

func TestCompletionEffects_ShutdownTimeout(t *testing.T) {
	t.Parallel()

	notifier := &mockNotifier{block: make(chan struct{})}
	e := newCompletionEffects(context.Background(), testLogger()).WithNotifier(notifier)
	e.Dispatch(workCompletion())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, e.Shutdown(ctx), context.DeadlineExceeded)

	close(notifier.block)
	require.NoError(t, e.Shutdown(context.Background()))
	assert.Len(t, notifier.sent, 1)
}
