package main

import (
	"context"
	"sync"
	"time"

	"github.com/Thiht/transactor"
	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/benjamonnguyen/pomomo-tui/cmd/pomomo/models"
	"github.com/charmbracelet/log"
)

const notifyTimeout = 10 * time.Second

// completionEffects fans a finished interval out to the collaborators that
// live outside the timer: sound, remote notifiers and the history journal.
// Each runs on its own goroutine; failures are logged and dropped.
type completionEffects struct {
	player    audioPlayer
	notifiers []pomomo.Notifier
	history   pomomo.HistoryRepo
	tx        transactor.Transactor

	parentCtx context.Context
	wg        sync.WaitGroup
	l         *log.Logger
	now       func() time.Time
}

func newCompletionEffects(ctx context.Context, logger *log.Logger) *completionEffects {
	return &completionEffects{
		parentCtx: ctx,
		l:         logger,
		now:       time.Now,
	}
}

func (e *completionEffects) WithPlayer(p audioPlayer) *completionEffects {
	e.player = p
	return e
}

func (e *completionEffects) WithNotifier(n pomomo.Notifier) *completionEffects {
	e.notifiers = append(e.notifiers, n)
	return e
}

func (e *completionEffects) WithHistory(repo pomomo.HistoryRepo, tx transactor.Transactor) *completionEffects {
	e.history = repo
	e.tx = tx
	return e
}

func (e *completionEffects) Dispatch(c models.Completion) {
	completedAt := e.now()
	n := pomomo.Notification{
		Message:                c.Message,
		Finished:               c.Finished,
		Next:                   c.Next,
		CompletedWorkIntervals: c.CompletedWorkIntervals,
		Sound:                  c.Sound,
	}
	e.l.Info("interval complete", "finished", c.Finished, "next", c.Next, "completed", c.CompletedWorkIntervals, "autoStarted", c.AutoStarted)

	if e.player != nil && c.Sound != pomomo.NoSound {
		e.wg.Go(func() {
			if err := e.player.Play(c.Sound); err != nil {
				e.l.Error("failed to play notification sound", "sound", c.Sound, "err", err)
			}
		})
	}

	for _, notifier := range e.notifiers {
		e.wg.Go(func() {
			ctx, cancel := context.WithTimeout(e.parentCtx, notifyTimeout)
			defer cancel()
			if err := notifier.Notify(ctx, n); err != nil {
				e.l.Error("failed to send notification", "finished", n.Finished, "err", err)
			}
		})
	}

	if e.history != nil {
		record := pomomo.IntervalRecord{
			Mode:                   c.Finished,
			Planned:                c.Planned,
			CompletedAt:            completedAt,
			CompletedWorkIntervals: c.CompletedWorkIntervals,
		}
		e.wg.Go(func() {
			ctx, cancel := context.WithTimeout(e.parentCtx, notifyTimeout)
			defer cancel()
			err := e.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				_, err := e.history.InsertInterval(ctx, record)
				return err
			})
			if err != nil {
				e.l.Error("failed to record interval", "mode", record.Mode, "err", err)
			}
		})
	}
}

// Shutdown waits for in-flight effects until ctx is done.
func (e *completionEffects) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
