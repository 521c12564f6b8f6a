// Package models helps control struct access and mutation
package models

import (
	"time"

	"github.com/benjamonnguyen/pomomo-tui"
)

// Completion describes a finished interval and what the timer did next.
type Completion struct {
	Finished               pomomo.Mode
	Next                   pomomo.Mode
	Planned                time.Duration
	Message                string
	Sound                  pomomo.NotificationSound
	CompletedWorkIntervals int
	Switched               bool
	AutoStarted            bool
}

// Timer is the countdown and mode state machine. It is not safe for
// concurrent use; the UI event loop is its only writer.
type Timer struct {
	settings  pomomo.Settings
	mode      pomomo.Mode
	remaining int
	running   bool
	stats     TimerStats
}

type TimerStats struct {
	CompletedWorkIntervals int
}

func NewTimer(settings pomomo.Settings) Timer {
	t := Timer{
		settings: settings.Clone(),
		mode:     pomomo.WorkMode,
	}
	t.remaining = t.settings.Durations.Seconds(t.mode)
	return t
}

func (t Timer) Mode() pomomo.Mode {
	return t.mode
}

func (t Timer) Remaining() int {
	return t.remaining
}

func (t Timer) IsRunning() bool {
	return t.running
}

func (t Timer) CompletedWorkIntervals() int {
	return t.stats.CompletedWorkIntervals
}

func (t Timer) Settings() pomomo.Settings {
	return t.settings.Clone()
}

func (t Timer) CurrentDuration() time.Duration {
	return t.settings.Durations.Of(t.mode)
}

// Start reports whether the countdown is running afterwards.
func (t *Timer) Start() bool {
	if t.remaining > 0 {
		t.running = true
	}
	return t.running
}

func (t *Timer) Pause() {
	t.running = false
}

func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.settings.Durations.Seconds(t.mode)
}

func (t *Timer) SwitchMode(mode pomomo.Mode, resetCounter bool) {
	t.mode = mode
	t.running = false
	t.remaining = t.settings.Durations.Seconds(mode)
	if resetCounter {
		t.stats.CompletedWorkIntervals = 0
	}
}

// ApplySettings replaces the settings wholesale, stops the countdown and
// restarts the active mode at its new duration.
func (t *Timer) ApplySettings(settings pomomo.Settings) {
	t.settings = settings.Clone()
	t.running = false
	t.remaining = t.settings.Durations.Seconds(t.mode)
}

// Tick advances the countdown by one second. The returned bool is true only on
// the tick that reaches zero while running.
func (t *Timer) Tick() (Completion, bool) {
	if !t.running || t.remaining <= 0 {
		return Completion{}, false
	}
	t.remaining--
	if t.remaining > 0 {
		return Completion{}, false
	}
	t.running = false
	return t.onIntervalComplete(), true
}

func (t *Timer) onIntervalComplete() Completion {
	c := Completion{
		Finished: t.mode,
		Planned:  t.CurrentDuration(),
		Sound:    t.settings.NotificationSound,
	}

	if t.mode == pomomo.WorkMode {
		t.stats.CompletedWorkIntervals++
		c.Message = "Time for your break!"
	} else {
		c.Message = "Time for your pomodoro!"
	}
	c.Next = t.nextMode()
	c.CompletedWorkIntervals = t.stats.CompletedWorkIntervals

	if !t.settings.AutoSwitch {
		return c
	}

	// the counter is cumulative; leaving a long break does not reset it
	t.SwitchMode(c.Next, false)
	c.Switched = true
	if (c.Next.IsBreak() && t.settings.AutoStartBreaks) || (c.Next == pomomo.WorkMode && t.settings.AutoStartWork) {
		c.AutoStarted = t.Start()
	}
	return c
}

func (t Timer) nextMode() pomomo.Mode {
	if t.mode != pomomo.WorkMode {
		return pomomo.WorkMode
	}
	every := t.settings.LongBreakEvery
	if every <= 0 {
		every = 1
	}
	completed := t.stats.CompletedWorkIntervals
	if completed > 0 && completed%every == 0 {
		return pomomo.LongBreakMode
	}
	return pomomo.ShortBreakMode
}

// Progress is the fraction of the current interval still remaining, in [0, 1].
func (t Timer) Progress() float64 {
	total := t.settings.Durations.Seconds(t.mode)
	if total <= 0 || t.remaining <= 0 {
		return 0
	}
	return min(float64(t.remaining)/float64(total), 1)
}
