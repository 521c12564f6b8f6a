package pomomo

import "context"

// Notification is emitted when an interval finishes.
type Notification struct {
	Message                string
	Finished               Mode
	Next                   Mode
	CompletedWorkIntervals int
	Sound                  NotificationSound
}

// Notifier delivers a Notification somewhere outside the timer. Failures must
// not affect the timer; callers log and move on.
type Notifier interface {
	Notify(context.Context, Notification) error
}
