package pomomo

import (
	"context"
	"strconv"
	"time"
)

type Mode uint8

const (
	_ Mode = iota
	WorkMode
	ShortBreakMode
	LongBreakMode
)

// Modes lists every mode in selector order.
var Modes = []Mode{WorkMode, ShortBreakMode, LongBreakMode}

func (m Mode) String() string {
	switch m {
	case WorkMode:
		return "Pomodoro"
	case ShortBreakMode:
		return "Short Break"
	case LongBreakMode:
		return "Long Break"
	default:
		panic("no matching enum for Mode: " + strconv.Itoa(int(m)))
	}
}

// Key is the stable identifier used in config files and the history table.
func (m Mode) Key() string {
	switch m {
	case WorkMode:
		return "work"
	case ShortBreakMode:
		return "short_break"
	case LongBreakMode:
		return "long_break"
	default:
		return ""
	}
}

func (m Mode) IsBreak() bool {
	return m == ShortBreakMode || m == LongBreakMode
}

func ModeFromKey(key string) (Mode, bool) {
	for _, m := range Modes {
		if m.Key() == key {
			return m, true
		}
	}
	return 0, false
}

type NotificationSound string

const (
	BellSound  NotificationSound = "bell"
	ChimeSound NotificationSound = "chime"
	NoSound    NotificationSound = "none"
)

var NotificationSounds = []NotificationSound{BellSound, ChimeSound, NoSound}

func (s NotificationSound) Label() string {
	switch s {
	case BellSound:
		return "Bell"
	case ChimeSound:
		return "Chime"
	case NoSound:
		return "None (Mute)"
	default:
		return string(s)
	}
}

func (s NotificationSound) Valid() bool {
	for _, sound := range NotificationSounds {
		if s == sound {
			return true
		}
	}
	return false
}

type IntervalID string

// IntervalRecord is a finished interval written to the history journal.
type IntervalRecord struct {
	Mode                   Mode
	Planned                time.Duration
	CompletedAt            time.Time
	CompletedWorkIntervals int
}

type ExistingIntervalRecord struct {
	ExistingRecord[IntervalID]
	IntervalRecord
}

type HistoryRepo interface {
	InsertInterval(context.Context, IntervalRecord) (ExistingIntervalRecord, error)
	GetInterval(ctx context.Context, id IntervalID) (ExistingIntervalRecord, error)
	ListRecentIntervals(ctx context.Context, limit int) ([]ExistingIntervalRecord, error)
	CountByMode(ctx context.Context, since time.Time) (map[Mode]int, error)
}
