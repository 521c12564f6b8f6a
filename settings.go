package pomomo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Durations maps each mode to its interval length.
type Durations map[Mode]time.Duration

func (d Durations) Of(m Mode) time.Duration {
	return d[m]
}

// Seconds reports the interval length for m in whole seconds.
func (d Durations) Seconds(m Mode) int {
	return int(d[m] / time.Second)
}

func (d Durations) Minutes(m Mode) int {
	return int(d[m] / time.Minute)
}

type Settings struct {
	Durations         Durations
	AutoSwitch        bool
	AutoStartBreaks   bool
	AutoStartWork     bool
	LongBreakEvery    int
	NotificationSound NotificationSound
}

func DefaultSettings() Settings {
	return Settings{
		Durations: Durations{
			WorkMode:       25 * time.Minute,
			ShortBreakMode: 5 * time.Minute,
			LongBreakMode:  15 * time.Minute,
		},
		AutoSwitch:        true,
		LongBreakEvery:    4,
		NotificationSound: BellSound,
	}
}

// Clone returns a copy that shares no map with s.
func (s Settings) Clone() Settings {
	c := s
	c.Durations = make(Durations, len(s.Durations))
	for m, d := range s.Durations {
		c.Durations[m] = d
	}
	return c
}

// Input returns the form representation of s.
func (s Settings) Input() SettingsInput {
	return SettingsInput{
		Work:              strconv.Itoa(s.Durations.Minutes(WorkMode)),
		ShortBreak:        strconv.Itoa(s.Durations.Minutes(ShortBreakMode)),
		LongBreak:         strconv.Itoa(s.Durations.Minutes(LongBreakMode)),
		LongBreakEvery:    strconv.Itoa(s.LongBreakEvery),
		AutoSwitch:        s.AutoSwitch,
		AutoStartBreaks:   s.AutoStartBreaks,
		AutoStartWork:     s.AutoStartWork,
		NotificationSound: s.NotificationSound,
	}
}

// Field keys
const (
	WorkField           = "work"
	ShortBreakField     = "short_break"
	LongBreakField      = "long_break"
	LongBreakEveryField = "long_break_every"
)

type SettingsField struct {
	Key         string
	Title       string
	Description string
	Min, Max    int
	Unit        string
}

var (
	WorkSettingsField = SettingsField{
		Key:         WorkField,
		Title:       "Pomodoro (minutes)",
		Description: "pomodoro duration in minutes (Default: 25)",
		Min:         1,
		Max:         120,
		Unit:        "minute",
	}
	ShortBreakSettingsField = SettingsField{
		Key:         ShortBreakField,
		Title:       "Short Break (minutes)",
		Description: "short break duration in minutes (Default: 5)",
		Min:         1,
		Max:         60,
		Unit:        "minute",
	}
	LongBreakSettingsField = SettingsField{
		Key:         LongBreakField,
		Title:       "Long Break (minutes)",
		Description: "long break duration in minutes (Default: 15)",
		Min:         1,
		Max:         120,
		Unit:        "minute",
	}
	LongBreakEverySettingsField = SettingsField{
		Key:         LongBreakEveryField,
		Title:       "Long Break Every (pomodoros)",
		Description: "number of pomodoros between long breaks (Default: 4)",
		Min:         1,
		Max:         20,
		Unit:        "pomodoro",
	}
)

// SettingsFields lists the numeric fields in form order.
var SettingsFields = []SettingsField{
	WorkSettingsField,
	ShortBreakSettingsField,
	LongBreakSettingsField,
	LongBreakEverySettingsField,
}

// FieldError is a validation failure for one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Parse converts text to an int within the field bounds. The returned error,
// when not nil, is a *FieldError whose message is suitable for inline display.
func (f SettingsField) Parse(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &FieldError{Field: f.Key, Message: fmt.Sprintf("Enter a whole number of %ss.", f.Unit)}
	}
	if v < f.Min {
		return 0, &FieldError{Field: f.Key, Message: fmt.Sprintf("Must be at least %d %s.", f.Min, f.plural(f.Min))}
	}
	if v > f.Max {
		return 0, &FieldError{Field: f.Key, Message: fmt.Sprintf("Cannot exceed %d %s.", f.Max, f.plural(f.Max))}
	}
	return v, nil
}

// Validate adapts Parse to the func(string) error shape form inputs expect.
func (f SettingsField) Validate(text string) error {
	_, err := f.Parse(text)
	var fe *FieldError
	if errors.As(err, &fe) {
		return errors.New(fe.Message)
	}
	return err
}

func (f SettingsField) plural(n int) string {
	if n == 1 {
		return f.Unit
	}
	return f.Unit + "s"
}

// SettingsInput is the raw form state. Numeric fields hold user text.
type SettingsInput struct {
	Work, ShortBreak, LongBreak string
	LongBreakEvery              string
	AutoSwitch                  bool
	AutoStartBreaks             bool
	AutoStartWork               bool
	NotificationSound           NotificationSound
}

// ParseSettings validates every field of in and only then builds a Settings.
// All field errors are reported together.
func ParseSettings(in SettingsInput) (Settings, error) {
	var errs *multierror.Error
	parse := func(f SettingsField, text string) int {
		v, err := f.Parse(text)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		return v
	}

	work := parse(WorkSettingsField, in.Work)
	shortBreak := parse(ShortBreakSettingsField, in.ShortBreak)
	longBreak := parse(LongBreakSettingsField, in.LongBreak)
	every := parse(LongBreakEverySettingsField, in.LongBreakEvery)

	sound := in.NotificationSound
	if sound == "" {
		sound = BellSound
	}
	if !sound.Valid() {
		errs = multierror.Append(errs, &FieldError{Field: "notification_sound", Message: fmt.Sprintf("Unknown sound %q.", sound)})
	}

	if err := errs.ErrorOrNil(); err != nil {
		return Settings{}, err
	}

	return Settings{
		Durations: Durations{
			WorkMode:       time.Duration(work) * time.Minute,
			ShortBreakMode: time.Duration(shortBreak) * time.Minute,
			LongBreakMode:  time.Duration(longBreak) * time.Minute,
		},
		AutoSwitch:        in.AutoSwitch,
		AutoStartBreaks:   in.AutoStartBreaks,
		AutoStartWork:     in.AutoStartWork,
		LongBreakEvery:    every,
		NotificationSound: sound,
	}, nil
}

// FieldErrors unwraps the per-field failures of a ParseSettings error.
func FieldErrors(err error) []*FieldError {
	var out []*FieldError
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			var fe *FieldError
			if errors.As(e, &fe) {
				out = append(out, fe)
			}
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}
