package pomomo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() SettingsInput {
	return SettingsInput{
		Work:              "25",
		ShortBreak:        "5",
		LongBreak:         "15",
		LongBreakEvery:    "4",
		AutoSwitch:        true,
		NotificationSound: ChimeSound,
	}
}

func TestParseSettings_ConvertsMinutesToSeconds(t *testing.T) {
	settings, err := ParseSettings(validInput())
	require.NoError(t, err)

	assert.Equal(t, 1500, settings.Durations.Seconds(WorkMode))
	assert.Equal(t, 300, settings.Durations.Seconds(ShortBreakMode))
	assert.Equal(t, 900, settings.Durations.Seconds(LongBreakMode))
	assert.Equal(t, 4, settings.LongBreakEvery)
	assert.True(t, settings.AutoSwitch)
	assert.Equal(t, ChimeSound, settings.NotificationSound)
}

func TestParseSettings_Bounds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*SettingsInput)
		field   string
		message string
	}{
		{
			name:    "work zero",
			mutate:  func(in *SettingsInput) { in.Work = "0" },
			field:   WorkField,
			message: "Must be at least 1 minute.",
		},
		{
			name:    "work too long",
			mutate:  func(in *SettingsInput) { in.Work = "121" },
			field:   WorkField,
			message: "Cannot exceed 120 minutes.",
		},
		{
			name:    "short break too long",
			mutate:  func(in *SettingsInput) { in.ShortBreak = "61" },
			field:   ShortBreakField,
			message: "Cannot exceed 60 minutes.",
		},
		{
			name:    "long break not a number",
			mutate:  func(in *SettingsInput) { in.LongBreak = "ten" },
			field:   LongBreakField,
			message: "Enter a whole number of minutes.",
		},
		{
			name:    "cadence zero",
			mutate:  func(in *SettingsInput) { in.LongBreakEvery = "0" },
			field:   LongBreakEveryField,
			message: "Must be at least 1 pomodoro.",
		},
		{
			name:    "unknown sound",
			mutate:  func(in *SettingsInput) { in.NotificationSound = "gong" },
			field:   "notification_sound",
			message: `Unknown sound "gong".`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tc.mutate(&in)

			settings, err := ParseSettings(in)
			require.Error(t, err)
			assert.Equal(t, Settings{}, settings)

			fieldErrs := FieldErrors(err)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tc.field, fieldErrs[0].Field)
			assert.Equal(t, tc.message, fieldErrs[0].Message)
		})
	}
}

func TestParseSettings_ReportsEveryInvalidField(t *testing.T) {
	in := validInput()
	in.Work = "0"
	in.ShortBreak = "0"
	in.LongBreak = "121"

	_, err := ParseSettings(in)
	require.Error(t, err)

	var fields []string
	for _, fe := range FieldErrors(err) {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{WorkField, ShortBreakField, LongBreakField}, fields)
}

func TestParseSettings_EdgesAccepted(t *testing.T) {
	in := validInput()
	in.Work = "120"
	in.ShortBreak = " 60 "
	in.LongBreak = "1"
	in.NotificationSound = ""

	settings, err := ParseSettings(in)
	require.NoError(t, err)
	assert.Equal(t, 120*time.Minute, settings.Durations.Of(WorkMode))
	assert.Equal(t, 60*time.Minute, settings.Durations.Of(ShortBreakMode))
	assert.Equal(t, time.Minute, settings.Durations.Of(LongBreakMode))
	assert.Equal(t, BellSound, settings.NotificationSound)
}

func TestSettingsField_Validate(t *testing.T) {
	assert.NoError(t, WorkSettingsField.Validate("1"))
	assert.EqualError(t, WorkSettingsField.Validate("0"), "Must be at least 1 minute.")
	assert.EqualError(t, WorkSettingsField.Validate("121"), "Cannot exceed 120 minutes.")
	assert.EqualError(t, ShortBreakSettingsField.Validate(""), "Enter a whole number of minutes.")
}

func TestSettings_InputRoundTrip(t *testing.T) {
	defaults := DefaultSettings()
	parsed, err := ParseSettings(defaults.Input())
	require.NoError(t, err)
	assert.Equal(t, defaults, parsed)
}

func TestSettings_Clone(t *testing.T) {
	original := DefaultSettings()
	clone := original.Clone()
	clone.Durations[WorkMode] = time.Minute

	assert.Equal(t, 25*time.Minute, original.Durations.Of(WorkMode))
}

func TestMode(t *testing.T) {
	assert.Equal(t, "Pomodoro", WorkMode.String())
	assert.Equal(t, "Short Break", ShortBreakMode.String())
	assert.Equal(t, "Long Break", LongBreakMode.String())

	for _, m := range Modes {
		got, ok := ModeFromKey(m.Key())
		require.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ModeFromKey("nap")
	assert.False(t, ok)

	assert.False(t, WorkMode.IsBreak())
	assert.True(t, ShortBreakMode.IsBreak())
	assert.True(t, LongBreakMode.IsBreak())
}
