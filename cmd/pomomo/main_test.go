package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSettingsFlags(t *testing.T, args ...string) (*pflag.FlagSet, rootFlags) {
	t.Helper()
	var flags rootFlags
	fs := pflag.NewFlagSet("pomomo", pflag.ContinueOnError)
	bindSettingsFlags(fs, &flags)
	require.NoError(t, fs.Parse(args))
	return fs, flags
}

func TestResolveSettings(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		fs, flags := parseSettingsFlags(t)
		s, err := resolveSettings(fs, pomomo.Config{}, flags)
		require.NoError(t, err)
		assert.Equal(t, pomomo.DefaultSettings(), s)
	})

	t.Run("flags override settings file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("work_minutes: 50\nshort_break_minutes: 10\n"), 0o600))

		fs, flags := parseSettingsFlags(t, "--short-break", "7", "--auto-switch=false", "--sound", "none")
		s, err := resolveSettings(fs, pomomo.Config{SettingsFile: path}, flags)
		require.NoError(t, err)
		assert.Equal(t, 50*time.Minute, s.Durations.Of(pomomo.WorkMode))
		assert.Equal(t, 7*time.Minute, s.Durations.Of(pomomo.ShortBreakMode))
		assert.Equal(t, 15*time.Minute, s.Durations.Of(pomomo.LongBreakMode))
		assert.False(t, s.AutoSwitch)
		assert.Equal(t, pomomo.NoSound, s.NotificationSound)
	})

	t.Run("flags are bounded like the form", func(t *testing.T) {
		t.Parallel()
		fs, flags := parseSettingsFlags(t, "--work", "121", "--short-break", "0")
		_, err := resolveSettings(fs, pomomo.Config{}, flags)
		require.Error(t, err)
		fieldErrs := pomomo.FieldErrors(err)
		require.Len(t, fieldErrs, 2)
		assert.Equal(t, pomomo.WorkField, fieldErrs[0].Field)
		assert.Equal(t, pomomo.ShortBreakField, fieldErrs[1].Field)
	})

	t.Run("unknown sound", func(t *testing.T) {
		t.Parallel()
		fs, flags := parseSettingsFlags(t, "--sound", "gong")
		_, err := resolveSettings(fs, pomomo.Config{}, flags)
		assert.ErrorContains(t, err, `Unknown sound "gong".`)
	})
}

func TestChangedFlag(t *testing.T) {
	t.Parallel()

	fs, flags := parseSettingsFlags(t, "--work", "30")
	work := changedFlag(fs, "work", func() int { return flags.work })
	require.False(t, work.IsEmpty())
	assert.Equal(t, 30, work.Get())
	assert.True(t, changedFlag(fs, "long-break", func() int { return flags.longBreak }).IsEmpty())
}
