package main

import (
	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func pomomoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorWork).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(colorWork)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(colorWork).SetString(" *")
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorWork).SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorShortBreak)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorWork).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorWork)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorWork)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

func minutesInput(f pomomo.SettingsField, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Key(f.Key).
		Title(f.Title).
		Placeholder(placeholder).
		CharLimit(3).
		Value(value).
		Validate(f.Validate)
}

// newSettingsForm binds every settings control to in. Numeric fields are
// validated as the user leaves them, so a submitted form is always in bounds.
func newSettingsForm(in *pomomo.SettingsInput) *huh.Form {
	soundOptions := make([]huh.Option[pomomo.NotificationSound], 0, len(pomomo.NotificationSounds))
	for _, sound := range pomomo.NotificationSounds {
		soundOptions = append(soundOptions, huh.NewOption(sound.Label(), sound))
	}

	return huh.NewForm(
		huh.NewGroup(
			minutesInput(pomomo.WorkSettingsField, "e.g., 25", &in.Work),
			minutesInput(pomomo.ShortBreakSettingsField, "e.g., 5", &in.ShortBreak),
			minutesInput(pomomo.LongBreakSettingsField, "e.g., 15", &in.LongBreak),
			minutesInput(pomomo.LongBreakEverySettingsField, "e.g., 4", &in.LongBreakEvery),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("auto_switch").
				Title("Auto Switch").
				Description("Move to the next mode when an interval ends.").
				Value(&in.AutoSwitch),
			huh.NewConfirm().
				Key("auto_start_breaks").
				Title("Auto Start Breaks").
				Value(&in.AutoStartBreaks),
			huh.NewConfirm().
				Key("auto_start_work").
				Title("Auto Start Pomodoros").
				Value(&in.AutoStartWork),
			huh.NewSelect[pomomo.NotificationSound]().
				Key("notification_sound").
				Title("Notification Sound").
				Options(soundOptions...).
				Value(&in.NotificationSound),
		),
	).WithTheme(pomomoHuhTheme()).WithShowHelp(false)
}
