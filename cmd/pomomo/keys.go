package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Work       key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	Settings   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Work:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pomodoro")),
		ShortBreak: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short break")),
		LongBreak:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long break")),
		NextMode:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev mode")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Settings, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Settings},
		{k.Work, k.ShortBreak, k.LongBreak},
		{k.NextMode, k.PrevMode, k.Help, k.Quit},
	}
}
