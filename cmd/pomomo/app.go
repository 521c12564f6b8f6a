package main

import (
	"strings"
	"time"

	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/benjamonnguyen/pomomo-tui/cmd/pomomo/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const toastTTL = 4 * time.Second

// tickMsg carries the run generation it was scheduled for. Pausing, resetting,
// switching modes and saving settings bump the generation, which cancels any
// tick still in flight.
type tickMsg struct {
	gen int
}

type toastExpiredMsg struct {
	id int
}

type completionHandler interface {
	Dispatch(models.Completion)
}

// appModel is the root bubbletea Model: the timer widget plus the settings
// dialog when it is open.
type appModel struct {
	timer     models.Timer
	gen       int
	tickEvery time.Duration
	effects   completionHandler

	keys keyMap
	help help.Model

	form      *huh.Form
	formInput *pomomo.SettingsInput

	toast    string
	errMsg   string
	toastID  int
	quitting bool
}

func newAppModel(settings pomomo.Settings, effects completionHandler) appModel {
	return appModel{
		timer:     models.NewTimer(settings),
		tickEvery: time.Second,
		effects:   effects,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle(m.timer.Remaining()))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
			m.errMsg = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m, nil
}

func (m appModel) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || !m.timer.IsRunning() {
		return m, nil
	}

	c, completed := m.timer.Tick()
	cmds := []tea.Cmd{m.titleCmd()}
	if completed {
		cmds = append(cmds, m.setToast(c.Message, false), m.dispatch(c))
	}
	if m.timer.IsRunning() {
		cmds = append(cmds, m.scheduleTick())
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.gen++
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.timer.IsRunning() {
			m.timer.Pause()
			m.gen++
			return m, nil
		}
		if !m.timer.Start() {
			cmd := m.setToast("Pick a mode or reset to start again.", false)
			return m, cmd
		}
		m.gen++
		return m, m.scheduleTick()

	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
		m.gen++
		return m, m.titleCmd()

	case key.Matches(msg, m.keys.Work):
		return m.switchMode(pomomo.WorkMode)
	case key.Matches(msg, m.keys.ShortBreak):
		return m.switchMode(pomomo.ShortBreakMode)
	case key.Matches(msg, m.keys.LongBreak):
		return m.switchMode(pomomo.LongBreakMode)
	case key.Matches(msg, m.keys.NextMode):
		return m.switchMode(cycleMode(m.timer.Mode(), 1))
	case key.Matches(msg, m.keys.PrevMode):
		return m.switchMode(cycleMode(m.timer.Mode(), -1))

	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// switchMode handles a pick from the mode selector, which starts the
// work-interval count over.
func (m appModel) switchMode(mode pomomo.Mode) (tea.Model, tea.Cmd) {
	m.timer.SwitchMode(mode, true)
	m.gen++
	return m, m.titleCmd()
}

func cycleMode(current pomomo.Mode, step int) pomomo.Mode {
	n := len(pomomo.Modes)
	for i, mode := range pomomo.Modes {
		if mode == current {
			return pomomo.Modes[((i+step)%n+n)%n]
		}
	}
	return pomomo.WorkMode
}

func (m appModel) openSettings() (tea.Model, tea.Cmd) {
	in := m.timer.Settings().Input()
	m.formInput = &in
	m.form = newSettingsForm(m.formInput)
	return m, m.form.Init()
}

func (m *appModel) closeSettings() {
	m.form = nil
	m.formInput = nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.closeSettings()
			return m, nil
		case tea.KeyCtrlC:
			m.gen++
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		in := *m.formInput
		m.closeSettings()
		return m.saveSettings(in)
	case huh.StateAborted:
		m.closeSettings()
		return m, nil
	}
	return m, cmd
}

// saveSettings replaces the settings only when every field is valid. The
// running countdown stops and the active mode restarts at its new length.
func (m appModel) saveSettings(in pomomo.SettingsInput) (tea.Model, tea.Cmd) {
	settings, err := pomomo.ParseSettings(in)
	if err != nil {
		var msgs []string
		for _, fe := range pomomo.FieldErrors(err) {
			msgs = append(msgs, fe.Message)
		}
		if len(msgs) == 0 {
			msgs = append(msgs, err.Error())
		}
		cmd := m.setToast("Settings not saved: "+strings.Join(msgs, " "), true)
		return m, cmd
	}

	m.timer.ApplySettings(settings)
	m.gen++
	toastCmd := m.setToast("Settings saved.", false)
	return m, tea.Batch(m.titleCmd(), toastCmd)
}

func (m *appModel) setToast(text string, isErr bool) tea.Cmd {
	m.toastID++
	if isErr {
		m.errMsg, m.toast = text, ""
	} else {
		m.toast, m.errMsg = text, ""
	}
	id := m.toastID
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m appModel) scheduleTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.tickEvery, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m appModel) titleCmd() tea.Cmd {
	return tea.SetWindowTitle(windowTitle(m.timer.Remaining()))
}

func (m appModel) dispatch(c models.Completion) tea.Cmd {
	if m.effects == nil {
		return nil
	}
	effects := m.effects
	return func() tea.Msg {
		effects.Dispatch(c)
		return nil
	}
}
