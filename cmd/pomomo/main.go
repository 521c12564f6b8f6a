package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/benjamonnguyen/pomomo-tui/discordgo"
	"github.com/benjamonnguyen/pomomo-tui/sqlite"
	dg "github.com/bwmarrin/discordgo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/pomomo-tui"
	Version = "0.1.0"

	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	isProd         bool
	logLevel       string
	work           int
	shortBreak     int
	longBreak      int
	longBreakEvery int
	autoSwitch     bool
	sound          string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:          "pomomo",
		Short:        "Pomodoro timer for the terminal",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.isProd, "prod", "p", false, "load .env instead of .env.dev")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	bindSettingsFlags(root.Flags(), &flags)

	root.AddCommand(newHistoryCmd(&flags))
	return root
}

func bindSettingsFlags(f *pflag.FlagSet, flags *rootFlags) {
	defaults := pomomo.DefaultSettings()
	f.IntVar(&flags.work, "work", defaults.Durations.Minutes(pomomo.WorkMode), pomomo.WorkSettingsField.Description)
	f.IntVar(&flags.shortBreak, "short-break", defaults.Durations.Minutes(pomomo.ShortBreakMode), pomomo.ShortBreakSettingsField.Description)
	f.IntVar(&flags.longBreak, "long-break", defaults.Durations.Minutes(pomomo.LongBreakMode), pomomo.LongBreakSettingsField.Description)
	f.IntVar(&flags.longBreakEvery, "long-break-every", defaults.LongBreakEvery, pomomo.LongBreakEverySettingsField.Description)
	f.BoolVar(&flags.autoSwitch, "auto-switch", defaults.AutoSwitch, "move to the next mode when an interval ends")
	f.StringVar(&flags.sound, "sound", string(defaults.NotificationSound), "notification sound (bell, chime, none)")
}

// setupLogging sends logs to a file since the terminal belongs to the UI.
func setupLogging(cfg pomomo.Config, levelOverride string) (func(), error) {
	level := cfg.LogLevel
	if levelOverride != "" {
		level = levelOverride
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(lvl)
	log.SetReportCaller(true)
	log.SetReportTimestamp(true)
	return func() { _ = f.Close() }, nil
}

// resolveSettings layers flags over the settings file over the defaults.
// Flag values are held to the same bounds as the settings form.
func resolveSettings(fs *pflag.FlagSet, cfg pomomo.Config, flags rootFlags) (pomomo.Settings, error) {
	base, err := pomomo.LoadDefaultSettings(cfg.SettingsFile)
	if err != nil {
		return pomomo.Settings{}, err
	}

	in := base.Input()
	overrides := []struct {
		value optional[int]
		dst   *string
	}{
		{changedFlag(fs, "work", func() int { return flags.work }), &in.Work},
		{changedFlag(fs, "short-break", func() int { return flags.shortBreak }), &in.ShortBreak},
		{changedFlag(fs, "long-break", func() int { return flags.longBreak }), &in.LongBreak},
		{changedFlag(fs, "long-break-every", func() int { return flags.longBreakEvery }), &in.LongBreakEvery},
	}
	for _, o := range overrides {
		if !o.value.IsEmpty() {
			*o.dst = strconv.Itoa(o.value.Get())
		}
	}
	if autoSwitch := changedFlag(fs, "auto-switch", func() bool { return flags.autoSwitch }); !autoSwitch.IsEmpty() {
		in.AutoSwitch = autoSwitch.Get()
	}
	if sound := changedFlag(fs, "sound", func() string { return flags.sound }); !sound.IsEmpty() {
		in.NotificationSound = pomomo.NotificationSound(sound.Get())
	}

	settings, err := pomomo.ParseSettings(in)
	if err != nil {
		return pomomo.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func runTimer(cmd *cobra.Command, flags rootFlags) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("pomomo needs an interactive terminal")
	}

	// config
	cfg, err := pomomo.LoadConfig(flags.isProd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, flags.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := resolveSettings(cmd.Flags(), cfg, flags)
	if err != nil {
		return err
	}

	topCtx, topCtxC := context.WithCancel(cmd.Context())
	defer topCtxC()
	effects := newCompletionEffects(topCtx, log.With("component", "effects"))

	// audio
	player, err := newBeepPlayer(log.With("component", "audio"))
	if err != nil {
		log.Warn("audio unavailable - running without sound", "err", err)
	} else {
		defer player.Close()
		effects.WithPlayer(player)
	}

	// history
	if cfg.HistoryDBPath != "" {
		log.Info("opening history db", "path", cfg.HistoryDBPath)
		db, err := sqlite.Open(cfg.HistoryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open history db: %w", err)
		}
		defer db.Close() //nolint
		tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
		effects.WithHistory(sqlite.NewHistoryRepo(dbGetter, log.With("component", "history")), tx)
	}

	// discord
	if cfg.DiscordWebhookURL != "" {
		cl, err := dg.New("")
		if err != nil {
			return err
		}
		cl.UserAgent = fmt.Sprintf("pomomo (%s, v%s)", RepoURL, Version)
		notifier, err := discordgo.NewWebhookNotifier(cl, cfg.DiscordWebhookURL, "Pomomo", log.With("component", "discord"))
		if err != nil {
			return err
		}
		effects.WithNotifier(notifier)
	}

	log.Info("starting timer", "work", settings.Durations.Of(pomomo.WorkMode), "shortBreak", settings.Durations.Of(pomomo.ShortBreakMode),
		"longBreak", settings.Durations.Of(pomomo.LongBreakMode), "autoSwitch", settings.AutoSwitch, "sound", settings.NotificationSound)
	p := tea.NewProgram(newAppModel(settings, effects), tea.WithAltScreen(), tea.WithContext(topCtx))
	_, runErr := p.Run()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Error("timer exited with error", "err", runErr)
	}

	// graceful shutdown
	shutdownCtx, shutdownC := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownC()
	if err := effects.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down gracefully", "err", err)
	}
	log.Info("terminating pomomo")
	return runErr
}
