package pomomo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const AppName = "pomomo"

type Config struct {
	HistoryDBPath     string
	DiscordWebhookURL string
	SettingsFile      string
	LogFile           string
	LogLevel          string
}

// LoadConfig reads POMOMO_* variables after loading .env (prod) or .env.dev.
func LoadConfig(isProd bool) (Config, error) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}

	config := Config{
		HistoryDBPath:     os.Getenv("POMOMO_HISTORY_DB"),
		DiscordWebhookURL: os.Getenv("POMOMO_DISCORD_WEBHOOK"),
		SettingsFile:      os.Getenv("POMOMO_SETTINGS_FILE"),
		LogFile:           os.Getenv("POMOMO_LOG_FILE"),
		LogLevel:          os.Getenv("POMOMO_LOG_LEVEL"),
	}

	if config.LogFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		config.LogFile = filepath.Join(home, "."+AppName, AppName+".log")
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config, nil
}

type yamlSettings struct {
	WorkMinutes       int    `yaml:"work_minutes"`
	ShortBreakMinutes int    `yaml:"short_break_minutes"`
	LongBreakMinutes  int    `yaml:"long_break_minutes"`
	LongBreakEvery    int    `yaml:"long_break_every"`
	AutoSwitch        *bool  `yaml:"auto_switch"`
	AutoStartBreaks   bool   `yaml:"auto_start_breaks"`
	AutoStartWork     bool   `yaml:"auto_start_work"`
	NotificationSound string `yaml:"notification_sound"`
}

// LoadDefaultSettings seeds the startup settings from a YAML file.
// An empty path or a missing file yields DefaultSettings. Values are held to
// the same bounds as the settings form.
func LoadDefaultSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	return applyYamlSettings(settings, fileData)
}

func applyYamlSettings(settings Settings, fileData yamlSettings) (Settings, error) {
	in := settings.Input()
	if fileData.WorkMinutes != 0 {
		in.Work = fmt.Sprint(fileData.WorkMinutes)
	}
	if fileData.ShortBreakMinutes != 0 {
		in.ShortBreak = fmt.Sprint(fileData.ShortBreakMinutes)
	}
	if fileData.LongBreakMinutes != 0 {
		in.LongBreak = fmt.Sprint(fileData.LongBreakMinutes)
	}
	if fileData.LongBreakEvery != 0 {
		in.LongBreakEvery = fmt.Sprint(fileData.LongBreakEvery)
	}
	if fileData.AutoSwitch != nil {
		in.AutoSwitch = *fileData.AutoSwitch
	}
	in.AutoStartBreaks = fileData.AutoStartBreaks
	in.AutoStartWork = fileData.AutoStartWork
	if fileData.NotificationSound != "" {
		in.NotificationSound = NotificationSound(fileData.NotificationSound)
	}

	parsed, err := ParseSettings(in)
	if err != nil {
		return settings, fmt.Errorf("invalid settings file: %w", err)
	}
	return parsed, nil
}
