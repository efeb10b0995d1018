package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName         = "focusguard.yaml"
	defaultAlarmTick = 15 * time.Second
)

type Config struct {
	DataDir      string
	DBPath       string
	SocketPath   string
	LogPath      string
	NotifiersDir string
	LogLevel     string
	LogFormat    string
	AlarmTick    time.Duration
}

type fileConfig struct {
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	AlarmTick  string `yaml:"alarm_tick"`
	SocketPath string `yaml:"socket_path"`
}

// New resolves the configuration for dataDir using the process environment.
// An empty dataDir falls back to the user config directory.
func New(dataDir string) (Config, error) {
	return Load(dataDir, os.Getenv)
}

func Load(dataDir string, getenv func(string) string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(base, "focusguard")
	}

	cfg := Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "focusguard.db"),
		SocketPath:   filepath.Join(dataDir, "focusguard.sock"),
		LogPath:      filepath.Join(dataDir, "focusguard.log"),
		NotifiersDir: filepath.Join(dataDir, "notifiers"),
		LogLevel:     "info",
		LogFormat:    "text",
		AlarmTick:    defaultAlarmTick,
	}

	file, err := readFile(filepath.Join(dataDir, FileName))
	if err != nil {
		return Config{}, err
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}
	if file.SocketPath != "" {
		cfg.SocketPath = file.SocketPath
	}
	tick := file.AlarmTick

	if level := strings.TrimSpace(getenv("FOCUSGUARD_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
	if value := strings.TrimSpace(getenv("FOCUSGUARD_ALARM_TICK")); value != "" {
		tick = value
	}
	if tick != "" {
		parsed, err := time.ParseDuration(tick)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid alarm_tick %q", tick)
		}
		cfg.AlarmTick = parsed
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid log_format %q", cfg.LogFormat)
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	out := fileConfig{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return fileConfig{}, fmt.Errorf("decode config file: %w", err)
	}
	return out, nil
}
