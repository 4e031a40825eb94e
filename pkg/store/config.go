package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"tableflip.dev/diary/pkg/calendar"
)

// Config is the resolved application configuration.
type Config interface {
	DatabasePath() string
	WeekStart() time.Weekday
	LogLevel() string
	LogFile() string
}

// DefaultPath is data/entries.db next to the running executable.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("data", "entries.db")
	}
	return filepath.Join(filepath.Dir(exe), "data", "entries.db")
}

// LoadConfig reads .diary.yaml from the working directory or the home
// directory. A missing file is not an error.
func LoadConfig() (Config, error) {
	v := newViper()
	v.SetConfigName(".diary") // .yaml is implicit
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("loaded configuration")
	}
	return fromViper(v)
}

// LoadConfigFile reads configuration from an explicit file.
func LoadConfigFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("path", "")
	v.SetDefault("week-start", "monday")
	v.SetDefault("log-level", "warning")
	v.SetDefault("log-file", "")
	return v
}

func fromViper(v *viper.Viper) (Config, error) {
	ws, err := calendar.ParseWeekStart(v.GetString("week-start"))
	if err != nil {
		return nil, err
	}
	cfg := &fileConfig{
		Path:    v.GetString("path"),
		Week:    ws,
		Level:   v.GetString("log-level"),
		LogPath: v.GetString("log-file"),
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath()
	}
	if cfg.Path, err = ResolvePath(cfg.Path); err != nil {
		return nil, err
	}
	if cfg.LogPath != "" {
		if cfg.LogPath, err = ResolvePath(cfg.LogPath); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ResolvePath expands a leading ~ and makes p absolute.
func ResolvePath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return filepath.Abs(expanded)
}

type fileConfig struct {
	Path    string       `json:"path"`
	Week    time.Weekday `json:"week-start"`
	Level   string       `json:"log-level"`
	LogPath string       `json:"log-file"`
}

func (f *fileConfig) DatabasePath() string    { return f.Path }
func (f *fileConfig) WeekStart() time.Weekday { return f.Week }
func (f *fileConfig) LogLevel() string        { return f.Level }
func (f *fileConfig) LogFile() string         { return f.LogPath }

// WithDatabasePath returns cfg with the database path replaced.
func WithDatabasePath(cfg Config, path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	return &fileConfig{
		Path:    resolved,
		Week:    cfg.WeekStart(),
		Level:   cfg.LogLevel(),
		LogPath: cfg.LogFile(),
	}, nil
}
