package commands

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/store"
)

// configureLogging sets the level from the flag or the config. The terminal
// UI owns the screen, so it logs to the configured file or nowhere. The
// returned closer is non-nil when a log file was opened.
func configureLogging(cfg store.Config, flagLevel string, interactive bool) (io.Closer, error) {
	level := cfg.LogLevel()
	if flagLevel != "" {
		level = flagLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)

	if !interactive {
		log.SetOutput(os.Stderr)
		return nil, nil
	}
	if cfg.LogFile() == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(f)
	return f, nil
}

// closeLog points logging back at stderr and closes the log file.
func closeLog(c io.Closer) {
	if c == nil {
		return
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{})
	_ = c.Close()
}
