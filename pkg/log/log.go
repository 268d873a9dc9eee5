// Package log builds the bot's logger from its configuration.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
)

// NewLogger returns the root logger described by cfg.Log. When a log path is
// set, the returned file is the logger output and must be closed by the
// caller.
func NewLogger(cfg *config.Config) (*log.Logger, *os.File, error) {
	if cfg == nil {
		return nil, nil, config.ErrNilConfig
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		out io.Writer = os.Stderr
		f   *os.File
	)
	if cfg.Log.Path != "" {
		f, err = os.OpenFile(cfg.Log.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	opts := log.Options{
		ReportTimestamp: true,
		ReportCaller:    config.IsVerbose(),
		TimeFormat:      cfg.Log.TimeFormat,
		Level:           level,
		Formatter:       formatter(cfg.Log.Format),
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = log.DefaultTimeFormat
	}

	return log.NewWithOptions(out, opts), f, nil
}

func parseLevel(s string) (log.Level, error) {
	if config.IsDebug() {
		return log.DebugLevel, nil
	}
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
