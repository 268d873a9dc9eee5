package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/matryer/is"
)

func TestNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		config.DefaultConfig(),
		{},
		{Log: config.LogConfig{Format: "json", Level: "warn"}},
		{Log: config.LogConfig{Path: filepath.Join(t.TempDir(), "hackbot.log")}},
	} {
		_, f, err := NewLogger(c)
		if err != nil {
			t.Errorf("NewLogger(%+v) => _, _, %v, want _, _, nil", c.Log, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestNewLoggerErrors(t *testing.T) {
	for _, c := range []*config.Config{
		nil,
		{Log: config.LogConfig{Path: "\x00"}},
		{Log: config.LogConfig{Level: "loud"}},
	} {
		_, f, err := NewLogger(c)
		if err == nil {
			t.Errorf("NewLogger(%v) => _, _, nil, want error", c)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestLevel(t *testing.T) {
	is := is.New(t)
	t.Setenv("HACKBOT_DEBUG", "false")

	logger, _, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "warn"}})
	is.NoErr(err)
	is.Equal(logger.GetLevel(), log.WarnLevel)

	t.Setenv("HACKBOT_DEBUG", "true")
	logger, _, err = NewLogger(&config.Config{Log: config.LogConfig{Level: "warn"}})
	is.NoErr(err)
	is.Equal(logger.GetLevel(), log.DebugLevel)
}

func TestLogFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "hackbot.log")
	logger, f, err := NewLogger(&config.Config{Log: config.LogConfig{Format: "logfmt", Path: path}})
	is.NoErr(err)
	logger.Info("event registered", "event", 10)
	is.NoErr(f.Close())

	bts, err := os.ReadFile(path)
	is.NoErr(err)
	out := string(bts)
	is.True(strings.Contains(out, `msg="event registered"`))
	is.True(strings.Contains(out, "event=10"))
}
