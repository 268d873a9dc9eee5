package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/cmd/hackbot/admin"
	"github.com/hackbot/hackbot/cmd/hackbot/events"
	"github.com/hackbot/hackbot/cmd/hackbot/serve"
	"github.com/hackbot/hackbot/pkg/config"
	logr "github.com/hackbot/hackbot/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "hackbot",
		Short:        "A Discord bot for hackathon teams",
		Long:         "Hackbot lets hackathon participants create, join and leave teams with their own private channels.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		events.Command,
		admin.Command,
		manCmd,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			log.Fatal("parse config file", "err", err)
		}
	}
	if err := cfg.ParseEnv(); err != nil {
		log.Fatal("parse environment variables", "err", err)
	}
	ctx = config.WithContext(ctx, cfg)

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Errorf("failed to create logger: %v", err)
		logger = log.Default()
	}

	// Set global logger
	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running the bot in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = log.WithContext(ctx, logger)

	err = rootCmd.ExecuteContext(ctx)
	if f != nil {
		f.Close() // nolint: errcheck
	}
	if err != nil {
		os.Exit(1)
	}
}
