package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrUnknownStoreDriver is returned when the store driver is not supported.
	ErrUnknownStoreDriver = errors.New("unknown store driver")
)

// DiscordConfig is the configuration of the Discord gateway session.
type DiscordConfig struct {
	// Token is the bot token.
	Token string `env:"TOKEN" yaml:"token"`

	// ApplicationID is the application owning the slash commands.
	ApplicationID string `env:"APPLICATION_ID" yaml:"application_id"`

	// GuildID restricts command registration to one guild. Commands are
	// registered globally when empty.
	GuildID string `env:"GUILD_ID" yaml:"guild_id"`

	// SelectTimeout is the number of seconds a user has to answer a menu.
	SelectTimeout int `env:"SELECT_TIMEOUT" yaml:"select_timeout"`

	// UnregisterCommands removes the slash commands on shutdown.
	UnregisterCommands bool `env:"UNREGISTER_COMMANDS" yaml:"unregister_commands"`
}

// StoreConfig selects where events and preferences are persisted.
type StoreConfig struct {
	// Driver is one of "file", "database" and "redis".
	Driver string `env:"DRIVER" yaml:"driver"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// RedisConfig is the Redis connection configuration.
type RedisConfig struct {
	// Addr is the Redis address [host][:port].
	Addr string `env:"ADDR" yaml:"addr"`
	// Username is the Redis username.
	Username string `env:"USERNAME" yaml:"username"`
	// Password is the Redis password.
	Password string `env:"PASSWORD" yaml:"password"`
	// DB is the Redis database.
	DB int `env:"DB" yaml:"db"`
	// Prefix is prepended to every key.
	Prefix string `env:"PREFIX" yaml:"prefix"`
}

// HTTPConfig is the configuration of the health server.
type HTTPConfig struct {
	// Enabled is whether the health server runs.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the health server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled is whether the stats server runs.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Level is the minimum level logged: "debug", "info", "warn" or "error".
	// HACKBOT_DEBUG forces "debug".
	Level string `env:"LEVEL" yaml:"level"`

	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	PruneEvents string `env:"PRUNE_EVENTS" yaml:"prune_events"`
}

// CacheConfig is the configuration of the rendering cache.
type CacheConfig struct {
	// Size is the number of rendered events kept in memory.
	Size int `env:"SIZE" yaml:"size"`
}

// Config is the configuration for the bot.
type Config struct {
	// Name is the name of the bot.
	Name string `env:"NAME" yaml:"name"`

	// Discord is the gateway session configuration.
	Discord DiscordConfig `envPrefix:"DISCORD_" yaml:"discord"`

	// Store is the persistence configuration.
	Store StoreConfig `envPrefix:"STORE_" yaml:"store"`

	// DB is the database configuration, used by the "database" store.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Redis is the Redis configuration, used by the "redis" store.
	Redis RedisConfig `envPrefix:"REDIS_" yaml:"redis"`

	// HTTP is the configuration for the health server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// Cache is the rendering cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_" yaml:"cache"`

	// DataPath is the path to the directory where the bot stores its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	if c == nil {
		return nil
	}

	return []string{
		fmt.Sprintf("HACKBOT_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("HACKBOT_NAME=%s", c.Name),
		fmt.Sprintf("HACKBOT_DISCORD_APPLICATION_ID=%s", c.Discord.ApplicationID),
		fmt.Sprintf("HACKBOT_DISCORD_GUILD_ID=%s", c.Discord.GuildID),
		fmt.Sprintf("HACKBOT_DISCORD_SELECT_TIMEOUT=%d", c.Discord.SelectTimeout),
		fmt.Sprintf("HACKBOT_DISCORD_UNREGISTER_COMMANDS=%t", c.Discord.UnregisterCommands),
		fmt.Sprintf("HACKBOT_STORE_DRIVER=%s", c.Store.Driver),
		fmt.Sprintf("HACKBOT_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("HACKBOT_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("HACKBOT_REDIS_ADDR=%s", c.Redis.Addr),
		fmt.Sprintf("HACKBOT_REDIS_DB=%d", c.Redis.DB),
		fmt.Sprintf("HACKBOT_REDIS_PREFIX=%s", c.Redis.Prefix),
		fmt.Sprintf("HACKBOT_HTTP_ENABLED=%t", c.HTTP.Enabled),
		fmt.Sprintf("HACKBOT_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("HACKBOT_STATS_ENABLED=%t", c.Stats.Enabled),
		fmt.Sprintf("HACKBOT_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("HACKBOT_LOG_LEVEL=%s", c.Log.Level),
		fmt.Sprintf("HACKBOT_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("HACKBOT_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("HACKBOT_JOBS_PRUNE_EVENTS=%s", c.Jobs.PruneEvents),
		fmt.Sprintf("HACKBOT_CACHE_SIZE=%d", c.Cache.Size),
	}
}

// SelectTimeout returns how long a user has to answer a menu.
func (c *Config) SelectTimeout() time.Duration {
	return time.Duration(c.Discord.SelectTimeout) * time.Second
}

// IsDebug returns true if the bot is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("HACKBOT_DEBUG"))
	return debug
}

// IsVerbose returns true if the bot is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("HACKBOT_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "HACKBOT_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o600) // nolint: errcheck
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the HACKBOT_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("HACKBOT_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string { // nolint:revive
	return filepath.Join(c.DataPath, "config.yaml")
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Hackbot",
		DataPath: DefaultDataPath(),
		Discord: DiscordConfig{
			SelectTimeout: 5 * 60,
		},
		Store: StoreConfig{
			Driver: "file",
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "hackbot.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "hackbot:",
		},
		HTTP: HTTPConfig{
			Enabled:    true,
			ListenAddr: "localhost:23240",
		},
		Stats: StatsConfig{
			Enabled:    true,
			ListenAddr: "localhost:23241",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		Jobs: JobsConfig{
			PruneEvents: "@every 1h",
		},
		Cache: CacheConfig{
			Size: 256,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	switch c.Store.Driver {
	case "file", "database", "redis":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.Store.Driver)
	}

	if c.Discord.SelectTimeout <= 0 {
		return fmt.Errorf("invalid select timeout: %d", c.Discord.SelectTimeout)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	if c.Log.Path != "" && !filepath.IsAbs(c.Log.Path) {
		c.Log.Path = filepath.Join(c.DataPath, c.Log.Path)
	}

	return nil
}
