package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Hackbot configuration

# The name of the bot.
name: "{{ .Name }}"

# Discord gateway session.
discord:
  # The bot token. Prefer setting HACKBOT_DISCORD_TOKEN.
  #token: ""

  # The application owning the slash commands.
  application_id: "{{ .Discord.ApplicationID }}"

  # Register the commands in this guild only. Leave empty to register them
  # globally.
  guild_id: "{{ .Discord.GuildID }}"

  # The number of seconds a user has to answer a menu.
  select_timeout: {{ .Discord.SelectTimeout }}

  # Remove the slash commands when the bot stops.
  unregister_commands: {{ .Discord.UnregisterCommands }}

# Where events and preferences are persisted.
store:
  # Valid values are "file", "database" and "redis".
  driver: "{{ .Store.Driver }}"

# Database used by the "database" store.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  # Make sure foreign key support is enabled when using SQLite.
  data_source: "{{ .DB.DataSource }}"

# Redis used by the "redis" store.
redis:
  addr: "{{ .Redis.Addr }}"
  #username: ""
  #password: ""
  db: {{ .Redis.DB }}
  prefix: "{{ .Redis.Prefix }}"

# Logging configuration.
log:
  # Minimum level logged. Valid values are "debug", "info", "warn" and "error".
  level: "{{ .Log.Level }}"
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The health server configuration.
http:
  enabled: {{ .HTTP.Enabled }}
  # The address on which the health server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

# The stats server configuration.
stats:
  enabled: {{ .Stats.Enabled }}
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# Cron job specs.
jobs:
  # Remove events whose scheduled event was deleted.
  prune_events: "{{ .Jobs.PruneEvents }}"

# Rendering cache.
cache:
  size: {{ .Cache.Size }}
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
