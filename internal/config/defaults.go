package config

const (
	defaultLogDir           = "~/.local/share/recshard/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultPollIntervalMS   = 0
	defaultWatchSource      = true
	defaultConfigLocation   = "~/.config/recshard/config.toml"
	projectConfigName       = "recshard.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Workflow: Workflow{
			PollIntervalMS: defaultPollIntervalMS,
			WatchSource:    defaultWatchSource,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
