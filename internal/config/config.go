package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/erraruga/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = string(LogLevelWarning)
	DefaultEnvPrefix = "ERRARUGA"
	configName       = "erraruga"
)

type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	Console   bool   `mapstructure:"console"`
	Catalog   string `mapstructure:"catalog"`
	Database  string `mapstructure:"database"`
	DemoRules bool   `mapstructure:"demo_rules"`
	Metrics   bool   `mapstructure:"metrics"`

	// Args holds the positional arguments left after flag parsing.
	Args []string `mapstructure:"-"`
}

// flag name -> viper key
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"console":    "console",
	"catalog":    "catalog",
	"database":   "database",
	"demo-rules": "demo_rules",
	"metrics":    "metrics",
}

// Load parses args with fs, after registering the global flags on it, and
// merges defaults, the config file, environment variables and flags, in
// increasing priority.
func Load(fs *pflag.FlagSet, args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	configFlag := fs.String("config", "", "Path to the configuration file")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, warning, error)")
	fs.Bool("console", true, "Human readable log output")
	fs.String("catalog", "", "Path to a YAML rule catalog")
	fs.String("database", "", "Path to the SQLite rule catalog")
	fs.Bool("demo-rules", true, "Register the built-in demo rules")
	fs.Bool("metrics", false, "Collect resolution metrics")

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("console", true)
	v.SetDefault("demo_rules", true)
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := o.configPath
	if *configFlag != "" {
		path = *configFlag
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/erraruga")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.Args = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errors.New().WithMessage(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
