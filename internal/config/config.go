package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultPathLimit bounds path enumeration unless configured otherwise.
// Puzzles such as missionaries and cannibals have hundreds of thousands of paths.
const DefaultPathLimit = 1000

// EnvPrefix prefixes every environment override (RIVERCROSS_LOG_LEVEL, ...).
const EnvPrefix = "RIVERCROSS"

// Config holds CLI and server configuration.
type Config struct {
	Dir   string      `mapstructure:"dir"`
	Log   LogConfig   `mapstructure:"log"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	Redis RedisConfig `mapstructure:"redis"`
	Solve SolveConfig `mapstructure:"solve"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// RedisConfig holds the solution cache settings. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// SolveConfig holds solver defaults.
type SolveConfig struct {
	// PathLimit is the default cap on enumerated paths. Zero means unlimited.
	PathLimit int `mapstructure:"path_limit"`

	// MaxPaths is the most paths serve and mcp enumerate for one request,
	// whatever the request asks for. Zero removes the cap.
	MaxPaths int `mapstructure:"max_paths"`

	// Cache stores solutions on disk under <dir>/.rivercross/solutions when Redis is not configured.
	Cache bool `mapstructure:"cache"`
}

// flagKeys maps configuration keys to the CLI flags that may override them.
var flagKeys = map[string]string{
	"dir":              "dir",
	"log.level":        "log-level",
	"http.port":        "port",
	"redis.addr":       "redis-addr",
	"solve.path_limit": "limit",
	"solve.max_paths":  "max-paths",
	"solve.cache":      "cache",
}

// Load reads configuration from defaults, an optional YAML file, the
// environment and flags, in increasing order of precedence.
//
// When file is empty, "rivercross.yaml" in the working directory is read if it exists.
// flags may be nil.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.port", 8080)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("redis.prefix", "rivercross:")
	v.SetDefault("solve.path_limit", DefaultPathLimit)
	v.SetDefault("solve.max_paths", DefaultPathLimit)
	v.SetDefault("solve.cache", false)

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("rivercross")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Solve.PathLimit < 0 {
		return Config{}, fmt.Errorf("solve.path_limit must not be negative (got %d)", c.Solve.PathLimit)
	}
	if c.Solve.MaxPaths < 0 {
		return Config{}, fmt.Errorf("solve.max_paths must not be negative (got %d)", c.Solve.MaxPaths)
	}
	return c, nil
}
