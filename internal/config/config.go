// Package config loads tilegrid settings from a TOML file and the
// environment.
//
// Lookup order, later wins: built-in defaults, the config file
// (--config, $TILEGRID_CONFIG or ~/.config/tilegrid/config.toml), and
// TILEGRID_* environment variables such as TILEGRID_CACHE_BACKEND or
// TILEGRID_STORE_MONGO_URI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const appName = "tilegrid"

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Config holds application configuration.
type Config struct {
	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// CacheConfig selects where resolved layouts are cached.
type CacheConfig struct {
	Backend  string `mapstructure:"backend"` // file, redis or none
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
	Prefix   string `mapstructure:"prefix"`
}

// StoreConfig selects where boards are persisted.
type StoreConfig struct {
	Backend         string `mapstructure:"backend"` // file, mongo or memory
	Dir             string `mapstructure:"dir"`
	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn or error
}

// Load reads configuration. An empty path falls back to $TILEGRID_CONFIG and
// then to the default location; a missing default file is not an error, a
// missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("TILEGRID_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else if dir, err := ConfigDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TILEGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	cacheDir, _ := CacheDir()
	configDir, _ := ConfigDir()

	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", cacheDir)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.prefix", "")
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.dir", filepath.Join(configDir, "boards"))
	v.SetDefault("store.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo_database", appName)
	v.SetDefault("store.mongo_collection", "boards")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
}

// Validate checks backend and level names.
func (c Config) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return fmt.Errorf("invalid cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if !slices.Contains([]string{BackendFile, BackendMongo, BackendMemory}, c.Store.Backend) {
		return fmt.Errorf("invalid store.backend %q (must be one of: file, mongo, memory)", c.Store.Backend)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("invalid log.level %q (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/tilegrid/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ConfigDir returns the config directory using XDG standard (~/.config/tilegrid/).
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
