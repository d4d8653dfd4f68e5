package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

const (
	defaultPort              = "3000"
	defaultThesauriURL       = "http://localhost:4000/api"
	defaultThesauriTimeout   = 10 * time.Second
	defaultLookupConcurrency = 16
	defaultCacheTTL          = 24 * time.Hour
	defaultLogLevel          = "info"
)

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	setDefaults(viperConfig)
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("thesauri.url", defaultThesauriURL)
	v.SetDefault("thesauri.timeout", defaultThesauriTimeout)
	v.SetDefault("lexical.concurrency", defaultLookupConcurrency)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("logging.level", defaultLogLevel)
}

func (c *Config) GetPort() string {
	port := c.config.GetString("PORT")
	if len(port) == 0 {
		port = c.config.GetString("server.port")
	}

	return port
}

// GetThesauriURL is the base URL of the ThesauriUltra API, without a trailing slash.
func (c *Config) GetThesauriURL() string {
	url := c.config.GetString("THESAURI_URL")
	if len(url) == 0 {
		url = c.config.GetString("thesauri.url")
	}

	return url
}

func (c *Config) GetThesauriTimeout() time.Duration {
	if c.config.IsSet("THESAURI_TIMEOUT") {
		if timeout := c.config.GetDuration("THESAURI_TIMEOUT"); timeout > 0 {
			return timeout
		}
	}

	timeout := c.config.GetDuration("thesauri.timeout")
	if timeout <= 0 {
		return defaultThesauriTimeout
	}

	return timeout
}

func (c *Config) GetLookupConcurrency() int {
	concurrency := c.config.GetInt("LOOKUP_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = c.config.GetInt("lexical.concurrency")
	}
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}

	return concurrency
}

func (c *Config) IsCacheEnabled() bool {
	if c.config.IsSet("CACHE_ENABLED") {
		return c.config.GetBool("CACHE_ENABLED")
	}

	return c.config.GetBool("cache.enabled")
}

func (c *Config) GetCacheTTL() time.Duration {
	if c.config.IsSet("CACHE_TTL") {
		if ttl := c.config.GetDuration("CACHE_TTL"); ttl > 0 {
			return ttl
		}
	}

	ttl := c.config.GetDuration("cache.ttl")
	if ttl <= 0 {
		return defaultCacheTTL
	}

	return ttl
}

func (c *Config) GetKVDBPath() string {
	kvdbPath := c.config.GetString("KVDB_PATH")
	if len(kvdbPath) == 0 {
		kvdbPath = c.config.GetString("database.kvdb_path")
	}

	return kvdbPath
}

// GetIndexPath returns the on-disk location of the document index. An empty
// path keeps the index in memory.
func (c *Config) GetIndexPath() string {
	indexPath := c.config.GetString("INDEX_PATH")
	if len(indexPath) == 0 {
		indexPath = c.config.GetString("database.index_path")
	}

	return indexPath
}

func (c *Config) GetLogLevel() string {
	level := c.config.GetString("LOG_LEVEL")
	if len(level) == 0 {
		level = c.config.GetString("logging.level")
	}

	return level
}

// Set overrides a single key, mostly useful for command line flags and tests.
func (c *Config) Set(key string, value any) {
	c.config.Set(key, value)
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
