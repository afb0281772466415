package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// HTTPConfig configures the API listener
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig configures the storage backend
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// IntroductionConfig bounds the accepted laying-check delays
type IntroductionConfig struct {
	MinDelayDays int `yaml:"min_delay_days"`
	MaxDelayDays int `yaml:"max_delay_days"`
}

// AlertsConfig sets the default upcoming-alert window
type AlertsConfig struct {
	DaysAhead int `yaml:"days_ahead"`
	GraceDays int `yaml:"grace_days"`
}

// Config is the full server configuration. Values come from defaults, then an
// optional YAML file, then environment variables, later sources winning.
type Config struct {
	HTTP          HTTPConfig         `yaml:"http"`
	Redis         RedisConfig        `yaml:"redis"`
	Introductions IntroductionConfig `yaml:"introductions"`
	Alerts        AlertsConfig       `yaml:"alerts"`
	Debug         bool               `yaml:"debug"`
}

func defaults() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Introductions: IntroductionConfig{
			MinDelayDays: 1,
			MaxDelayDays: 60,
		},
		Alerts: AlertsConfig{
			DaysAhead: 7,
			GraceDays: 14,
		},
	}
}

// Load builds the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = getEnv("SWARMTRACK_HTTP_ADDR", c.HTTP.Addr)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Debug = getEnvBool("SWARMTRACK_DEBUG", c.Debug)
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr cannot be empty")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr cannot be empty")
	}
	if c.Introductions.MinDelayDays < 1 {
		return fmt.Errorf("introductions.min_delay_days must be at least 1")
	}
	if c.Introductions.MaxDelayDays < c.Introductions.MinDelayDays {
		return fmt.Errorf("introductions.max_delay_days must be at least min_delay_days")
	}
	if c.Alerts.DaysAhead < 1 || c.Alerts.GraceDays < 1 {
		return fmt.Errorf("alerts windows must be at least 1 day")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
