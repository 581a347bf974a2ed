package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github-commits-notifier/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Messaging backend
	Telegram TelegramConfig

	// Inbound GitHub webhooks
	Webhook WebhookConfig

	// Repository → rooms subscriptions
	GithubCommits GithubCommitsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken        string
	APIURL          string
	RateLimitPerSec float64
	Burst           int
	Timeout         time.Duration
}

type WebhookConfig struct {
	Path         string
	DedupeSize   int
	DedupeTTL    time.Duration
	MaxBodyBytes int64
}

// GithubCommitsConfig is the normalized subscription table, keyed by lowercased
// "owner/name". Every value is a list, possibly empty.
type GithubCommitsConfig struct {
	Repos map[string][]string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/github-commits-notifier/
// unless path points to a specific file.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/github-commits-notifier/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Telegram.APIURL = v.GetString("telegram.api_url")
	cfg.Telegram.RateLimitPerSec = v.GetFloat64("telegram.rate_limit_per_sec")
	cfg.Telegram.Burst = v.GetInt("telegram.burst")
	cfg.Telegram.Timeout = v.GetDuration("telegram.timeout")

	// Webhooks
	cfg.Webhook.Path = v.GetString("webhook.path")
	cfg.Webhook.DedupeSize = v.GetInt("webhook.dedupe_size")
	cfg.Webhook.DedupeTTL = v.GetDuration("webhook.dedupe_ttl")
	cfg.Webhook.MaxBodyBytes = v.GetInt64("webhook.max_body_bytes")

	// Subscriptions
	repos, err := normalizeRepos(v.GetStringMap("github_commits.repos"))
	if err != nil {
		return nil, err
	}
	cfg.GithubCommits.Repos = repos

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", string(model.EnvironmentDevelopment))
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("telegram.api_url", "https://api.telegram.org")
	v.SetDefault("telegram.rate_limit_per_sec", 25)
	v.SetDefault("telegram.burst", 5)
	v.SetDefault("telegram.timeout", "10s")

	v.SetDefault("webhook.path", "/github-commits")
	v.SetDefault("webhook.dedupe_size", 1000)
	v.SetDefault("webhook.dedupe_ttl", "10m")
	v.SetDefault("webhook.max_body_bytes", 5<<20)
}

func validate(cfg *Config) error {
	if cfg.HTTPServer.Port <= 0 {
		return fmt.Errorf("http_server.port must be positive, got %d", cfg.HTTPServer.Port)
	}
	if !strings.HasPrefix(cfg.Webhook.Path, "/") {
		return fmt.Errorf("webhook.path must start with '/', got %q", cfg.Webhook.Path)
	}
	if cfg.Webhook.MaxBodyBytes <= 0 {
		return fmt.Errorf("webhook.max_body_bytes must be positive")
	}
	if cfg.Telegram.RateLimitPerSec <= 0 {
		return fmt.Errorf("telegram.rate_limit_per_sec must be positive")
	}
	return nil
}
