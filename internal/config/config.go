package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Transit   TransitConfig
	Tokenizer TokenizerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// TransitConfig points the fetcher at the route-planning site.
type TransitConfig struct {
	SuggestBaseURL string
	SearchBaseURL  string
	RequestTimeout time.Duration
	UserAgent      string
}

type TokenizerConfig struct {
	Encoding string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine; env vars alone can carry the config.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Transit: TransitConfig{
			SuggestBaseURL: viper.GetString("TRANSIT_SUGGEST_BASE_URL"),
			SearchBaseURL:  viper.GetString("TRANSIT_SEARCH_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("TRANSIT_REQUEST_TIMEOUT")) * time.Second,
			UserAgent:      viper.GetString("TRANSIT_USER_AGENT"),
		},
		Tokenizer: TokenizerConfig{
			Encoding: viper.GetString("TOKENIZER_ENCODING"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Transit.SuggestBaseURL == "" {
		cfg.Transit.SuggestBaseURL = "https://transit.yahoo.co.jp/api/suggest"
	}
	if cfg.Transit.SearchBaseURL == "" {
		cfg.Transit.SearchBaseURL = "https://transit.yahoo.co.jp/search/result"
	}
	if cfg.Transit.RequestTimeout == 0 {
		cfg.Transit.RequestTimeout = 15 * time.Second
	}
	if cfg.Transit.UserAgent == "" {
		cfg.Transit.UserAgent = "my-transit-mcp/1.0"
	}
	if cfg.Tokenizer.Encoding == "" {
		cfg.Tokenizer.Encoding = "cl100k_base"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
