package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://v6.exchangerate-api.com/v6"

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Cache struct {
	TTL           time.Duration `mapstructure:"ttl"`
	MaxItems      int64         `mapstructure:"max_items"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	Coalesce      bool          `mapstructure:"coalesce"`
	WarmPairs     []string      `mapstructure:"warm_pairs"`
	WarmInterval  time.Duration `mapstructure:"warm_interval"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer          HTTPServer      `mapstructure:"http_server"`
	HTTPClient          HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI     ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Cache               Cache           `mapstructure:"cache"`
	Logging             Logging         `mapstructure:"logging"`
	SupportedCurrencies []string        `mapstructure:"supported_currencies"`
}

// LatestURL is the endpoint prefix a currency code gets appended to.
func (c ExchangeRateAPI) LatestURL() string {
	return fmt.Sprintf("%s/%s/latest", strings.TrimSuffix(c.BaseURL, "/"), c.APIKey)
}

func (c HTTPClient) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *AppConfig) Validate() error {
	if c.ExchangeRateAPI.APIKey == "" {
		return errors.New("exchange rate api key is required (set CURRENCY_CONVERTER_API_KEY)")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.MaxItems < 0 {
		return fmt.Errorf("cache max_items must not be negative, got %d", c.Cache.MaxItems)
	}
	return nil
}

// Init reads an optional .env and an optional YAML file, then applies env overrides.
// An empty configPath looks for config.yaml in the working directory.
func Init(configPath string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", DefaultBaseURL)
	v.SetDefault("cache.ttl", 2*time.Hour)
	v.SetDefault("cache.max_items", 0)
	v.SetDefault("cache.sweep_interval", 0)
	v.SetDefault("cache.coalesce", false)
	v.SetDefault("cache.warm_pairs", []string{})
	v.SetDefault("cache.warm_interval", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("supported_currencies", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// exchange rate api env vars
	_ = v.BindEnv("exchange_rate_api.api_key", "CURRENCY_CONVERTER_API_KEY")
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")

	// cache env vars
	_ = v.BindEnv("cache.ttl", "CACHE_TTL")
	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
	_ = v.BindEnv("cache.sweep_interval", "CACHE_SWEEP_INTERVAL")
	_ = v.BindEnv("cache.coalesce", "CACHE_COALESCE")

	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
