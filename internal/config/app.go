package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	PreferencesMemory   = "memory"
	PreferencesPostgres = "postgres"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// GetConnectionStr is accepted by both pgxpool and the pgx stdlib driver used for migrations.
func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type RatesAPI struct {
	BaseURL string `mapstructure:"base_url"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Preferences struct {
	Driver string `mapstructure:"driver"`
}

type Store struct {
	FreshnessSeconds int `mapstructure:"freshness_seconds"`
	RetryDelayMillis int `mapstructure:"retry_delay_millis"`
}

type Reachability struct {
	ProbeIntervalSeconds int `mapstructure:"probe_interval_seconds"`
}

type Catalog struct {
	Path            string `mapstructure:"path"`
	SearchCacheSize int64  `mapstructure:"search_cache_size"`
}

type AppConfig struct {
	HTTPServer   HTTPServer   `mapstructure:"http_server"`
	DbServer     DbServer     `mapstructure:"db_server"`
	HTTPClient   HTTPClient   `mapstructure:"http_client"`
	RatesAPI     RatesAPI     `mapstructure:"rates_api"`
	Logging      Logging      `mapstructure:"logging"`
	Preferences  Preferences  `mapstructure:"preferences"`
	Store        Store        `mapstructure:"store"`
	Reachability Reachability `mapstructure:"reachability"`
	Catalog      Catalog      `mapstructure:"catalog"`
}

func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

// Load reads path (optional) and the environment. A missing .env is fine.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("rates_api.base_url", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies")
	v.SetDefault("logging.level", "info")
	v.SetDefault("preferences.driver", PreferencesMemory)
	v.SetDefault("store.freshness_seconds", 300)
	v.SetDefault("store.retry_delay_millis", 1000)
	v.SetDefault("reachability.probe_interval_seconds", 10)
	v.SetDefault("catalog.search_cache_size", 1024)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("rates_api.base_url", "RATES_API_BASE_URL")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("preferences.driver", "PREFERENCES_DRIVER")
	_ = v.BindEnv("catalog.path", "CATALOG_PATH")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Preferences.Driver {
	case PreferencesMemory, PreferencesPostgres:
	default:
		return nil, fmt.Errorf("unknown preferences driver %q", cfg.Preferences.Driver)
	}
	return &cfg, nil
}
