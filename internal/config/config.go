package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rpggio/propcatalog/internal/carousel"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Carousel  CarouselConfig  `yaml:"carousel"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"PROPCATALOG_SERVER_HOST"`
	Port int    `yaml:"port" env:"PROPCATALOG_SERVER_PORT"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"PROPCATALOG_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"PROPCATALOG_LOG_LEVEL"`
	Path  string `yaml:"path" env:"PROPCATALOG_LOG_PATH"`
}

// TransportConfig selects how the MCP server is exposed.
type TransportConfig struct {
	Mode string `yaml:"mode" env:"PROPCATALOG_TRANSPORT_MODE"`
}

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Catalog source kinds.
const (
	SourceSQLite = "sqlite"
	SourceFile   = "file"
	SourceRemote = "remote"
)

type CatalogConfig struct {
	Source          string        `yaml:"source" env:"PROPCATALOG_CATALOG_SOURCE"`
	SeedFile        string        `yaml:"seed_file" env:"PROPCATALOG_CATALOG_SEED_FILE"`
	RemoteURL       string        `yaml:"remote_url" env:"PROPCATALOG_CATALOG_REMOTE_URL"`
	RemoteTimeout   time.Duration `yaml:"remote_timeout" env:"PROPCATALOG_CATALOG_REMOTE_TIMEOUT"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"PROPCATALOG_CATALOG_REFRESH_INTERVAL"`
	TrendingSize    int           `yaml:"trending_size" env:"PROPCATALOG_CATALOG_TRENDING_SIZE"`
	FeaturedLimit   int           `yaml:"featured_limit" env:"PROPCATALOG_CATALOG_FEATURED_LIMIT"`
	CurrencySymbol  string        `yaml:"currency_symbol" env:"PROPCATALOG_CATALOG_CURRENCY_SYMBOL"`
	Locale          string        `yaml:"locale" env:"PROPCATALOG_CATALOG_LOCALE"`
}

// CarouselConfig mirrors carousel.Config with string breakpoint keys so it
// can be set from YAML and the environment ("base:1,md:2,lg:3").
type CarouselConfig struct {
	SlidesPerView                map[string]int `yaml:"slides_per_view" env:"PROPCATALOG_CAROUSEL_SLIDES_PER_VIEW"`
	SpaceBetween                 int            `yaml:"space_between" env:"PROPCATALOG_CAROUSEL_SPACE_BETWEEN"`
	AutoplayDelayMs              int            `yaml:"autoplay_delay_ms" env:"PROPCATALOG_CAROUSEL_AUTOPLAY_DELAY_MS"`
	DisableAutoplayOnInteraction bool           `yaml:"disable_autoplay_on_interaction" env:"PROPCATALOG_CAROUSEL_DISABLE_ON_INTERACTION"`
	Loop                         bool           `yaml:"loop" env:"PROPCATALOG_CAROUSEL_LOOP"`
}

// Carousel converts the section into the engine contract.
func (c CarouselConfig) Carousel() carousel.Config {
	spv := make(map[carousel.Breakpoint]int, len(c.SlidesPerView))
	for name, n := range c.SlidesPerView {
		spv[carousel.Breakpoint(strings.ToLower(strings.TrimSpace(name)))] = n
	}
	return carousel.Config{
		SlidesPerView:                spv,
		SpaceBetween:                 c.SpaceBetween,
		AutoplayDelayMs:              c.AutoplayDelayMs,
		DisableAutoplayOnInteraction: c.DisableAutoplayOnInteraction,
		Loop:                         c.Loop,
	}.Normalize()
}

// Default returns the built-in configuration.
func Default() Config {
	spv := make(map[string]int, len(carousel.DefaultSlidesPerView))
	for bp, n := range carousel.DefaultSlidesPerView {
		spv[string(bp)] = n
	}
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "propcatalog.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Catalog: CatalogConfig{
			Source:          SourceSQLite,
			RemoteTimeout:   15 * time.Second,
			RefreshInterval: 0,
			TrendingSize:    8,
			FeaturedLimit:   6,
			CurrencySymbol:  "₹",
			Locale:          "en-IN",
		},
		Carousel: CarouselConfig{
			SlidesPerView:   spv,
			SpaceBetween:    carousel.DefaultSpaceBetween,
			AutoplayDelayMs: carousel.DefaultAutoplayDelayMs,
			Loop:            true,
		},
	}
}

// Load reads configuration from built-in defaults, an optional YAML file,
// an optional .env file and finally environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PROPCATALOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := loadDotEnv(os.Getenv("PROPCATALOG_ENV_FILE")); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports values the server can't start with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		errs = append(errs, fmt.Errorf("unknown transport.mode %q", c.Transport.Mode))
	}
	switch c.Catalog.Source {
	case SourceSQLite:
	case SourceFile:
		if c.Catalog.SeedFile == "" {
			errs = append(errs, errors.New("catalog.seed_file is required for the file source"))
		}
	case SourceRemote:
		if c.Catalog.RemoteURL == "" {
			errs = append(errs, errors.New("catalog.remote_url is required for the remote source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog.source %q", c.Catalog.Source))
	}
	if c.Catalog.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("catalog.refresh_interval must not be negative"))
	}
	if err := c.Carousel.Carousel().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("carousel: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. With no path, a .env in the working
// directory is used when present.
func loadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
