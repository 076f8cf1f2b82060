package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mobiflow/hubopt/internal/geo"
)

// Config holds the full application configuration.
type Config struct {
	Bounds   BoundsConfig   `yaml:"bounds" mapstructure:"bounds"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	JCDecaux JCDecauxConfig `yaml:"jcdecaux" mapstructure:"jcdecaux"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// BoundsConfig is the search area in decimal degrees.
type BoundsConfig struct {
	North float64 `yaml:"north" mapstructure:"north"`
	South float64 `yaml:"south" mapstructure:"south"`
	East  float64 `yaml:"east" mapstructure:"east"`
	West  float64 `yaml:"west" mapstructure:"west"`
}

// Geo converts the config block into a geo.Bounds.
func (b BoundsConfig) Geo() geo.Bounds {
	return geo.Bounds{North: b.North, South: b.South, East: b.East, West: b.West}
}

// SearchConfig configures the grid search.
type SearchConfig struct {
	Resolution int `yaml:"resolution" mapstructure:"resolution"`
	TopK       int `yaml:"top_k" mapstructure:"top_k"`
	Workers    int `yaml:"workers" mapstructure:"workers"`
}

// JCDecauxConfig holds the bike share feed settings.
type JCDecauxConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Contract    string `yaml:"contract" mapstructure:"contract"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HUBOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults cover Dublin city centre.
	v.SetDefault("bounds.north", 53.37)
	v.SetDefault("bounds.south", 53.32)
	v.SetDefault("bounds.east", -6.22)
	v.SetDefault("bounds.west", -6.30)
	v.SetDefault("search.resolution", 20)
	v.SetDefault("search.top_k", 5)
	v.SetDefault("search.workers", 4)
	v.SetDefault("jcdecaux.base_url", "https://api.jcdecaux.com")
	v.SetDefault("jcdecaux.contract", "dublin")
	v.SetDefault("jcdecaux.timeout_secs", 10)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "hubopt.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	var problems []string

	if err := c.Bounds.Geo().Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Search.Resolution < 2 {
		problems = append(problems, "search.resolution must be >= 2")
	}
	if c.Search.TopK < 1 {
		problems = append(problems, "search.top_k must be >= 1")
	}
	if c.Search.Workers < 0 || c.Search.Workers > 256 {
		problems = append(problems, "search.workers must be between 0 and 256")
	}
	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be > 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
