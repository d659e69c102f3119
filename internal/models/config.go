package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type WeatherConfig struct {
	Provider           string        `mapstructure:"provider"` // static or open-meteo
	BaseURL            string        `mapstructure:"base_url"`
	Latitude           float64       `mapstructure:"latitude"`
	Longitude          float64       `mapstructure:"longitude"`
	Timeout            time.Duration `mapstructure:"timeout"`
	TemperatureCelsius float64       `mapstructure:"temperature_celsius"`
	Condition          string        `mapstructure:"condition"`
	HumidityPercent    float64       `mapstructure:"humidity_percent"`
}

type OptimizerConfig struct {
	WindowDays         int           `mapstructure:"window_days"`
	PopularLimit       int           `mapstructure:"popular_limit"`
	StoreTimeout       time.Duration `mapstructure:"store_timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	RetryBackoff       time.Duration `mapstructure:"retry_backoff"`
	MaxConcurrency     int           `mapstructure:"max_concurrency"`
	SeasonalAddRevenue float64       `mapstructure:"seasonal_add_revenue"`
	CategoryAddRevenue float64       `mapstructure:"category_add_revenue"`
}

type SeasonalityConfig struct {
	CatalogFile string `mapstructure:"catalog_file"`
}

type OutputConfig struct {
	Destination     string `mapstructure:"destination"` // console, json, kafka, s3, parquet
	Folder          string `mapstructure:"folder"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	Topic           string `mapstructure:"topic"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3Region        string `mapstructure:"s3_region"`
	S3Prefix        string `mapstructure:"s3_prefix"`
}

type SeedConfig struct {
	Seed               int64     `mapstructure:"seed"`
	Restaurants        int       `mapstructure:"restaurants"`
	ItemsPerRestaurant int       `mapstructure:"items_per_restaurant"`
	OrdersPerDay       int       `mapstructure:"orders_per_day"`
	Days               int       `mapstructure:"days"`
	EndDate            time.Time `mapstructure:"end_date"`
}

type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Database    DatabaseConfig    `mapstructure:"database"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Weather     WeatherConfig     `mapstructure:"weather"`
	Optimizer   OptimizerConfig   `mapstructure:"optimizer"`
	Seasonality SeasonalityConfig `mapstructure:"seasonality"`
	Output      OutputConfig      `mapstructure:"output"`
	Seed        SeedConfig        `mapstructure:"seed"`
}

// SetDefaults registers every config key on v so env overrides work even
// when no config file is present.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.connect_timeout", "5s")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("weather.provider", "static")
	v.SetDefault("weather.base_url", "https://api.open-meteo.com")
	v.SetDefault("weather.latitude", 41.9028)
	v.SetDefault("weather.longitude", 12.4964)
	v.SetDefault("weather.timeout", "3s")
	v.SetDefault("weather.temperature_celsius", 18.0)
	v.SetDefault("weather.condition", "clear")
	v.SetDefault("weather.humidity_percent", 60.0)

	v.SetDefault("optimizer.window_days", 30)
	v.SetDefault("optimizer.popular_limit", 3)
	v.SetDefault("optimizer.store_timeout", "5s")
	v.SetDefault("optimizer.max_retries", 2)
	v.SetDefault("optimizer.retry_backoff", "100ms")
	v.SetDefault("optimizer.max_concurrency", 8)
	v.SetDefault("optimizer.seasonal_add_revenue", 800.0)
	v.SetDefault("optimizer.category_add_revenue", 500.0)

	v.SetDefault("seasonality.catalog_file", "")

	v.SetDefault("output.destination", "console")
	v.SetDefault("output.folder", "output")
	v.SetDefault("output.kafka_broker_list", "localhost:9092")
	v.SetDefault("output.topic", SuggestionTopic)
	v.SetDefault("output.s3_bucket", "")
	v.SetDefault("output.s3_region", "eu-west-1")
	v.SetDefault("output.s3_prefix", "menuintel")

	v.SetDefault("seed.seed", 42)
	v.SetDefault("seed.restaurants", 3)
	v.SetDefault("seed.items_per_restaurant", 12)
	v.SetDefault("seed.orders_per_day", 40)
	v.SetDefault("seed.days", 30)
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	return LoadConfigWith(viper.GetViper(), cfgFile)
}

// LoadConfigWith is LoadConfig against an explicit viper instance.
func LoadConfigWith(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("examples")
		v.SetConfigName("menuintel")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MENUINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, an explicit or malformed one is not
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	var problems []string
	if cfg.Optimizer.WindowDays <= 0 {
		problems = append(problems, "optimizer.window_days must be positive")
	}
	if cfg.Optimizer.PopularLimit <= 0 {
		problems = append(problems, "optimizer.popular_limit must be positive")
	}
	if cfg.Optimizer.MaxRetries < 0 {
		problems = append(problems, "optimizer.max_retries must not be negative")
	}
	if cfg.Optimizer.MaxConcurrency <= 0 {
		problems = append(problems, "optimizer.max_concurrency must be positive")
	}
	if cfg.Optimizer.StoreTimeout <= 0 {
		problems = append(problems, "optimizer.store_timeout must be positive")
	}
	switch cfg.Weather.Provider {
	case "static", "open-meteo":
	default:
		problems = append(problems, fmt.Sprintf("unknown weather.provider %q", cfg.Weather.Provider))
	}
	switch cfg.Output.Destination {
	case "console", "json", "kafka", "s3", "parquet":
	default:
		problems = append(problems, fmt.Sprintf("unknown output.destination %q", cfg.Output.Destination))
	}
	if cfg.Output.Destination == "s3" && cfg.Output.S3Bucket == "" {
		problems = append(problems, "output.s3_bucket is required for the s3 destination")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
