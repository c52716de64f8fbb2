package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the process configuration. Values come from defaults, then
// showdown.yaml, then SHOWDOWN_* environment variables.
type Config struct {
	Env       string `mapstructure:"ENV" validate:"oneof=development production test"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`

	// RulesDir overrides the embedded rule tables when set.
	RulesDir   string `mapstructure:"RULES_DIR"`
	WatchRules bool   `mapstructure:"WATCH_RULES"`
	DefaultSet string `mapstructure:"DEFAULT_SET" validate:"required"`

	GRPCAddr     string        `mapstructure:"GRPC_ADDR" validate:"required"`
	BuildTimeout time.Duration `mapstructure:"BUILD_TIMEOUT" validate:"gt=0"`
	BatchWorkers int           `mapstructure:"BATCH_WORKERS" validate:"gte=1,lte=256"`

	SimTrials int    `mapstructure:"SIM_TRIALS" validate:"gte=1"`
	SimSeed   uint64 `mapstructure:"SIM_SEED"`
}

const envPrefix = "SHOWDOWN"

var validate = validator.New()

// Load reads the configuration. An empty path looks for showdown.yaml in
// the working directory; a missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RULES_DIR", "")
	v.SetDefault("WATCH_RULES", false)
	v.SetDefault("DEFAULT_SET", "CLASSIC")
	v.SetDefault("GRPC_ADDR", ":9090")
	v.SetDefault("BUILD_TIMEOUT", "10s")
	v.SetDefault("BATCH_WORKERS", 4)
	v.SetDefault("SIM_TRIALS", 1000)
	v.SetDefault("SIM_SEED", 0)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("showdown")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
