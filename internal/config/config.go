// Package config loads floodsim configuration from an optional YAML file and
// FLOODSIM_* environment variables, and initialises the process logger.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Data       DataConfig       `yaml:"data" mapstructure:"data"`
	Generator  GeneratorConfig  `yaml:"generator" mapstructure:"generator"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// SimulationConfig configures a flood run.
type SimulationConfig struct {
	Seed            int64   `yaml:"seed" mapstructure:"seed"` // 0 draws a seed from entropy
	MaxFloodDepthCm float64 `yaml:"max_flood_depth_cm" mapstructure:"max_flood_depth_cm"`
	PopulationScale int     `yaml:"population_scale" mapstructure:"population_scale"` // Residents per agent
}

// DataConfig locates district reference data and the run archive.
type DataConfig struct {
	DistrictsCSV string `yaml:"districts_csv" mapstructure:"districts_csv"`
	DBPath       string `yaml:"db_path" mapstructure:"db_path"`
}

// GeneratorConfig configures synthetic districts when no CSV is given.
type GeneratorConfig struct {
	Districts int `yaml:"districts" mapstructure:"districts"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("floodsim")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FLOODSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.max_flood_depth_cm", 500)
	v.SetDefault("simulation.population_scale", 1000)
	v.SetDefault("data.districts_csv", "")
	v.SetDefault("data.db_path", "data/floodsim.db")
	v.SetDefault("generator.districts", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.MaxFloodDepthCm <= 0 {
		return eris.Errorf("config: simulation.max_flood_depth_cm must be positive, got %v", c.Simulation.MaxFloodDepthCm)
	}
	if c.Simulation.PopulationScale < 1 {
		return eris.Errorf("config: simulation.population_scale must be at least 1, got %d", c.Simulation.PopulationScale)
	}
	if c.Data.DistrictsCSV == "" && c.Generator.Districts < 2 {
		return eris.Errorf("config: generator.districts must be at least 2, got %d", c.Generator.Districts)
	}
	return nil
}

// InitLogger installs the default slog logger writing to stdout.
func InitLogger(cfg LogConfig) error {
	return initLogger(os.Stdout, cfg)
}

func initLogger(w io.Writer, cfg LogConfig) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return eris.Wrap(err, "config: parse log level")
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return eris.Errorf("config: unknown log format %q", cfg.Format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
