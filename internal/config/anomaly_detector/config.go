package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	InputDir string `yaml:"input_dir" env:"INPUT_DIR" env-default:"datasets"`
	// InputFormats are tried in order; the first existing file is scored.
	InputFormats []string `yaml:"input_formats" env:"INPUT_FORMATS" env-default:"csv,xlsx"`
	OutputDir    string   `yaml:"output_dir" env:"OUTPUT_DIR" env-default:"results"`
	Quantities   []string `yaml:"quantities" env:"QUANTITIES" env-default:"current,temperature"`
	Seed         uint64   `yaml:"seed" env:"SEED" env-default:"42"`
	// Contamination overrides the per-variant rate when positive.
	Contamination float64 `yaml:"contamination" env:"CONTAMINATION"`
	MetricsFile   string  `yaml:"metrics_file" env:"METRICS_FILE"`
	LogLevel      string  `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("error reading environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
