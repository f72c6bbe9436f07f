package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	OutputDir    string        `yaml:"output_dir" env:"OUTPUT_DIR" env-default:"datasets"`
	Formats      []string      `yaml:"formats" env:"FORMATS" env-default:"csv"`
	Quantities   []string      `yaml:"quantities" env:"QUANTITIES" env-default:"current,temperature"`
	Seed         uint64        `yaml:"seed" env:"SEED" env-default:"42"`
	Mode         string        `yaml:"mode" env:"MODE" env-default:"sequential"`
	Workers      int           `yaml:"workers" env:"WORKERS" env-default:"4"`
	Start        string        `yaml:"start" env:"START" env-default:"2021-01-01T00:00:00Z"`
	Days         int           `yaml:"days" env:"DAYS" env-default:"31"`
	Step         time.Duration `yaml:"step" env:"STEP" env-default:"5m"`
	DayStartHour int           `yaml:"day_start_hour" env:"DAY_START_HOUR" env-default:"8"`
	DayEndHour   int           `yaml:"day_end_hour" env:"DAY_END_HOUR" env-default:"20"`
	MetricsFile  string        `yaml:"metrics_file" env:"METRICS_FILE"`
	WebhookURL   string        `yaml:"webhook_url" env:"WEBHOOK_URL"`
	LogLevel     string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	Mongo  Mongo  `yaml:"mongo" env-prefix:"MONGO_"`
	Rabbit Rabbit `yaml:"rabbit" env-prefix:"RABBIT_"`
}

// Mongo sink settings. Empty URI disables the sink.
type Mongo struct {
	URI        string `yaml:"uri" env:"URI"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-default:"sensorgen"`
	Collection string `yaml:"collection" env:"COLLECTION" env-default:"readings"`
	BatchSize  int    `yaml:"batch_size" env:"BATCH_SIZE" env-default:"1000"`
}

// Rabbit sink settings. Empty URI disables the sink.
type Rabbit struct {
	URI   string `yaml:"uri" env:"URI"`
	Queue string `yaml:"queue" env:"QUEUE" env-default:"datasets"`
}

// StartTime parses Start as RFC 3339.
func (c *Config) StartTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("start: %w", err)
	}
	return t.UTC(), nil
}

// Ticks is the number of samples in the generated period.
func (c *Config) Ticks() int {
	if c.Step <= 0 {
		return 0
	}
	return int(time.Duration(c.Days) * 24 * time.Hour / c.Step)
}

// Load reads the YAML file named by CONFIG_PATH, with environment
// overrides, or the environment alone when CONFIG_PATH is unset.
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
