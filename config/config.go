package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	Data     DataConfig     `yaml:"data"`
	Airports AirportsConfig `yaml:"airports"`
	Sampling SamplingConfig `yaml:"sampling"`
	Live     LiveConfig     `yaml:"live"`
	Sessions SessionsConfig `yaml:"sessions"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"127.0.0.1"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type DataConfig struct {
	Path                string `yaml:"path" env:"DATA_PATH" env-default:"Dashboard/flight_data.csv.gz"`
	EncodersPath        string `yaml:"encoders_path" env:"DATA_ENCODERS_PATH" env-default:"Dashboard/label_encoders.json"`
	MaxRows             int    `yaml:"max_rows" env:"DATA_MAX_ROWS" env-default:"50000"`
	ScoreColumn         string `yaml:"score_column" env:"DATA_SCORE_COLUMN" env-default:"weatherScore"`
	FilterPositiveScore bool   `yaml:"filter_positive_score" env:"DATA_FILTER_POSITIVE_SCORE" env-default:"true"`
	FlightPrefix        string `yaml:"flight_prefix" env:"DATA_FLIGHT_PREFIX" env-default:"WN"`
}

type AirportsConfig struct {
	DBPath  string `yaml:"db_path" env:"AIRPORTS_DB_PATH" env-default:"data/airports.db"`
	SeedCSV string `yaml:"seed_csv" env:"AIRPORTS_SEED_CSV"`
}

type SamplingConfig struct {
	Target    int `yaml:"target" env:"SAMPLING_TARGET" env-default:"14"`
	PerBucket int `yaml:"per_bucket" env:"SAMPLING_PER_BUCKET" env-default:"3"`
}

type LiveConfig struct {
	Interval time.Duration `yaml:"interval" env:"LIVE_INTERVAL" env-default:"3s"`
}

type SessionsConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SESSIONS_IDLE_TIMEOUT" env-default:"30m"`
	Max         int           `yaml:"max" env:"SESSIONS_MAX" env-default:"10000"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	cfg, err := LoadByPath(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadByPath reads the YAML file at configPath and applies environment
// overrides on top of it.
func LoadByPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read the config: %w", err)
	}

	if cfg.Data.MaxRows <= 0 || cfg.Data.MaxRows > 50000 {
		cfg.Data.MaxRows = 50000
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
