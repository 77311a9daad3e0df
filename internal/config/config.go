package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/mastermind/internal/entity"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var ErrUnknownStorage = errors.New("unknown storage")

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	NoColor    bool          `yaml:"no-color" env:"MASTERMIND_NO_COLOR"`
	Storage    string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Game       Game          `yaml:"game"`
	Remote     Remote        `yaml:"remote"`
	Redis      Redis         `yaml:"redis"`
}

type Game struct {
	CodeLength int `yaml:"code-length" env:"GAME_CODE_LENGTH" env-default:"4"`
	MinDigit   int `yaml:"min-digit" env:"GAME_MIN_DIGIT" env-default:"1"`
	MaxDigit   int `yaml:"max-digit" env:"GAME_MAX_DIGIT" env-default:"6"`
}

type Remote struct {
	BaseURL string        `yaml:"base-url" env:"REMOTE_BASE_URL" env-default:"http://localhost:9090"`
	Timeout time.Duration `yaml:"timeout" env:"REMOTE_TIMEOUT" env-default:"30s"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the config file at path and then the environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Rules returns the game rules described by the config.
func (that *Config) Rules() (entity.Rules, error) {
	rules := entity.Rules{
		CodeLength: that.Game.CodeLength,
		MinDigit:   that.Game.MinDigit,
		MaxDigit:   that.Game.MaxDigit,
	}

	if err := rules.Check(); err != nil {
		return entity.Rules{}, err
	}

	return rules, nil
}

// Colored reports whether console output may use colors.
// Any non-empty NO_COLOR in the environment switches them off, as does no-color.
func (that *Config) Colored() bool {
	return !that.NoColor && os.Getenv("NO_COLOR") == ""
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	if _, err := that.Rules(); err != nil {
		return fmt.Errorf("invalid game section: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
