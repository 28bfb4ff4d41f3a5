package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	// Dimensions is the cycle of board sizes offered to players; the first one is the default.
	Dimensions []int         `yaml:"dimensions" env:"GAME_DIMENSIONS" env-default:"16,10,12,20"`
	FirstTurn  string        `yaml:"first-turn" env:"GAME_FIRST_TURN" env-default:"random"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the file, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate - board sizes must form a non-empty cycle without repeats and the first turn rule must parse.
func (that *Config) Validate() error {
	if len(that.Game.Dimensions) == 0 {
		return fmt.Errorf("%w: the list is empty", apperror.ErrInvalidDimension)
	}

	for index, dimension := range that.Game.Dimensions {
		if dimension < entity.MinDimension {
			return fmt.Errorf("%w: %d is smaller than %d", apperror.ErrInvalidDimension, dimension, entity.MinDimension)
		}

		if slices.Index(that.Game.Dimensions, dimension) != index {
			return fmt.Errorf("%w: %d is listed twice", apperror.ErrInvalidDimension, dimension)
		}
	}

	if _, err := gomoku.ParseFirstTurn(that.Game.FirstTurn); err != nil {
		return err
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
