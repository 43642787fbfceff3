package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config holds process settings read once at startup. Database credentials
// are not part of it: see DatabaseFromEnv.
type Config struct {
	Host            string
	Port            string
	Environment     string
	LogLevel        string
	ConnectAttempts int
	ConnectDelay    time.Duration
	ConnectTimeout  time.Duration
	VoteRateLimit   int
}

// Database is the location and credentials of the vote store.
type Database struct {
	Host     string
	Name     string
	User     string
	Password string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	attempts, err := getEnvInt("DB_CONNECT_ATTEMPTS", 10)
	if err != nil {
		return Config{}, err
	}
	delay, err := getEnvDuration("DB_CONNECT_DELAY", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvInt("VOTE_RATE_LIMIT", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Host:            getEnv("APP_HOST", "0.0.0.0"),
		Port:            getEnv("APP_PORT", "5000"),
		Environment:     getEnv("APP_ENV", EnvDev),
		LogLevel:        getEnv("LOG_LEVEL", LogLevelInfo),
		ConnectAttempts: attempts,
		ConnectDelay:    delay,
		ConnectTimeout:  timeout,
		VoteRateLimit:   rateLimit,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required, is.Host),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&c.ConnectAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.ConnectDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.ConnectTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.VoteRateLimit, validation.Min(0)),
	)
}

// DatabaseFromEnv reads the store location on every call so that a changed
// environment is picked up by the next connection attempt.
func DatabaseFromEnv() Database {
	return Database{
		Host:     os.Getenv("DB_HOST"),
		Name:     os.Getenv("DB_NAME"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return d, nil
}
