// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// An optional .env file in the working directory is loaded first, so any
// variable it defines (including CONFIG_PATH) behaves like a real
// environment variable.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Users      Users      `yaml:"users"`
}

// Storage selects the backend that holds the user and blog collections.
type Storage struct {
	// Driver is one of "file" (a JSON file per collection), "sqlite"
	// (one row per collection) or "memory" (lost on exit).
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file" validate:"oneof=file sqlite memory"`

	// Path is the directory holding <collection>.json for the file driver,
	// or the .db file for the sqlite driver. Ignored by the memory driver.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"database"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Users carries the thresholds the user store validates against.
// MinAge of 0 disables the age check entirely.
type Users struct {
	MinUsernameLength int    `yaml:"min_username_length" env:"USERS_MIN_USERNAME_LENGTH" env-default:"3" validate:"gte=1"`
	MinPasswordLength int    `yaml:"min_password_length" env:"USERS_MIN_PASSWORD_LENGTH" env-default:"5" validate:"gte=1"`
	MinAge            int    `yaml:"min_age" env:"USERS_MIN_AGE" validate:"gte=0"`
	PasswordHashing   string `yaml:"password_hashing" env:"USERS_PASSWORD_HASHING" env-default:"plain" validate:"oneof=plain bcrypt"`
}

// MustLoad reads, validates, and returns the application config.
// Functions prefixed with "Must" are allowed to fatal on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: cannot load .env file: %s", err)
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: validate: %w", err)
	}

	return &cfg, nil
}
