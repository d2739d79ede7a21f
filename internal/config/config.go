// Package config loads formcheck settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "FORMCHECK_"

// Store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Schema dialects.
const (
	DialectOpenAPI    = "openapi"
	DialectJSONSchema = "jsonschema"
	DialectTypeMap    = "typemap"
)

// Config holds the CLI settings.
type Config struct {
	Store     string `env:"STORE" envDefault:"file"`
	SchemaDir string `env:"SCHEMA_DIR" envDefault:"schemas"`
	Dialect   string `env:"DIALECT" envDefault:"openapi"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Redis     Redis
}

// Redis holds the connection settings of the redis store.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Prefix   string `env:"REDIS_PREFIX" envDefault:"formcheck:schema:"`
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads settings from environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want file, redis or memory)", c.Store)
	}
	switch c.Dialect {
	case DialectOpenAPI, DialectJSONSchema, DialectTypeMap:
	default:
		return fmt.Errorf("unknown dialect %q (want openapi, jsonschema or typemap)", c.Dialect)
	}
	return nil
}
