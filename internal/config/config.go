// Package config loads the server configuration from the environment.
//
// Variables are read with caarlos0/env after an optional .env file in the
// working directory has been loaded with godotenv. Real environment variables
// win over .env entries, since godotenv never overwrites what is already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Storage drivers.
const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// Config holds every setting the server needs.
type Config struct {
	Port   int    `env:"PORT"    envDefault:"3001"`
	DBPath string `env:"DB_PATH" envDefault:"data/gallery.db"`

	// One of these may be set. The hash (bcrypt) wins if both are.
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	// Work factor used to hash ADMIN_PASSWORD at startup.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// Empty means a random secret per process, so tokens die on restart.
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"0s"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	UploadMaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`

	Storage Storage
}

// Storage configures the object store behind the upload endpoint. An empty
// Driver disables uploads.
type Storage struct {
	Driver          string `env:"STORAGE_DRIVER"`
	Endpoint        string `env:"STORAGE_ENDPOINT"`
	Region          string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	Bucket          string `env:"STORAGE_BUCKET"`
	AccessKeyID     string `env:"STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"STORAGE_SECRET_ACCESS_KEY"`
	UseSSL          bool   `env:"STORAGE_USE_SSL"    envDefault:"true"`
	PathStyle       bool   `env:"STORAGE_PATH_STYLE"`
	PublicURL       string `env:"STORAGE_PUBLIC_URL"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: loading .env: %w", err)
		}
	}
	return parse(env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	cfg.CORSAllowedOrigins = cleanList(cfg.CORSAllowedOrigins)
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH is empty"))
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.TokenTTL < 0 {
		errs = append(errs, errors.New("TOKEN_TTL must not be negative"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be text or json", c.LogFormat))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}

	switch c.Storage.Driver {
	case "":
	case DriverS3, DriverMinio:
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("STORAGE_BUCKET is required when STORAGE_DRIVER is set"))
		}
		if c.Storage.Driver == DriverMinio {
			if c.Storage.Endpoint == "" {
				errs = append(errs, errors.New("STORAGE_ENDPOINT is required for the minio driver"))
			}
			if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
				errs = append(errs, errors.New("minio driver needs STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY"))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q must be s3, minio or empty", c.Storage.Driver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
