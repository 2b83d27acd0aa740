package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureSecret = "supersecretkey"

type Config struct {
	Addr            string        `yaml:"addr"`
	JWTSecret       string        `yaml:"jwt_secret"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabaseDriver  string        `yaml:"database_driver"`
	DatabaseDSN     string        `yaml:"database_dsn"`
	TokenDuration   time.Duration `yaml:"token_duration"`
	PasswordHashing string        `yaml:"password_hashing"`
	BcryptCost      int           `yaml:"bcrypt_cost"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
}

// LoadConfig builds the configuration from defaults, an optional .env file,
// JOBLY_* environment variables and finally the YAML file at path (if any).
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Addr:            getEnv("JOBLY_ADDR", ":8080"),
		JWTSecret:       getEnv("JOBLY_JWT_SECRET", insecureSecret),
		APITimeout:      15 * time.Second,
		DatabaseDriver:  getEnv("JOBLY_DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:     getEnv("JOBLY_DATABASE_DSN", "jobly.db"),
		PasswordHashing: getEnv("JOBLY_PASSWORD_HASHING", "bcrypt"),
		BcryptCost:      getEnvInt("JOBLY_BCRYPT_COST", 10),
		MigrateOnStart:  getEnv("JOBLY_MIGRATE_ON_START", "") == "true",
		CORSOrigins:     []string{"*"},
		LogLevel:        getEnv("JOBLY_LOG_LEVEL", "info"),
		LogFormat:       getEnv("JOBLY_LOG_FORMAT", "json"),
	}
	if d := os.Getenv("JOBLY_TOKEN_DURATION"); d != "" {
		v, err := time.ParseDuration(d)
		if err != nil {
			return nil, fmt.Errorf("JOBLY_TOKEN_DURATION: %w", err)
		}
		cfg.TokenDuration = v
	}
	if o := os.Getenv("JOBLY_CORS_ORIGINS"); o != "" {
		cfg.CORSOrigins = strings.Split(o, ",")
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration before the server starts. The default
// JWT secret is only accepted when JOBLY_ENV=development.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("jwt_secret must not be empty")
	}
	if c.JWTSecret == insecureSecret && os.Getenv("JOBLY_ENV") != "development" {
		return errors.New("jwt_secret uses the insecure default; set JOBLY_JWT_SECRET or JOBLY_ENV=development")
	}
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database_driver %q", c.DatabaseDriver)
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return errors.New("database_dsn must not be empty")
	}
	switch c.PasswordHashing {
	case "bcrypt":
		if c.BcryptCost < 4 || c.BcryptCost > 31 {
			return fmt.Errorf("bcrypt_cost %d out of range [4,31]", c.BcryptCost)
		}
	case "plaintext":
	default:
		return fmt.Errorf("unsupported password_hashing %q", c.PasswordHashing)
	}
	if c.TokenDuration < 0 {
		return errors.New("token_duration must not be negative")
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 15 * time.Second
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}
