package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/jobly/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Addr:            ":8080",
		JWTSecret:       "strongsecret",
		APITimeout:      5 * time.Second,
		DatabaseDriver:  "sqlite",
		DatabaseDSN:     "jobly.db",
		PasswordHashing: "bcrypt",
		BcryptCost:      10,
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("JOBLY_ENV", "production")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	t.Setenv("JOBLY_ENV", "development")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	t.Setenv("JOBLY_ENV", "development")

	cases := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"EmptyAddr", func(c *config.Config) { c.Addr = " " }},
		{"EmptySecret", func(c *config.Config) { c.JWTSecret = "" }},
		{"UnknownDriver", func(c *config.Config) { c.DatabaseDriver = "mysql" }},
		{"EmptyDSN", func(c *config.Config) { c.DatabaseDSN = "" }},
		{"UnknownHashing", func(c *config.Config) { c.PasswordHashing = "md5" }},
		{"BcryptCostTooLow", func(c *config.Config) { c.BcryptCost = 2 }},
		{"NegativeTokenDuration", func(c *config.Config) { c.TokenDuration = -time.Minute }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected Validate to fail")
			}
		})
	}
}

func TestValidate_PlaintextIgnoresCost(t *testing.T) {
	cfg := validConfig()
	cfg.PasswordHashing = "plaintext"
	cfg.BcryptCost = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed unexpectedly: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"JOBLY_ADDR", "JOBLY_JWT_SECRET", "JOBLY_DATABASE_DRIVER", "JOBLY_DATABASE_DSN", "JOBLY_TOKEN_DURATION", "JOBLY_CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":8080")
	}
	if cfg.JWTSecret != "supersecretkey" {
		t.Fatalf("unexpected JWTSecret: got %q", cfg.JWTSecret)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseDSN != "jobly.db" {
		t.Fatalf("unexpected database: %q %q", cfg.DatabaseDriver, cfg.DatabaseDSN)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected APITimeout: got %v", cfg.APITimeout)
	}
	if cfg.TokenDuration != 0 {
		t.Fatalf("expected tokens without expiry by default, got %v", cfg.TokenDuration)
	}
	if cfg.PasswordHashing != "bcrypt" {
		t.Fatalf("unexpected PasswordHashing: %q", cfg.PasswordHashing)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected CORSOrigins: %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("JOBLY_ADDR", ":7070")
	t.Setenv("JOBLY_TOKEN_DURATION", "90m")
	t.Setenv("JOBLY_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("unexpected Addr: %q", cfg.Addr)
	}
	if cfg.TokenDuration != 90*time.Minute {
		t.Fatalf("unexpected TokenDuration: %v", cfg.TokenDuration)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected CORSOrigins: %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_BadEnvDuration(t *testing.T) {
	t.Setenv("JOBLY_TOKEN_DURATION", "soon")
	if _, err := config.LoadConfig(""); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Setenv("JOBLY_TOKEN_DURATION", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("addr: \":9090\"\njwt_secret: \"filekey\"\ntimeout: \"30s\"\ndatabase_driver: \"postgres\"\ndatabase_dsn: \"postgres://jobly@localhost/jobly\"\ntoken_duration: \"2h\"\npassword_hashing: \"plaintext\"\nmigrate_on_start: true\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9090")
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "filekey")
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("unexpected DatabaseDriver: %q", cfg.DatabaseDriver)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 30*time.Second)
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 2*time.Hour)
	}
	if cfg.PasswordHashing != "plaintext" || !cfg.MigrateOnStart {
		t.Fatalf("unexpected hashing/migrate: %q %v", cfg.PasswordHashing, cfg.MigrateOnStart)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}
