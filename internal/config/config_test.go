package config_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/incollege/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		DatabasePath:        "users.db",
		SessionSecret:       "strongsecret",
		SessionDuration:     time.Hour,
		MaxAccounts:         10,
		MaxJobPostings:      10,
		ApplicationReminder: 7 * 24 * time.Hour,
		LogLevel:            "info",
	}
}

func TestValidate_InsecureSecret_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("INCOLLEGE_ENV", "production")

	cfg := validConfig()
	cfg.SessionSecret = "incollege-dev-secret"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure secret in non-development env")
	}
}

func TestValidate_InsecureSecret_AllowsDevelopment(t *testing.T) {
	t.Setenv("INCOLLEGE_ENV", "development")

	cfg := validConfig()
	cfg.SessionSecret = "incollege-dev-secret"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"empty database path", func(c *config.Config) { c.DatabasePath = "" }},
		{"empty secret", func(c *config.Config) { c.SessionSecret = "" }},
		{"zero session duration", func(c *config.Config) { c.SessionDuration = 0 }},
		{"zero reminder", func(c *config.Config) { c.ApplicationReminder = 0 }},
		{"negative account cap", func(c *config.Config) { c.MaxAccounts = -1 }},
		{"negative posting cap", func(c *config.Config) { c.MaxJobPostings = -1 }},
		{"unknown log level", func(c *config.Config) { c.LogLevel = "verbose" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected Validate to fail")
			}
		})
	}
}

func TestValidate_ZeroCapsAreUncapped(t *testing.T) {
	cfg := validConfig()
	cfg.MaxAccounts = 0
	cfg.MaxJobPostings = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed unexpectedly: %v", err)
	}
	if l := cfg.Limits(); l.MaxAccounts != 0 || l.MaxJobPostings != 0 {
		t.Fatalf("unexpected limits: %+v", l)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	// run from an empty dir so no stray .env is picked up
	t.Chdir(t.TempDir())
	for _, k := range []string{"INCOLLEGE_DATABASE_PATH", "INCOLLEGE_SESSION_SECRET", "INCOLLEGE_MAX_ACCOUNTS", "INCOLLEGE_MAX_JOB_POSTINGS"} {
		t.Setenv(k, "")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.DatabasePath != "users.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "users.db")
	}
	if cfg.MaxAccounts != 10 {
		t.Fatalf("unexpected MaxAccounts: got %d want 10", cfg.MaxAccounts)
	}
	if cfg.MaxJobPostings != 10 {
		t.Fatalf("unexpected MaxJobPostings: got %d want 10", cfg.MaxJobPostings)
	}
	if cfg.ApplicationReminder != 7*24*time.Hour {
		t.Fatalf("unexpected ApplicationReminder: got %v", cfg.ApplicationReminder)
	}
	if cfg.SessionDuration != 12*time.Hour {
		t.Fatalf("unexpected SessionDuration: got %v", cfg.SessionDuration)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INCOLLEGE_MAX_ACCOUNTS", "5")
	t.Setenv("INCOLLEGE_SESSION_DURATION", "30m")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxAccounts != 5 {
		t.Fatalf("unexpected MaxAccounts: got %d want 5", cfg.MaxAccounts)
	}
	if cfg.SessionDuration != 30*time.Minute {
		t.Fatalf("unexpected SessionDuration: got %v", cfg.SessionDuration)
	}
}

func TestLoadConfig_MalformedEnv(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"INCOLLEGE_MAX_ACCOUNTS", "abc"},
		{"INCOLLEGE_MAX_JOB_POSTINGS", "1.5"},
		{"INCOLLEGE_SESSION_DURATION", "forever"},
		{"INCOLLEGE_APPLICATION_REMINDER", "7"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.value)

			cfg, err := config.LoadConfig("")
			if err == nil {
				t.Fatalf("expected error for %s=%q, got config %#v", tc.key, tc.value, cfg)
			}
			if !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("error should name %s: %v", tc.key, err)
			}
		})
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("INCOLLEGE_DATABASE_PATH", "")
	// godotenv does not override variables already present, so unset fully
	os.Unsetenv("INCOLLEGE_DATABASE_PATH")

	if err := os.WriteFile(".env", []byte("INCOLLEGE_DATABASE_PATH=dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("INCOLLEGE_DATABASE_PATH") })

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DatabasePath != "dotenv.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "dotenv.db")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Chdir(t.TempDir())
	f, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	content := []byte("database_path: \"test.db\"\nsession_secret: \"filekey\"\nsession_duration: \"2h\"\nmax_accounts: 0\nmax_job_postings: 5\n")
	if err := os.WriteFile(f.Name(), content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(f.Name())
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.DatabasePath != "test.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "test.db")
	}
	if cfg.SessionSecret != "filekey" {
		t.Fatalf("unexpected SessionSecret: got %q want %q", cfg.SessionSecret, "filekey")
	}
	if cfg.SessionDuration != 2*time.Hour {
		t.Fatalf("unexpected SessionDuration: got %v want %v", cfg.SessionDuration, 2*time.Hour)
	}
	if cfg.MaxAccounts != 0 {
		t.Fatalf("unexpected MaxAccounts: got %d want 0", cfg.MaxAccounts)
	}
	if cfg.MaxJobPostings != 5 {
		t.Fatalf("unexpected MaxJobPostings: got %d want 5", cfg.MaxJobPostings)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	f, err := os.CreateTemp("", "bad-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	if err := os.WriteFile(f.Name(), []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(f.Name()); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}
