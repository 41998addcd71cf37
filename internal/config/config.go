package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureSessionSecret = "incollege-dev-secret"

type Config struct {
	DatabasePath        string        `yaml:"database_path"`
	SessionSecret       string        `yaml:"session_secret"`
	SessionDuration     time.Duration `yaml:"session_duration"`
	MaxAccounts         int           `yaml:"max_accounts"`
	MaxJobPostings      int           `yaml:"max_job_postings"`
	ApplicationReminder time.Duration `yaml:"application_reminder"`
	LogLevel            string        `yaml:"log_level"`
	ContentPath         string        `yaml:"content_path"`
	SkillsPath          string        `yaml:"skills_path"`
}

// Limits groups the capacity settings consumed by the credential store and
// the job board. Zero means uncapped.
type Limits struct {
	MaxAccounts    int
	MaxJobPostings int
}

func (c *Config) Limits() Limits {
	return Limits{MaxAccounts: c.MaxAccounts, MaxJobPostings: c.MaxJobPostings}
}

// LoadConfig builds the configuration from defaults, a `.env` file in the
// working directory when present, INCOLLEGE_* environment variables and
// finally the YAML file at path (if non-empty).
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var envErrs []error
	cfg := &Config{
		DatabasePath:        getEnv("INCOLLEGE_DATABASE_PATH", "users.db"),
		SessionSecret:       getEnv("INCOLLEGE_SESSION_SECRET", insecureSessionSecret),
		SessionDuration:     getDuration("INCOLLEGE_SESSION_DURATION", 12*time.Hour, &envErrs),
		MaxAccounts:         getInt("INCOLLEGE_MAX_ACCOUNTS", 10, &envErrs),
		MaxJobPostings:      getInt("INCOLLEGE_MAX_JOB_POSTINGS", 10, &envErrs),
		ApplicationReminder: getDuration("INCOLLEGE_APPLICATION_REMINDER", 7*24*time.Hour, &envErrs),
		LogLevel:            getEnv("INCOLLEGE_LOG_LEVEL", "info"),
		ContentPath:         os.Getenv("INCOLLEGE_CONTENT_PATH"),
		SkillsPath:          os.Getenv("INCOLLEGE_SKILLS_PATH"),
	}
	if err := errors.Join(envErrs...); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
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

// Validate rejects configurations that cannot run. The built-in session
// secret is only accepted when INCOLLEGE_ENV=development.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return errors.New("database_path is required")
	}
	if c.SessionSecret == "" {
		return errors.New("session_secret is required")
	}
	if c.SessionSecret == insecureSessionSecret && os.Getenv("INCOLLEGE_ENV") != "development" {
		return errors.New("session_secret uses the insecure default; set INCOLLEGE_SESSION_SECRET or INCOLLEGE_ENV=development")
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("session_duration must be positive, got %v", c.SessionDuration)
	}
	if c.ApplicationReminder <= 0 {
		return fmt.Errorf("application_reminder must be positive, got %v", c.ApplicationReminder)
	}
	if c.MaxAccounts < 0 {
		return fmt.Errorf("max_accounts must not be negative, got %d", c.MaxAccounts)
	}
	if c.MaxJobPostings < 0 {
		return fmt.Errorf("max_job_postings must not be negative, got %d", c.MaxJobPostings)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

// getInt returns def when key is unset; a value that does not parse is
// recorded in errs.
func getInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}

	return n
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, v))
		return def
	}

	return d
}
