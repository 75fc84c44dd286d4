package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrNoSessionSecret = errors.New("SESSION_SECRET is not set")

type Config struct {
	ServerPort    string `yaml:"server_port"`
	SessionSecret string `yaml:"session_secret"`
	GinMode       string `yaml:"gin_mode"`

	UsersFile   string `yaml:"users_file"`
	DatasetFile string `yaml:"dataset_file"`
	CleanedFile string `yaml:"cleaned_file"`

	// AuditDBDSN пустой — журнал аудита выключен
	AuditDBDSN string `yaml:"audit_db_dsn"`
}

func Default() *Config {
	return &Config{
		ServerPort:  "8080",
		UsersFile:   "users.csv",
		DatasetFile: "defense_candidate_dataset.csv",
		CleanedFile: "cleaned_defense_dataset.csv",
	}
}

// Load applies, in order: defaults, the YAML file at path (if any),
// .env and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	_ = godotenv.Load()

	overrides := []struct {
		env string
		dst *string
	}{
		{"SERVER_PORT", &cfg.ServerPort},
		{"SESSION_SECRET", &cfg.SessionSecret},
		{"GIN_MODE", &cfg.GinMode},
		{"USERS_FILE", &cfg.UsersFile},
		{"DATASET_FILE", &cfg.DatasetFile},
		{"CLEANED_FILE", &cfg.CleanedFile},
		{"AUDIT_DB_DSN", &cfg.AuditDBDSN},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	return cfg, nil
}

// ValidateServer checks the settings needed to run the HTTP server.
func (c *Config) ValidateServer() error {
	if c.SessionSecret == "" {
		return ErrNoSessionSecret
	}
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	return nil
}
