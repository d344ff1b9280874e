package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/utils"
)

// Config is the full runtime configuration. It is loaded once in main and
// passed down explicitly; nothing below main reads process state.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Postgres PostgresConfig `yaml:"postgres"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name,
	)
}

// GeminiConfig configures the external text-generation boundary.
type GeminiConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

// Load reads configuration from the environment and, when CONFIG_FILE is
// set, overlays values from that YAML file on top of the env values.
func Load(log *logger.Logger) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: utils.GetEnv("PORT", "8080", log),
		},
		Postgres: PostgresConfig{
			Host:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:     utils.GetEnv("POSTGRES_PORT", "5432", log),
			User:     utils.GetEnv("POSTGRES_USER", "postgres", log),
			Password: utils.GetEnv("POSTGRES_PASSWORD", "", log),
			Name:     utils.GetEnv("POSTGRES_NAME", "roadmap", log),
		},
		Gemini: GeminiConfig{
			APIKey:         utils.GetEnv("GEMINI_API_KEY", "", log),
			Model:          utils.GetEnv("GEMINI_MODEL", "gemini-1.5-flash", log),
			BaseURL:        utils.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com", log),
			TimeoutSeconds: utils.GetEnvAsInt("GEMINI_TIMEOUT_SECONDS", 120, log),
		},
		Auth: AuthConfig{
			JWTSecret: utils.GetEnv("JWT_SECRET_KEY", "", log),
		},
		Log: LogConfig{
			Mode: utils.GetEnv("LOG_MODE", "development", log),
			File: utils.GetEnv("LOG_FILE", "", log),
		},
	}

	if path := utils.GetEnv("CONFIG_FILE", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("applied config file overlay", "path", path)
		}
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}
