package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Paths    PathsConfig    `yaml:"paths"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Admins   []AdminConfig  `yaml:"admins"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Type   string       `yaml:"type"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	MySQL  MySQLConfig  `yaml:"mysql"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
}

type SessionConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn string `yaml:"expires_in"`
	Issuer    string `yaml:"issuer"`
	Cookie    string `yaml:"cookie"`
}

type SecurityConfig struct {
	BcryptCost int           `yaml:"bcrypt_cost"`
	Login      LoginThrottle `yaml:"login"`
}

type LoginThrottle struct {
	MaxFailures     int    `yaml:"max_failures"`
	LockoutDuration string `yaml:"lockout_duration"`
	Retention       string `yaml:"retention"`
}

type PathsConfig struct {
	Uploads  string `yaml:"uploads"`
	Frontend string `yaml:"frontend"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

var Global *Config

// Load reads the configuration file and environment variables
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Ensure uploads directory exists
	if err := os.MkdirAll(cfg.Paths.Uploads, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	Global = &cfg
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("AVCOE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	if secret := os.Getenv("AVCOE_SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		cfg.Gemini.APIKey = apiKey
	}

	if dbType := os.Getenv("AVCOE_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}

	if dbPath := os.Getenv("AVCOE_DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}

	if mysqlHost := os.Getenv("AVCOE_MYSQL_HOST"); mysqlHost != "" {
		cfg.Database.MySQL.Host = mysqlHost
	}

	if mysqlUser := os.Getenv("AVCOE_MYSQL_USER"); mysqlUser != "" {
		cfg.Database.MySQL.Username = mysqlUser
	}

	if mysqlPass := os.Getenv("AVCOE_MYSQL_PASSWORD"); mysqlPass != "" {
		cfg.Database.MySQL.Password = mysqlPass
	}

	if mysqlDB := os.Getenv("AVCOE_MYSQL_DATABASE"); mysqlDB != "" {
		cfg.Database.MySQL.Database = mysqlDB
	}

	if uploads := os.Getenv("AVCOE_UPLOAD_DIR"); uploads != "" {
		cfg.Paths.Uploads = uploads
	}

	// A single admin pair can be supplied from the environment; it is
	// prepended to the allow-list from the config file.
	adminUser := os.Getenv("AVCOE_ADMIN_USERNAME")
	adminPass := os.Getenv("AVCOE_ADMIN_PASSWORD")
	if adminUser != "" && adminPass != "" {
		cfg.Admins = append([]AdminConfig{{Username: adminUser, Password: adminPass}}, cfg.Admins...)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Session.ExpiresIn == "" {
		cfg.Session.ExpiresIn = "24h"
	}
	if cfg.Session.Issuer == "" {
		cfg.Session.Issuer = "avcoe-site"
	}
	if cfg.Session.Cookie == "" {
		cfg.Session.Cookie = "avcoe_session"
	}
	if cfg.Security.BcryptCost == 0 {
		cfg.Security.BcryptCost = 12
	}
	if cfg.Security.Login.MaxFailures == 0 {
		cfg.Security.Login.MaxFailures = 3
	}
	if cfg.Security.Login.LockoutDuration == "" {
		cfg.Security.Login.LockoutDuration = "1h"
	}
	if cfg.Security.Login.Retention == "" {
		cfg.Security.Login.Retention = "720h"
	}
	if cfg.Paths.Uploads == "" {
		cfg.Paths.Uploads = "./data/uploads"
	}
	if cfg.Paths.Frontend == "" {
		cfg.Paths.Frontend = "./web"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Gemini.Timeout == "" {
		cfg.Gemini.Timeout = "30s"
	}
}

// validate rejects configurations that would otherwise fall back to
// secrets embedded in source. The server refuses to start instead.
func validate(cfg *Config) error {
	if cfg.Session.Secret == "" {
		return fmt.Errorf("session secret is required (session.secret or AVCOE_SESSION_SECRET)")
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (gemini.api_key or GEMINI_API_KEY)")
	}
	if len(cfg.Admins) == 0 {
		return fmt.Errorf("at least one admin credential pair is required (admins or AVCOE_ADMIN_USERNAME/AVCOE_ADMIN_PASSWORD)")
	}
	for i, a := range cfg.Admins {
		if a.Username == "" || a.Password == "" {
			return fmt.Errorf("admin entry %d has an empty username or password", i)
		}
	}

	switch cfg.Database.Type {
	case "sqlite":
		if cfg.Database.SQLite.Path == "" {
			return fmt.Errorf("SQLite database path is required")
		}
	case "mysql":
		if cfg.Database.MySQL.Username == "" {
			return fmt.Errorf("MySQL username is required")
		}
		if cfg.Database.MySQL.Database == "" {
			return fmt.Errorf("MySQL database name is required")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	if _, err := time.ParseDuration(cfg.Security.Login.LockoutDuration); err != nil {
		return fmt.Errorf("invalid lockout_duration: %w", err)
	}
	if _, err := time.ParseDuration(cfg.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini timeout: %w", err)
	}

	return nil
}

// LockoutDuration returns the parsed lockout window.
func (c *Config) LockoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Security.Login.LockoutDuration)
	if err != nil {
		return time.Hour
	}
	return d
}

// AttemptRetention returns how long inactive throttle records are kept.
func (c *Config) AttemptRetention() time.Duration {
	d, err := time.ParseDuration(c.Security.Login.Retention)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}
