package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Neiron07/pixel-project/internal/model"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Storage    StorageConfig    `yaml:"storage"`
	Moderation ModerationConfig `yaml:"moderation"`
	Auth       AuthConfig       `yaml:"auth"`
	Accounts   []model.Account  `yaml:"accounts"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
}

type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	Charset            string        `yaml:"charset"`
	ParseTime          bool          `yaml:"parse_time"`
	Loc                string        `yaml:"loc"`
	MaxConnections     int           `yaml:"max_connections"`
	MaxIdleConnections int           `yaml:"max_idle_connections"`
	ConnectionLifetime time.Duration `yaml:"connection_lifetime"`
}

type RedisConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	PoolSize  int    `yaml:"pool_size"`
	ScanQueue string `yaml:"scan_queue"`
	DLQSuffix string `yaml:"dlq_suffix"`
}

type StorageConfig struct {
	// Root is the fixed filesystem boundary for browsing and downloads.
	// No request path may resolve outside it.
	Root string `yaml:"root"`
}

type ModerationConfig struct {
	BannedWords []string `yaml:"banned_words"`
	WorkerCount int      `yaml:"worker_count"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate applies defaults and rejects configurations the services cannot
// run with. Account permission shapes are checked here, once, instead of
// being defaulted at every access site.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 32 << 20
	}
	if c.Redis.ScanQueue == "" {
		c.Redis.ScanQueue = "file-processing"
	}
	if c.Redis.DLQSuffix == "" {
		c.Redis.DLQSuffix = ":dlq"
	}
	if c.Moderation.WorkerCount == 0 {
		c.Moderation.WorkerCount = 5
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 3 * time.Hour
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}

	if c.Storage.Root == "" {
		return apperrors.ValidationError{Field: "storage.root", Value: "", Message: "is required"}
	}
	if c.Auth.JWTSecret == "" {
		return apperrors.ValidationError{Field: "auth.jwt_secret", Value: "", Message: "is required"}
	}

	seen := make(map[string]bool, len(c.Accounts))
	for i := range c.Accounts {
		acc := &c.Accounts[i]
		if acc.Name == "" {
			return apperrors.ValidationError{
				Field:   fmt.Sprintf("accounts[%d].name", i),
				Value:   "",
				Message: "is required",
			}
		}
		if seen[acc.Name] {
			return apperrors.ValidationError{
				Field:   fmt.Sprintf("accounts[%d].name", i),
				Value:   acc.Name,
				Message: "duplicate account",
			}
		}
		seen[acc.Name] = true
		if acc.Admin {
			// Admins bypass filtering entirely; normalize so downstream
			// code never consults a stale show/hide list.
			*acc = model.AdminAccount(acc.Name)
		}
	}

	return nil
}

// Account resolves an authenticated username to its visibility configuration.
// Unknown accounts get a deny-all default.
func (c *Config) Account(name string) model.Account {
	for _, acc := range c.Accounts {
		if acc.Name == name {
			return acc
		}
	}
	return model.Account{Name: name}
}

// MySQL DSN format: [username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Charset, c.Database.ParseTime, c.Database.Loc)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
