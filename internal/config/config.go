package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Storage  StorageConfig  `mapstructure:"storage"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Secrets  Secrets        `mapstructure:"-"`
}

type ServerConfig struct {
	Port              int     `mapstructure:"port"`
	RateLimitPerSec   float64 `mapstructure:"rate_limit_per_sec"`
	RateLimitBurst    int     `mapstructure:"rate_limit_burst"`
	MaxUploadSizeMB   int64   `mapstructure:"max_upload_size_mb"`
	ShutdownTimeoutMS int     `mapstructure:"shutdown_timeout_ms"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

func (c JWTConfig) Expiry() time.Duration {
	if c.ExpiryHours == 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.ExpiryHours) * time.Hour
}

type GeminiConfig struct {
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type StorageConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	BaseURL   string `mapstructure:"base_url"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
	User string `mapstructure:"user"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Secrets are loaded from the environment only, never from config files.
type Secrets struct {
	JWTSecret        string `envconfig:"JWT_SECRET"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	StorageAPIKey    string `envconfig:"STORAGE_API_KEY"`
	StorageAPISecret string `envconfig:"STORAGE_API_SECRET"`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD"`
	DBPassword       string `envconfig:"DB_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("healthmate", &config.Secrets); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	// env-provided secrets win over file values
	if config.Secrets.JWTSecret != "" {
		config.JWT.Secret = config.Secrets.JWTSecret
	}
	if config.Secrets.DBPassword != "" {
		config.Database.Password = config.Secrets.DBPassword
	}

	return &config, nil
}
