package config

import (
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds database connection settings.
// Driver selects between the embedded SQLite file (Path) and a PostgreSQL server.
type DatabaseConfig struct {
	Driver             string `mapstructure:"DB_DRIVER" validate:"oneof=sqlite postgres"`
	Path               string `mapstructure:"DB_PATH" validate:"required_if=Driver sqlite"`
	Host               string `mapstructure:"DB_HOST" validate:"required_if=Driver postgres"`
	Port               string `mapstructure:"DB_PORT"`
	User               string `mapstructure:"DB_USER" validate:"required_if=Driver postgres"`
	Password           string `mapstructure:"DB_PASSWORD"`
	Name               string `mapstructure:"DB_NAME" validate:"required_if=Driver postgres"`
	SSLMode            string `mapstructure:"DB_SSLMODE"`
	MaxOpenConns       int    `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=0"`
	MaxIdleConns       int    `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	ConnMaxLifetimeSec int    `mapstructure:"DB_CONN_MAX_LIFETIME_SEC" validate:"gte=0"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"JWT_SECRET_KEY" validate:"required"`
	AccessTTL time.Duration `mapstructure:"JWT_ACCESS_TTL" validate:"gt=0"`
	// AllowUserIDHeader accepts a bare User-ID header when no bearer token is sent.
	// Only meant for legacy frontends running against a local database.
	AllowUserIDHeader bool `mapstructure:"AUTH_ALLOW_USER_HEADER"`
}

// GeminiConfig holds settings for the generative-language API.
// An empty APIKey puts the service in offline mode.
type GeminiConfig struct {
	APIKey     string        `mapstructure:"GEMINI_API_KEY"`
	Model      string        `mapstructure:"GEMINI_MODEL" validate:"required"`
	BaseURL    string        `mapstructure:"GEMINI_BASE_URL" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"GEMINI_TIMEOUT" validate:"gt=0"`
	MaxRetries uint          `mapstructure:"GEMINI_MAX_RETRIES"`
}

// MinIOConfig holds object storage settings for MinIO.
// Study material uploads are disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string        `mapstructure:"MINIO_ENDPOINT"`
	AccessKey string        `mapstructure:"MINIO_ACCESS_KEY" validate:"required_with=Endpoint"`
	SecretKey string        `mapstructure:"MINIO_SECRET_KEY" validate:"required_with=Endpoint"`
	Bucket    string        `mapstructure:"MINIO_BUCKET" validate:"required_with=Endpoint"`
	UseSSL    bool          `mapstructure:"MINIO_USE_SSL"`
	URLTTL    time.Duration `mapstructure:"MATERIAL_URL_TTL" validate:"gt=0"`
}

// Enabled reports whether object storage was configured.
func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env         string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT" validate:"required,numeric"`
	LogLevel    string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	CORSOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
	Database    DatabaseConfig
	Auth        AuthConfig
	Gemini      GeminiConfig
	MinIO       MinIOConfig
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *AppConfig) IsDevelopment() bool { return c.Env == "" || c.Env == "development" }

// DevJWTSecret is the signing key used when JWT_SECRET_KEY is unset. Validate
// refuses it outside development.
const DevJWTSecret = "dev-secret-key"

var defaults = map[string]any{
	"APP_ENV":                  "development",
	"PORT":                     "8080",
	"LOG_LEVEL":                "info",
	"CORS_ALLOW_ORIGINS":       "*",
	"DB_DRIVER":                "sqlite",
	"DB_PATH":                  "study_buddy.db",
	"DB_HOST":                  "",
	"DB_PORT":                  "5432",
	"DB_USER":                  "",
	"DB_PASSWORD":              "",
	"DB_NAME":                  "",
	"DB_SSLMODE":               "disable",
	"DB_MAX_OPEN_CONNS":        10,
	"DB_MAX_IDLE_CONNS":        5,
	"DB_CONN_MAX_LIFETIME_SEC": 300,
	"JWT_SECRET_KEY":           DevJWTSecret,
	"JWT_ACCESS_TTL":           "168h",
	"AUTH_ALLOW_USER_HEADER":   false,
	"GEMINI_API_KEY":           "",
	"GEMINI_MODEL":             "gemini-2.5-flash",
	"GEMINI_BASE_URL":          "https://generativelanguage.googleapis.com/v1beta",
	"GEMINI_TIMEOUT":           "30s",
	"GEMINI_MAX_RETRIES":       0,
	"MINIO_ENDPOINT":           "",
	"MINIO_ACCESS_KEY":         "",
	"MINIO_SECRET_KEY":         "",
	"MINIO_BUCKET":             "",
	"MINIO_USE_SSL":            false,
	"MATERIAL_URL_TTL":         "15m",
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
// Unparseable numeric, boolean or duration values fall back to their defaults.
func Load() *AppConfig {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	return &AppConfig{
		Env:         v.GetString("APP_ENV"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		Database: DatabaseConfig{
			Driver:             v.GetString("DB_DRIVER"),
			Path:               v.GetString("DB_PATH"),
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			MaxOpenConns:       getInt(v, "DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       getInt(v, "DB_MAX_IDLE_CONNS"),
			ConnMaxLifetimeSec: getInt(v, "DB_CONN_MAX_LIFETIME_SEC"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("JWT_SECRET_KEY"),
			AccessTTL:         getDuration(v, "JWT_ACCESS_TTL"),
			AllowUserIDHeader: getBool(v, "AUTH_ALLOW_USER_HEADER"),
		},
		Gemini: GeminiConfig{
			APIKey:     v.GetString("GEMINI_API_KEY"),
			Model:      v.GetString("GEMINI_MODEL"),
			BaseURL:    v.GetString("GEMINI_BASE_URL"),
			Timeout:    getDuration(v, "GEMINI_TIMEOUT"),
			MaxRetries: uint(max(getInt(v, "GEMINI_MAX_RETRIES"), 0)),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    getBool(v, "MINIO_USE_SSL"),
			URLTTL:    getDuration(v, "MATERIAL_URL_TTL"),
		},
	}
}
