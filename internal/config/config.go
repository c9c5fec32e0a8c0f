package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	CORS    CORSConfig
	Email   EmailConfig
	Weather WeatherConfig
	Chat    ChatConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds batch image storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds order-confirmation email settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// WeatherConfig holds the OpenWeather integration for the mill monitoring
// dashboard. An empty API key switches the client to mock readings.
type WeatherConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	City        string        `mapstructure:"city"`
	TimeoutSecs time.Duration `mapstructure:"timeout"`
}

// ChatConfig holds the Gemini assistant settings.
type ChatConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads configuration from environment variables with the WOOLTRACE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WOOLTRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "wooltrace")
	v.SetDefault("db.password", "wooltrace_secret")
	v.SetDefault("db.name", "wooltrace_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "wooltrace")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "wooltrace-batch-images")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "orders@wooltrace.example")
	v.SetDefault("email.from_name", "WoolTrace")

	// Weather defaults
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.city", "London")
	v.SetDefault("weather.timeout", "5s")

	// Chat defaults
	v.SetDefault("chat.api_key", "")
	v.SetDefault("chat.model", "gemini-flash-latest")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "WOOLTRACE_SERVER_PORT",
		"server.read_timeout":  "WOOLTRACE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "WOOLTRACE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "WOOLTRACE_SERVER_ENVIRONMENT",
		"db.host":              "WOOLTRACE_DB_HOST",
		"db.port":              "WOOLTRACE_DB_PORT",
		"db.user":              "WOOLTRACE_DB_USER",
		"db.password":          "WOOLTRACE_DB_PASSWORD",
		"db.name":              "WOOLTRACE_DB_NAME",
		"db.sslmode":           "WOOLTRACE_DB_SSLMODE",
		"db.max_open":          "WOOLTRACE_DB_MAX_OPEN",
		"db.max_idle":          "WOOLTRACE_DB_MAX_IDLE",
		"jwt.secret":           "WOOLTRACE_JWT_SECRET",
		"jwt.access_expiry":    "WOOLTRACE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "WOOLTRACE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "WOOLTRACE_JWT_ISSUER",
		"s3.region":            "WOOLTRACE_S3_REGION",
		"s3.bucket":            "WOOLTRACE_S3_BUCKET",
		"s3.endpoint":          "WOOLTRACE_S3_ENDPOINT",
		"s3.access_key":        "WOOLTRACE_S3_ACCESS_KEY",
		"s3.secret_key":        "WOOLTRACE_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "WOOLTRACE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "WOOLTRACE_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins": "WOOLTRACE_CORS_ALLOWED_ORIGINS",
		"email.provider":       "WOOLTRACE_EMAIL_PROVIDER",
		"email.region":         "WOOLTRACE_EMAIL_REGION",
		"email.from_address":   "WOOLTRACE_EMAIL_FROM_ADDRESS",
		"email.from_name":      "WOOLTRACE_EMAIL_FROM_NAME",
		"weather.api_key":      "WOOLTRACE_WEATHER_API_KEY",
		"weather.city":         "WOOLTRACE_WEATHER_CITY",
		"weather.timeout":      "WOOLTRACE_WEATHER_TIMEOUT",
		"chat.api_key":         "WOOLTRACE_CHAT_API_KEY",
		"chat.model":           "WOOLTRACE_CHAT_MODEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if WOOLTRACE_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("WOOLTRACE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Weather = WeatherConfig{
		APIKey:      v.GetString("weather.api_key"),
		City:        v.GetString("weather.city"),
		TimeoutSecs: v.GetDuration("weather.timeout"),
	}
	cfg.Chat = ChatConfig{
		APIKey: v.GetString("chat.api_key"),
		Model:  v.GetString("chat.model"),
	}

	return cfg, nil
}
