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
	Server ServerConfig
	DB     DBConfig
	Bill   BillConfig
	Token  TokenConfig
	Export ExportConfig
	Email  EmailConfig
	Log    LogConfig
	CORS   CORSConfig
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

// BillConfig holds bill lifecycle settings.
type BillConfig struct {
	ExpiryDays      int    `mapstructure:"expiry_days"`
	DefaultCurrency string `mapstructure:"default_currency"`
}

// TokenConfig holds edit token signing settings. Edit tokens are issued when
// a bill is created and authorize mutations to that bill only.
type TokenConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// ExportConfig holds settlement export archive settings.
type ExportConfig struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SPLITTAB_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SPLITTAB")
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
	v.SetDefault("db.user", "splittab")
	v.SetDefault("db.password", "splittab_secret")
	v.SetDefault("db.name", "splittab_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Bill defaults
	v.SetDefault("bill.expiry_days", 7)
	v.SetDefault("bill.default_currency", "$")

	// Token defaults: edit tokens outlive the bill so stale links fail on
	// bill expiry, not token expiry.
	v.SetDefault("token.secret", "change-me-in-production")
	v.SetDefault("token.expiry", "240h")
	v.SetDefault("token.issuer", "splittab")

	// Export defaults
	v.SetDefault("export.region", "us-east-1")
	v.SetDefault("export.bucket", "splittab-exports")
	v.SetDefault("export.endpoint", "")
	v.SetDefault("export.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@splittab.app")
	v.SetDefault("email.from_name", "SplitTab")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "SPLITTAB_SERVER_PORT",
		"server.read_timeout":   "SPLITTAB_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "SPLITTAB_SERVER_WRITE_TIMEOUT",
		"server.environment":    "SPLITTAB_SERVER_ENVIRONMENT",
		"db.host":               "SPLITTAB_DB_HOST",
		"db.port":               "SPLITTAB_DB_PORT",
		"db.user":               "SPLITTAB_DB_USER",
		"db.password":           "SPLITTAB_DB_PASSWORD",
		"db.name":               "SPLITTAB_DB_NAME",
		"db.sslmode":            "SPLITTAB_DB_SSLMODE",
		"db.max_open":           "SPLITTAB_DB_MAX_OPEN",
		"db.max_idle":           "SPLITTAB_DB_MAX_IDLE",
		"bill.expiry_days":      "SPLITTAB_BILL_EXPIRY_DAYS",
		"bill.default_currency": "SPLITTAB_BILL_DEFAULT_CURRENCY",
		"token.secret":          "SPLITTAB_TOKEN_SECRET",
		"token.expiry":          "SPLITTAB_TOKEN_EXPIRY",
		"token.issuer":          "SPLITTAB_TOKEN_ISSUER",
		"export.region":         "SPLITTAB_EXPORT_REGION",
		"export.bucket":         "SPLITTAB_EXPORT_BUCKET",
		"export.endpoint":       "SPLITTAB_EXPORT_ENDPOINT",
		"export.access_key":     "SPLITTAB_EXPORT_ACCESS_KEY",
		"export.secret_key":     "SPLITTAB_EXPORT_SECRET_KEY",
		"export.presign_expiry": "SPLITTAB_EXPORT_PRESIGN_EXPIRY",
		"email.provider":        "SPLITTAB_EMAIL_PROVIDER",
		"email.region":          "SPLITTAB_EMAIL_REGION",
		"email.from_address":    "SPLITTAB_EMAIL_FROM_ADDRESS",
		"email.from_name":       "SPLITTAB_EMAIL_FROM_NAME",
		"log.level":             "SPLITTAB_LOG_LEVEL",
		"log.format":            "SPLITTAB_LOG_FORMAT",
		"cors.allowed_origins":  "SPLITTAB_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SPLITTAB_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SPLITTAB_SERVER_PORT") == "" {
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
	cfg.Bill = BillConfig{
		ExpiryDays:      v.GetInt("bill.expiry_days"),
		DefaultCurrency: v.GetString("bill.default_currency"),
	}
	cfg.Token = TokenConfig{
		Secret: v.GetString("token.secret"),
		Expiry: v.GetDuration("token.expiry"),
		Issuer: v.GetString("token.issuer"),
	}
	cfg.Export = ExportConfig{
		Region:        v.GetString("export.region"),
		Bucket:        v.GetString("export.bucket"),
		Endpoint:      v.GetString("export.endpoint"),
		AccessKey:     v.GetString("export.access_key"),
		SecretKey:     v.GetString("export.secret_key"),
		PresignExpiry: v.GetInt64("export.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
