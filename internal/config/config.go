package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Auth        AuthConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Printer     PrinterConfig
	Email       EmailConfig
	Shop        ShopConfig
	History     HistoryConfig
	Idempotency IdempotencyConfig
	Client      ClientConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
	Timezone string
}

// Location resolves the shop time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DatabaseConfig struct {
	Driver   string // sqlite or postgres
	Path     string // sqlite file
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	Log      bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

// AuthConfig enables clerk PIN login when PinHash is set.
type AuthConfig struct {
	ClerkPinHash string
}

// Enabled reports whether transaction routes require a clerk token.
func (c *AuthConfig) Enabled() bool {
	return c.ClerkPinHash != ""
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type    string // usb, network, none
	USBPath string
	Address string
	Width   int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// ShopConfig is printed on every receipt.
type ShopConfig struct {
	Name    string
	Tagline string
	Address string
	Phone   string
	Footer  string
}

type HistoryConfig struct {
	Limit int
}

type IdempotencyConfig struct {
	CleanupSpec string
	TTL         time.Duration
}

// ClientConfig is read by the terminal front end.
type ClientConfig struct {
	APIURL  string
	Timeout time.Duration
	Token   string
	Clerk   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "salay-pos")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_LOG_LEVEL", "")
	v.SetDefault("APP_TIMEZONE", "Asia/Manila")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "salay_glass.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "salay_glass")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Manila")
	v.SetDefault("DB_LOG", false)
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("AUTH_CLERK_PIN_HASH", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM_NAME", "Salay Glass")
	v.SetDefault("SMTP_FROM_EMAIL", "")
	v.SetDefault("SHOP_NAME", "Salay Glass")
	v.SetDefault("SHOP_TAGLINE", "Glass & aluminum fabrication and installation")
	v.SetDefault("SHOP_ADDRESS", "")
	v.SetDefault("SHOP_PHONE", "")
	v.SetDefault("SHOP_FOOTER", "Thank you for trusting Salay Glass.")
	v.SetDefault("HISTORY_LIMIT", 50)
	v.SetDefault("IDEMPOTENCY_CLEANUP_SPEC", "@hourly")
	v.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	v.SetDefault("POS_API_URL", "http://localhost:5000")
	v.SetDefault("POS_API_TIMEOUT_SECONDS", 15)
	v.SetDefault("POS_API_TOKEN", "")
	v.SetDefault("POS_CLERK", "")
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing .env is normal outside development
		if !isNotFound(err) {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}

	return fromViper(v), nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			Debug:    v.GetBool("APP_DEBUG"),
			LogLevel: v.GetString("APP_LOG_LEVEL"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
			Log:      v.GetBool("DB_LOG"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Auth: AuthConfig{
			ClerkPinHash: v.GetString("AUTH_CLERK_PIN_HASH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Email: EmailConfig{
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			FromName:     v.GetString("SMTP_FROM_NAME"),
			FromEmail:    v.GetString("SMTP_FROM_EMAIL"),
		},
		Shop: ShopConfig{
			Name:    v.GetString("SHOP_NAME"),
			Tagline: v.GetString("SHOP_TAGLINE"),
			Address: v.GetString("SHOP_ADDRESS"),
			Phone:   v.GetString("SHOP_PHONE"),
			Footer:  v.GetString("SHOP_FOOTER"),
		},
		History: HistoryConfig{
			Limit: v.GetInt("HISTORY_LIMIT"),
		},
		Idempotency: IdempotencyConfig{
			CleanupSpec: v.GetString("IDEMPOTENCY_CLEANUP_SPEC"),
			TTL:         time.Duration(v.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
		Client: ClientConfig{
			APIURL:  strings.TrimRight(v.GetString("POS_API_URL"), "/"),
			Timeout: time.Duration(v.GetInt("POS_API_TIMEOUT_SECONDS")) * time.Second,
			Token:   v.GetString("POS_API_TOKEN"),
			Clerk:   v.GetString("POS_CLERK"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// SQLiteDSN enables WAL and foreign keys on the shop database file.
func (c *DatabaseConfig) SQLiteDSN() string {
	if c.Path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return c.Path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
}
