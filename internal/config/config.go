package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	Backend  BackendConfig  `toml:"backend"`
	Pricing  PricingConfig  `toml:"pricing"`
	OCR      OCRConfig      `toml:"ocr"`
	Billing  BillingConfig  `toml:"billing"`
	Auth     AuthConfig     `toml:"auth"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки подключения к PostgreSQL (журнал выездов)
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// BackendConfig настройки REST бэкенда парковки
type BackendConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// PricingConfig настройки модели динамического ценообразования
type PricingConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"`           // секунды
	Timezone        string `toml:"timezone"`          // зона для форматирования времени въезда/выезда
	HealthCheckSpec string `toml:"health_check_spec"` // cron-выражение проверки здоровья модели
}

// Location возвращает часовой пояс для модели ценообразования
func (c PricingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// OCRConfig настройки сервиса распознавания номеров
type OCRConfig struct {
	URL         string `toml:"url"`
	Timeout     int    `toml:"timeout"`       // секунды
	MaxUploadMB int    `toml:"max_upload_mb"` // ограничение размера изображения
}

// MaxUploadBytes возвращает ограничение размера загрузки в байтах
func (c OCRConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// BillingConfig настройки сверки счета при выезде
type BillingConfig struct {
	RequoteOnExit  bool   `toml:"requote_on_exit"`
	TransactionTTL int    `toml:"transaction_ttl"` // минуты
	CleanupSpec    string `toml:"cleanup_spec"`    // cron-выражение очистки транзакций
}

// AuthConfig настройки проверки bearer токена оператора
type AuthConfig struct {
	RequireToken  bool `toml:"require_token"`
	RejectExpired bool `toml:"reject_expired"`
}

// EventsConfig настройки websocket потока событий
type EventsConfig struct {
	Enabled        bool     `toml:"enabled"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8090,
			ReadTimeout:     15,
			WriteTimeout:    45,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc_parking_desk",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Backend: BackendConfig{
			URL:     "http://localhost:8080/api",
			Timeout: 30,
		},
		Pricing: PricingConfig{
			Timeout:         10,
			Timezone:        "Local",
			HealthCheckSpec: "@every 1m",
		},
		OCR: OCRConfig{
			Timeout:     30,
			MaxUploadMB: 10,
		},
		Billing: BillingConfig{
			RequoteOnExit:  true,
			TransactionTTL: 30,
			CleanupSpec:    "@every 5m",
		},
		Auth: AuthConfig{
			RejectExpired: true,
		},
		Events: EventsConfig{
			Enabled: true,
		},
	}
}

// Load загружает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env опционален: его отсутствие не ошибка
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения из переменных окружения PARKINGDESK_*
func (c *Config) applyEnv() error {
	strOverrides := map[string]*string{
		"PARKINGDESK_BACKEND_URL": &c.Backend.URL,
		"PARKINGDESK_PRICING_URL": &c.Pricing.URL,
		"PARKINGDESK_OCR_URL":     &c.OCR.URL,
		"PARKINGDESK_LOG_LEVEL":   &c.Logs.Level,
		"PARKINGDESK_LOG_FILE":    &c.Logs.File,
		"PARKINGDESK_DB_HOST":     &c.Database.Host,
		"PARKINGDESK_DB_USER":     &c.Database.User,
		"PARKINGDESK_DB_PASSWORD": &c.Database.Password,
		"PARKINGDESK_DB_NAME":     &c.Database.DBName,
	}
	for key, target := range strOverrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*target = v
		}
	}

	intOverrides := map[string]*int{
		"PARKINGDESK_HTTP_PORT": &c.Server.HTTPPort,
		"PARKINGDESK_DB_PORT":   &c.Database.Port,
	}
	invalid := make([]string, 0)
	for key, target := range intOverrides {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			continue
		}
		*target = n
	}

	if v := strings.TrimSpace(os.Getenv("PARKINGDESK_DB_ENABLED")); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, "PARKINGDESK_DB_ENABLED")
		} else {
			c.Database.Enabled = enabled
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%w: invalid environment values: %s", ErrInvalidConfig, strings.Join(invalid, ", "))
	}
	return nil
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	problems := make([]string, 0)

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Backend.URL == "" {
		problems = append(problems, "backend.url is required")
	}
	if c.Backend.Timeout <= 0 {
		problems = append(problems, "backend.timeout must be positive")
	}
	if c.Pricing.URL == "" {
		problems = append(problems, "pricing.url is required")
	}
	if c.Pricing.Timeout <= 0 {
		problems = append(problems, "pricing.timeout must be positive")
	}
	if _, err := c.Pricing.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("pricing.timezone: %v", err))
	}
	if c.OCR.URL == "" {
		problems = append(problems, "ocr.url is required")
	}
	if c.OCR.Timeout <= 0 {
		problems = append(problems, "ocr.timeout must be positive")
	}
	if c.OCR.MaxUploadMB <= 0 {
		problems = append(problems, "ocr.max_upload_mb must be positive")
	}
	if c.Billing.TransactionTTL <= 0 {
		problems = append(problems, "billing.transaction_ttl must be positive")
	}
	if _, err := cron.ParseStandard(c.Pricing.HealthCheckSpec); err != nil {
		problems = append(problems, fmt.Sprintf("pricing.health_check_spec: %v", err))
	}
	if _, err := cron.ParseStandard(c.Billing.CleanupSpec); err != nil {
		problems = append(problems, fmt.Sprintf("billing.cleanup_spec: %v", err))
	}
	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("logs.level %q is unknown", c.Logs.Level))
	}
	if c.Database.Enabled && c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required when database is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
