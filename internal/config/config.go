package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Поддерживаемые хранилища
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server    ServerConfig    // Настройки HTTP сервера
	Store     StoreConfig     // Выбор хранилища
	Mongo     MongoConfig     // Настройки подключения к MongoDB
	Database  DatabaseConfig  // Настройки подключения к PostgreSQL
	Dashboard DashboardConfig // Настройки веб-дашборда
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port        string   `envconfig:"SERVER_PORT" default:"8080"`
	Host        string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// StoreConfig определяет, где хранятся спонсоры
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"mongo"`
}

// MongoConfig содержит настройки подключения к MongoDB
type MongoConfig struct {
	URI            string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"MONGODB_DATABASE" default:"sponsors"`
	Collection     string        `envconfig:"MONGODB_COLLECTION" default:"sponsors"`
	ConnectTimeout time.Duration `envconfig:"MONGODB_CONNECT_TIMEOUT" default:"10s"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"sponsors"`
	Password string `envconfig:"DB_PASSWORD" default:"sponsors_pass"`
	Name     string `envconfig:"DB_NAME" default:"sponsors"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
}

// DashboardConfig содержит настройки дашборда
type DashboardConfig struct {
	// APIURL адрес API, к которому обращается дашборд. Если пусто, используется этот же сервер.
	APIURL         string `envconfig:"DASHBOARD_API_URL"`
	Title          string `envconfig:"DASHBOARD_TITLE" default:"IMMERSE 2026"`
	Locale         string `envconfig:"DASHBOARD_LOCALE" default:"en-IN"`
	CurrencySymbol string `envconfig:"DASHBOARD_CURRENCY_SYMBOL" default:"₹"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
