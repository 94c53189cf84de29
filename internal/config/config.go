package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// StorageConfig выбор хранилища: postgres или memory
type StorageConfig struct {
	Driver   string `toml:"driver"`
	SeedDemo bool   `toml:"seed_demo"` // только для memory
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	Location                  string `toml:"location"` // IANA, например "Europe/Moscow"
	DailySlotCapacity         int    `toml:"daily_slot_capacity"`
	CancellationWindowMinutes int    `toml:"cancellation_window_minutes"`
	InactivityDays            int    `toml:"inactivity_days"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// TokenTTL время жизни access-токена
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Policy собирает доменную политику бронирования
func (c BookingConfig) Policy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("booking.location %q: %w", c.Location, err)
	}
	return domain.BookingPolicy{
		Location:           loc,
		DailySlotCapacity:  c.DailySlotCapacity,
		CancellationWindow: time.Duration(c.CancellationWindowMinutes) * time.Minute,
		InactivityPeriod:   time.Duration(c.InactivityDays) * 24 * time.Hour,
	}, nil
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Auth:    AuthConfig{TokenTTLHours: 24},
		Booking: BookingConfig{
			Location:                  "UTC",
			DailySlotCapacity:         domain.DefaultDailySlotCapacity,
			CancellationWindowMinutes: int(domain.DefaultCancellationWindow / time.Minute),
			InactivityDays:            int(domain.DefaultInactivityPeriod / (24 * time.Hour)),
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "salon_service"},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("database.host and database.dbname are required for postgres storage")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (or JWT_SECRET env)")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return errors.New("auth.token_ttl_hours must be positive")
	}

	if c.Booking.DailySlotCapacity <= 0 {
		return errors.New("booking.daily_slot_capacity must be positive")
	}
	if c.Booking.CancellationWindowMinutes < 0 {
		return errors.New("booking.cancellation_window_minutes must not be negative")
	}
	if c.Booking.InactivityDays <= 0 {
		return errors.New("booking.inactivity_days must be positive")
	}
	if _, err := c.Booking.Policy(); err != nil {
		return err
	}

	return nil
}
