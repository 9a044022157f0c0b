package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, например SALON_DATABASE_PASSWORD
const EnvPrefix = "SALON"

// Rate limit stores
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Auth        AuthConfig        `toml:"auth"`
	Booking     BookingConfig     `toml:"booking"`
	UserService UserServiceConfig `toml:"user_service" split_words:"true"`
	Redis       RedisConfig       `toml:"redis"`
	RateLimit   RateLimitConfig   `toml:"rate_limit" split_words:"true"`
	Jobs        JobsConfig        `toml:"jobs"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"` // пусто: только stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
}

// BookingConfig политика слотов по умолчанию, пока администратор не сохранил свою
type BookingConfig struct {
	OpenHour           int  `toml:"open_hour" split_words:"true"`
	GranularityMinutes int  `toml:"granularity_minutes" split_words:"true"`
	WeekdaysOnly       bool `toml:"weekdays_only" split_words:"true"`
}

// SlotPolicy политика по умолчанию
func (c BookingConfig) SlotPolicy() domain.SlotPolicy {
	return domain.SlotPolicy{
		OpenHour:           c.OpenHour,
		GranularityMinutes: c.GranularityMinutes,
		WeekdaysOnly:       c.WeekdaysOnly,
	}
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RedisConfig пустой URL выключает кэш календаря
type RedisConfig struct {
	URL         string `toml:"url"`
	CalendarTTL int    `toml:"calendar_ttl" split_words:"true"` // секунды
}

// CalendarTTLDuration TTL кэша счётчиков календаря
func (c RedisConfig) CalendarTTLDuration() time.Duration {
	return time.Duration(c.CalendarTTL) * time.Second
}

type RateLimitConfig struct {
	Enabled bool   `toml:"enabled"`
	Store   string `toml:"store"` // memory | redis
	Rate    string `toml:"rate"`  // формат limiter: "10-M"
}

type JobsConfig struct {
	TodaySpec string `toml:"today_spec" split_words:"true"` // cron выражение, пусто: задача выключена
}

// Default значения, которые перекрываются config.toml и окружением
func Default() Config {
	return Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon_booking_service",
		},
		Booking: BookingConfig{
			OpenHour:           domain.DefaultOpenHour,
			GranularityMinutes: domain.DefaultGranularityMinutes,
			WeekdaysOnly:       domain.DefaultWeekdaysOnly,
		},
		UserService: UserServiceConfig{Timeout: 5},
		Redis:       RedisConfig{CalendarTTL: 300},
		RateLimit: RateLimitConfig{
			Store: RateLimitStoreMemory,
			Rate:  "10-M",
		},
		Jobs: JobsConfig{TodaySpec: "*/5 * * * *"},
	}
}

// Load читает конфигурацию из файла и применяет переменные окружения SALON_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be between 1 and 65535, got %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if err := c.Booking.SlotPolicy().Check(); err != nil {
		errs = append(errs, fmt.Errorf("booking: %w", err))
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path is required when metrics are enabled"))
	}
	if c.Redis.URL != "" && c.Redis.CalendarTTL <= 0 {
		errs = append(errs, errors.New("redis.calendar_ttl must be positive"))
	}
	if c.RateLimit.Enabled {
		switch c.RateLimit.Store {
		case RateLimitStoreMemory:
		case RateLimitStoreRedis:
			if c.Redis.URL == "" {
				errs = append(errs, errors.New("rate_limit.store=redis requires redis.url"))
			}
		default:
			errs = append(errs, fmt.Errorf("rate_limit.store must be %q or %q, got %q",
				RateLimitStoreMemory, RateLimitStoreRedis, c.RateLimit.Store))
		}
	}

	return errors.Join(errs...)
}
