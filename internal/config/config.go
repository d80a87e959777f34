package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// EnvPrefix префикс переменных окружения: SALON_<SECTION>_<FIELD>
const EnvPrefix = "SALON"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	Payments      PaymentsConfig      `toml:"payments"`
	Notifications NotificationsConfig `toml:"notifications"`
	Admin         AdminConfig         `toml:"admin"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// SchedulingConfig правила расписания салона
type SchedulingConfig struct {
	// ClosingTime время, позже которого не может заканчиваться запись
	ClosingTime string `toml:"closing_time" split_words:"true"`
	// MaxGenerationDays максимальная длина периода генерации слотов
	MaxGenerationDays int `toml:"max_generation_days" split_words:"true"`
}

// ClosingBound разобранное время закрытия
func (c SchedulingConfig) ClosingBound() (types.TimeOfDay, error) {
	return types.ParseTimeOfDay(c.ClosingTime)
}

const (
	PaymentProviderNone        = "none"
	PaymentProviderMercadoPago = "mercadopago"
	PaymentProviderStripe      = "stripe"
)

type PaymentsConfig struct {
	Provider         string `toml:"provider" split_words:"true"`
	MercadoPagoURL   string `toml:"mercadopago_url" split_words:"true"`
	MercadoPagoToken string `toml:"mercadopago_token" split_words:"true"`
	StripeSecretKey  string `toml:"stripe_secret_key" split_words:"true"`
	Timeout          int    `toml:"timeout" split_words:"true"`
}

const (
	NotifierNone    = "none"
	NotifierWebhook = "webhook"
	NotifierKafka   = "kafka"
)

type NotificationsConfig struct {
	Driver       string   `toml:"driver" split_words:"true"`
	WebhookURL   string   `toml:"webhook_url" split_words:"true"`
	KafkaBrokers []string `toml:"kafka_brokers" split_words:"true"`
	KafkaTopic   string   `toml:"kafka_topic" split_words:"true"`
	Timeout      int      `toml:"timeout" split_words:"true"`
}

type AdminConfig struct {
	Token string `toml:"token" split_words:"true"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" split_words:"true"`
	RPS     float64 `toml:"rps" split_words:"true"`
	Burst   int     `toml:"burst" split_words:"true"`
	// TrustedProxies адреса или подсети прокси, которым разрешено передавать X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies" split_words:"true"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
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
			User:            "postgres",
			DBName:          "salon",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-booking",
		},
		Scheduling: SchedulingConfig{
			ClosingTime:       "19:00",
			MaxGenerationDays: 366,
		},
		Payments: PaymentsConfig{
			Provider:       PaymentProviderNone,
			MercadoPagoURL: "https://api.mercadopago.com",
			Timeout:        10,
		},
		Notifications: NotificationsConfig{
			Driver:     NotifierNone,
			KafkaTopic: "salon.bookings",
			Timeout:    5,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию и применяет переменные окружения.
// Отсутствующий файл не ошибка: сервис можно настроить только окружением.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	sections := []struct {
		name string
		spec interface{}
	}{
		{"SERVER", &cfg.Server},
		{"DATABASE", &cfg.Database},
		{"LOGS", &cfg.Logs},
		{"METRICS", &cfg.Metrics},
		{"SCHEDULING", &cfg.Scheduling},
		{"PAYMENTS", &cfg.Payments},
		{"NOTIFICATIONS", &cfg.Notifications},
		{"ADMIN", &cfg.Admin},
		{"RATE_LIMIT", &cfg.RateLimit},
	}

	for _, s := range sections {
		if err := envconfig.Process(EnvPrefix+"_"+s.name, s.spec); err != nil {
			return fmt.Errorf("config: env %s: %w", s.name, err)
		}
	}
	return nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if _, err := c.Scheduling.ClosingBound(); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.closing_time: %v", err))
	}
	if c.Scheduling.MaxGenerationDays <= 0 {
		problems = append(problems, "scheduling.max_generation_days must be positive")
	}

	switch strings.ToLower(c.Payments.Provider) {
	case PaymentProviderNone, "":
	case PaymentProviderMercadoPago:
		if c.Payments.MercadoPagoToken == "" {
			problems = append(problems, "payments.mercadopago_token is required for mercadopago")
		}
	case PaymentProviderStripe:
		if c.Payments.StripeSecretKey == "" {
			problems = append(problems, "payments.stripe_secret_key is required for stripe")
		}
	default:
		problems = append(problems, fmt.Sprintf("payments.provider %q is not supported", c.Payments.Provider))
	}

	switch strings.ToLower(c.Notifications.Driver) {
	case NotifierNone, "":
	case NotifierWebhook:
		if c.Notifications.WebhookURL == "" {
			problems = append(problems, "notifications.webhook_url is required for webhook driver")
		}
	case NotifierKafka:
		if len(c.Notifications.KafkaBrokers) == 0 || c.Notifications.KafkaTopic == "" {
			problems = append(problems, "notifications.kafka_brokers and kafka_topic are required for kafka driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("notifications.driver %q is not supported", c.Notifications.Driver))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
