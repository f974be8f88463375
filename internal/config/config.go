package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Log          LogConfig
	Auth         AuthConfig
	Pricing      PricingConfig
	Reservation  ReservationConfig
	Jobs         JobsConfig
	Notification NotificationConfig
}

type ServerConfig struct {
	Port        int
	FrontendURL string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PricingConfig struct {
	TablePath string
}

type ReservationConfig struct {
	TxTimeout  time.Duration
	MaxRetries int
}

type JobsConfig struct {
	CompletionSchedule string
}

type NotificationConfig struct {
	DiscordBotToken  string
	DiscordChannelID string
	SendGridAPIKey   string
	MailFrom         string
	MailFromName     string
}

// Load reads configuration from defaults, an optional file named by
// CONFIG_PATH, and the environment, in increasing priority.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "snowrent")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "snowrent")
	v.SetDefault("DB_PATH", "snowrent.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("PRICE_TABLE_PATH", "")
	v.SetDefault("RESERVATION_TX_TIMEOUT", "5s")
	v.SetDefault("RESERVATION_MAX_RETRY", 3)
	v.SetDefault("COMPLETION_SCHEDULE", "0 0 2 * * *")
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_CHANNEL_ID", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM", "reservations@snowrent.example")
	v.SetDefault("MAIL_FROM_NAME", "Snow Rental")

	if path := v.GetString("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}
	tokenTTL, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	txTimeout, err := time.ParseDuration(v.GetString("RESERVATION_TX_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("RESERVATION_TX_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetInt("SERVER_PORT"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("DB_DRIVER"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			Path:            v.GetString("DB_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Pricing: PricingConfig{
			TablePath: v.GetString("PRICE_TABLE_PATH"),
		},
		Reservation: ReservationConfig{
			TxTimeout:  txTimeout,
			MaxRetries: v.GetInt("RESERVATION_MAX_RETRY"),
		},
		Jobs: JobsConfig{
			CompletionSchedule: v.GetString("COMPLETION_SCHEDULE"),
		},
		Notification: NotificationConfig{
			DiscordBotToken:  v.GetString("DISCORD_BOT_TOKEN"),
			DiscordChannelID: v.GetString("DISCORD_CHANNEL_ID"),
			SendGridAPIKey:   v.GetString("SENDGRID_API_KEY"),
			MailFrom:         v.GetString("MAIL_FROM"),
			MailFromName:     v.GetString("MAIL_FROM_NAME"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite3":
	default:
		return fmt.Errorf("DB_DRIVER must be mysql or sqlite3, got %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Reservation.MaxRetries < 1 {
		return fmt.Errorf("RESERVATION_MAX_RETRY must be at least 1")
	}
	return nil
}
