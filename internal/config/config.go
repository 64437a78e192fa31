package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	DBConn        string        `env:"DB_CONN" envDefault:"host=localhost port=5436 user=test password=test dbname=fintrack sslmode=disable"`
	RedisAddress  string        `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
	EncryptionKey string        `env:"ENCRYPTION_KEY" envDefault:"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"`
	RatesURL      string        `env:"RATES_URL" envDefault:"https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"`
	AppURL        string        `env:"APP_URL" envDefault:"http://localhost:3000"`

	Mongo     Mongo
	Storage   Storage
	SMTP      SMTP
	Scheduler Scheduler
}

type Mongo struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"fintrack"`
}

// Storage configures receipt uploads. An empty bucket disables them.
type Storage struct {
	Bucket          string `env:"GCS_BUCKET"`
	CredentialsJSON string `env:"GCS_CREDENTIALS_JSON"`
}

type SMTP struct {
	Host        string `env:"SMTP_HOST"`
	Port        string `env:"SMTP_PORT" envDefault:"587"`
	Username    string `env:"SMTP_USERNAME"`
	Password    string `env:"SMTP_PASSWORD"`
	SenderEmail string `env:"SENDER_EMAIL" envDefault:"no-reply@fintrack.local"`
}

type Scheduler struct {
	BudgetSyncSpec    string `env:"BUDGET_SYNC_SPEC" envDefault:"@every 1h"`
	RolloverSpec      string `env:"ROLLOVER_SPEC" envDefault:"15 0 * * *"`
	ReminderSpec      string `env:"REMINDER_SPEC" envDefault:"0 8 * * *"`
	ReminderDaysAhead int    `env:"REMINDER_DAYS_AHEAD" envDefault:"3"`
}

// NewConfig loads configuration from the environment, reading a .env file first when one exists
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if _, err := cfg.EncryptionKeyBytes(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EncryptionKeyBytes decodes ENCRYPTION_KEY into an AES key
func (c *Config) EncryptionKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex encoded: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	default:
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to 16, 24 or 32 bytes, got %d", len(key))
	}
}

// MailEnabled reports whether SMTP delivery is configured
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != ""
}
