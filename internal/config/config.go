package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Stripe      StripeConfig      `yaml:"stripe"`
	Sendgrid    SendgridConfig    `yaml:"sendgrid"`
	JWT         JWTConfig         `yaml:"jwt"`
	Log         LogConfig         `yaml:"log"`
	Reservation ReservationConfig `yaml:"reservation"`
	Deposit     DepositConfig     `yaml:"deposit"`
	Loyalty     LoyaltyConfig     `yaml:"loyalty"`
	Cache       CacheConfig       `yaml:"cache"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Extras      []ExtraConfig     `yaml:"extras"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains the optional cache backend settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	Currency      string `yaml:"currency"`
}

// SendgridConfig contains notification email settings
type SendgridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
	OpsEmail  string `yaml:"ops_email"`
}

// JWTConfig contains bearer token validation settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// ReservationConfig contains booking policy settings
type ReservationConfig struct {
	TurnaroundBufferHours int `yaml:"turnaround_buffer_hours"`
	CancellationLeadHours int `yaml:"cancellation_lead_hours"`
}

// DepositConfig contains the pre-authorization hold policy
type DepositConfig struct {
	RequiredByDefault bool  `yaml:"required_by_default"`
	Percent           int   `yaml:"percent"`
	MinCents          int64 `yaml:"min_cents"`
	MaxCents          int64 `yaml:"max_cents"`
	HoldDays          int   `yaml:"hold_days"`
}

// LoyaltyConfig contains point ledger policy settings
type LoyaltyConfig struct {
	MinRedemption    int64 `yaml:"min_redemption"`
	PrataThreshold   int64 `yaml:"prata_threshold"`
	OuroThreshold    int64 `yaml:"ouro_threshold"`
	PlatinaThreshold int64 `yaml:"platina_threshold"`
}

// CacheConfig contains group-minimum cache settings
type CacheConfig struct {
	Backend    string `yaml:"backend"` // "memory" or "redis"
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepExpiredHolds string `yaml:"sweep_expired_holds"`
	WarmGroupMinimums string `yaml:"warm_group_minimums"`
}

// ExtraConfig is one entry of the bookable extras catalog
type ExtraConfig struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	DailyPriceCents int64  `yaml:"daily_price_cents"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Redis
	if val := os.Getenv("REDIS_HOST"); val != "" {
		c.Redis.Host = val
	}
	if val := os.Getenv("REDIS_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Redis.Port)
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Stripe
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Stripe.SecretKey = val
	}
	if val := os.Getenv("STRIPE_WEBHOOK_SECRET"); val != "" {
		c.Stripe.WebhookSecret = val
	}

	// Sendgrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Sendgrid.APIKey = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration and fills policy defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Reservation policy defaults
	if c.Reservation.TurnaroundBufferHours == 0 {
		c.Reservation.TurnaroundBufferHours = 2
	}
	if c.Reservation.CancellationLeadHours == 0 {
		c.Reservation.CancellationLeadHours = 24
	}

	// Deposit policy defaults
	if c.Deposit.Percent == 0 {
		c.Deposit.Percent = 15
	}
	if c.Deposit.Percent < 0 || c.Deposit.Percent > 100 {
		return fmt.Errorf("deposit percent must be between 0 and 100")
	}
	if c.Deposit.MinCents == 0 {
		c.Deposit.MinCents = 30000 // R$300.00
	}
	if c.Deposit.MaxCents == 0 {
		c.Deposit.MaxCents = 200000 // R$2000.00
	}
	if c.Deposit.MinCents > c.Deposit.MaxCents {
		return fmt.Errorf("deposit min_cents exceeds max_cents")
	}
	if c.Deposit.HoldDays == 0 {
		c.Deposit.HoldDays = 7
	}

	// Loyalty defaults
	if c.Loyalty.MinRedemption == 0 {
		c.Loyalty.MinRedemption = 100
	}
	if c.Loyalty.PrataThreshold == 0 {
		c.Loyalty.PrataThreshold = 1000
	}
	if c.Loyalty.OuroThreshold == 0 {
		c.Loyalty.OuroThreshold = 5000
	}
	if c.Loyalty.PlatinaThreshold == 0 {
		c.Loyalty.PlatinaThreshold = 20000
	}

	// Cache defaults
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("unsupported cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 60
	}

	// Stripe defaults
	if c.Stripe.Currency == "" {
		c.Stripe.Currency = "brl"
	}

	// Scheduler defaults
	if c.Scheduler.SweepExpiredHolds == "" {
		c.Scheduler.SweepExpiredHolds = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.WarmGroupMinimums == "" {
		c.Scheduler.WarmGroupMinimums = "0 0 5 * * *" // 5 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetRedisAddress returns the redis address
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
