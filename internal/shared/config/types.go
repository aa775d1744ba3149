package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host             string   `mapstructure:"host"`
	Port             int      `mapstructure:"port"`
	Mode             string   `mapstructure:"mode"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	ReadTimeoutSec   int      `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec  int      `mapstructure:"write_timeout_sec"`
	RateLimitPerMin  int      `mapstructure:"rate_limit_per_min"`
	TrustedProxies   []string `mapstructure:"trusted_proxies"`
	BusinessTimezone string   `mapstructure:"business_timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN renders the connection string for the configured driver.
// For sqlite, Database is the file path (or ":memory:").
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	Issuer           string `mapstructure:"issuer"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type EmailConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	SMTPHost        string   `mapstructure:"smtp_host"`
	SMTPPort        int      `mapstructure:"smtp_port"`
	SMTPUser        string   `mapstructure:"smtp_user"`
	SMTPPassword    string   `mapstructure:"smtp_password"`
	FromAddress     string   `mapstructure:"from_address"`
	FromName        string   `mapstructure:"from_name"`
	AdminRecipients []string `mapstructure:"admin_recipients"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// FeedConfig describes one polled external feed.
type FeedConfig struct {
	URL             string `mapstructure:"url"`
	IntervalSeconds int    `mapstructure:"interval_seconds"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	// Symbol selects the pool in the yield feed; unused for exchange rates.
	Symbol string `mapstructure:"symbol"`
}

func (f *FeedConfig) Interval() time.Duration {
	return time.Duration(f.IntervalSeconds) * time.Second
}

func (f *FeedConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type FeedsConfig struct {
	ExchangeRate FeedConfig `mapstructure:"exchange_rate"`
	APY          FeedConfig `mapstructure:"apy"`
	// MaxStaleMinutes marks a snapshot stale once it is older than this,
	// even when no refresh has failed yet.
	MaxStaleMinutes int `mapstructure:"max_stale_minutes"`
	// BreakerFailures consecutive failures open the circuit for BreakerOpenSeconds.
	BreakerFailures    int `mapstructure:"breaker_failures"`
	BreakerOpenSeconds int `mapstructure:"breaker_open_seconds"`
}

type YieldConfig struct {
	FeePolicy       string `mapstructure:"fee_policy"`
	DepositCurrency string `mapstructure:"deposit_currency"`
}

type PilotConfig struct {
	AUMLimitJPY        int64 `mapstructure:"aum_limit_jpy"`
	UserLimit          int   `mapstructure:"user_limit"`
	MaturingWindowDays int   `mapstructure:"maturing_window_days"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type MessagingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Driver is "amqp" (default) or "redis".
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
	Channel  string `mapstructure:"channel"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type MigrationConfig struct {
	Strategy    string `mapstructure:"strategy"`
	ScriptsPath string `mapstructure:"scripts_path"`
	AutoRun     bool   `mapstructure:"auto_run"`
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MaturityDigestCron is a five-field cron expression in the business timezone.
	MaturityDigestCron string `mapstructure:"maturity_digest_cron"`
}
