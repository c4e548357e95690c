package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	BaseURL  string `mapstructure:"base_url"`
	Timezone string `mapstructure:"timezone"`
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
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the MySQL DSN. Times are parsed as UTC; every timestamp
// the lifecycle jobs compare against is written in UTC.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT        JWTConfig `mapstructure:"jwt"`
	BcryptCost int       `mapstructure:"bcrypt_cost"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

func (e *EmailConfig) IsConfigured() bool {
	return e.SMTPHost != ""
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

// EventsConfig selects the transport for conversation status events.
// Driver is one of "redis", "amqp" or "none".
type EventsConfig struct {
	Driver   string `mapstructure:"driver"`
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"exchange"`
}

// LifecycleConfig holds the retention windows driving the account,
// ticket and audit jobs.
type LifecycleConfig struct {
	VerificationTTLHours int    `mapstructure:"verification_ttl_hours"`
	ReminderLeadHours    int    `mapstructure:"reminder_lead_hours"`
	TicketInactivityDays int    `mapstructure:"ticket_inactivity_days"`
	AuditRetentionDays   int    `mapstructure:"audit_retention_days"`
	AnonymousMarker      string `mapstructure:"anonymous_marker"`
}

const (
	DefaultVerificationTTLHours = 24
	DefaultReminderLeadHours    = 2
	DefaultTicketInactivityDays = 7
	DefaultAuditRetentionDays   = 60
	DefaultAnonymousMarker      = "[ANON]"
)

func DefaultLifecycleConfig() LifecycleConfig {
	return LifecycleConfig{
		VerificationTTLHours: DefaultVerificationTTLHours,
		ReminderLeadHours:    DefaultReminderLeadHours,
		TicketInactivityDays: DefaultTicketInactivityDays,
		AuditRetentionDays:   DefaultAuditRetentionDays,
		AnonymousMarker:      DefaultAnonymousMarker,
	}
}

func (l LifecycleConfig) VerificationTTL() time.Duration {
	if l.VerificationTTLHours <= 0 {
		return DefaultVerificationTTLHours * time.Hour
	}
	return time.Duration(l.VerificationTTLHours) * time.Hour
}

func (l LifecycleConfig) ReminderLead() time.Duration {
	if l.ReminderLeadHours <= 0 {
		return DefaultReminderLeadHours * time.Hour
	}
	return time.Duration(l.ReminderLeadHours) * time.Hour
}

func (l LifecycleConfig) TicketInactivity() time.Duration {
	if l.TicketInactivityDays <= 0 {
		return DefaultTicketInactivityDays * 24 * time.Hour
	}
	return time.Duration(l.TicketInactivityDays) * 24 * time.Hour
}

func (l LifecycleConfig) AuditRetention() int {
	if l.AuditRetentionDays <= 0 {
		return DefaultAuditRetentionDays
	}
	return l.AuditRetentionDays
}

func (l LifecycleConfig) Marker() string {
	if l.AnonymousMarker == "" {
		return DefaultAnonymousMarker
	}
	return l.AnonymousMarker
}

// SchedulerConfig controls the worker cadence. Cron expressions are
// evaluated in the business timezone.
type SchedulerConfig struct {
	AccountIntervalMinutes int    `mapstructure:"account_interval_minutes"`
	TicketCron             string `mapstructure:"ticket_cron"`
	AuditCron              string `mapstructure:"audit_cron"`
}

// RateLimitConfig throttles the public endpoints per client IP. It needs
// redis; without it requests are never throttled.
type RateLimitConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	AuthPerMinute    int  `mapstructure:"auth_per_minute"`
	AuthPerHour      int  `mapstructure:"auth_per_hour"`
	SupportPerMinute int  `mapstructure:"support_per_minute"`
	SupportPerHour   int  `mapstructure:"support_per_hour"`
}
