package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Ops HTTP server Configuration
	HTTPServer HTTPServerConfig

	// Database Configuration
	Postgres PostgresConfig

	// Detection pipeline Configuration
	Scheduler SchedulerConfig
	Analyzer  AnalyzerConfig
	Batch     BatchConfig

	// Notification Configuration
	Notification NotificationConfig
	Webhook      WebhookConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string `env:"LOG_LEVEL" envDefault:"debug"`
	Mode         string `env:"LOG_MODE" envDefault:"development"`
	Encoding     string `env:"LOG_ENCODING" envDefault:"console"`
	ColorEnabled bool   `env:"LOG_COLOR" envDefault:"true"`
}

// HTTPServerConfig is the configuration for the ops HTTP server (health checks).
type HTTPServerConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`
	Mode string `env:"HTTP_MODE" envDefault:"release"`
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"carewatch"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"carewatch"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"25"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// SchedulerConfig holds the cron expressions for the batch jobs.
type SchedulerConfig struct {
	// DetectionCron fires the daily anomaly-detection batch. Default: 09:00 daily.
	DetectionCron string `env:"DETECTION_CRON" envDefault:"0 9 * * *"`
	// RetrySweepCron fires the pending-retry sweep. Default: every 5 minutes.
	RetrySweepCron string `env:"RETRY_SWEEP_CRON" envDefault:"*/5 * * * *"`
}

// AnalyzerConfig holds the externally tunable risk thresholds.
// Analyzers treat these as injected parameters, never compiled constants.
type AnalyzerConfig struct {
	// AnalysisDays is the history window, in days, read by the analyzers.
	AnalysisDays int `env:"ANALYSIS_DAYS" envDefault:"7"`

	// Emotion pattern thresholds.
	EmotionHighConsecutiveDays   int     `env:"EMOTION_HIGH_CONSECUTIVE_DAYS" envDefault:"3"`
	EmotionHighNegativeRatio     float64 `env:"EMOTION_HIGH_NEGATIVE_RATIO" envDefault:"0.7"`
	EmotionMediumConsecutiveDays int     `env:"EMOTION_MEDIUM_CONSECUTIVE_DAYS" envDefault:"2"`
	EmotionMediumNegativeRatio   float64 `env:"EMOTION_MEDIUM_NEGATIVE_RATIO" envDefault:"0.5"`

	// No-response thresholds.
	NoResponseHighConsecutiveDays   int     `env:"NO_RESPONSE_HIGH_CONSECUTIVE_DAYS" envDefault:"2"`
	NoResponseHighMaxResponseRate   float64 `env:"NO_RESPONSE_HIGH_MAX_RESPONSE_RATE" envDefault:"0.3"`
	NoResponseMediumConsecutiveDays int     `env:"NO_RESPONSE_MEDIUM_CONSECUTIVE_DAYS" envDefault:"1"`
	NoResponseMediumMaxResponseRate float64 `env:"NO_RESPONSE_MEDIUM_MAX_RESPONSE_RATE" envDefault:"0.5"`

	// Keyword lists, comma separated. Matching is case-insensitive substring.
	EmergencyKeywords []string `env:"EMERGENCY_KEYWORDS" envSeparator:"," envDefault:"도와주세요,아파요,숨이,가슴이,쓰러짐,응급실,119,병원,죽겠어"`
	WarningKeywords   []string `env:"WARNING_KEYWORDS" envSeparator:"," envDefault:"우울해,외로워,죽고싶어,포기,희망없어,의미없어,괴로워,힘들어"`
	// WarningLevel is the alert level assigned to warning-list matches (MEDIUM or HIGH).
	WarningLevel string `env:"WARNING_KEYWORD_LEVEL" envDefault:"HIGH"`
}

// BatchConfig tunes the per-user batch loop.
type BatchConfig struct {
	// Workers bounds the per-user worker pool. 1 means sequential processing.
	Workers int `env:"BATCH_WORKERS" envDefault:"1"`
	// UserTimeout bounds a single user's detect-and-notify unit of work.
	UserTimeout time.Duration `env:"BATCH_USER_TIMEOUT" envDefault:"1m"`
}

// NotificationConfig tunes delivery, retry and the deferred-retry sweep.
type NotificationConfig struct {
	// Channel selects the primary transport: webhook or mock.
	Channel string `env:"NOTIFICATION_CHANNEL" envDefault:"webhook"`
	// FallbackEnabled wires the mock channel as a secondary transport.
	FallbackEnabled bool `env:"NOTIFICATION_FALLBACK_ENABLED" envDefault:"false"`

	TitleTemplate string `env:"NOTIFICATION_TITLE_TEMPLATE" envDefault:"[CAREWATCH] %s level anomaly detected"`

	// In-process retry (exponential backoff around a single send).
	RetryMaxAttempts  int           `env:"NOTIFICATION_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay time.Duration `env:"NOTIFICATION_RETRY_INITIAL_DELAY" envDefault:"1s"`
	RetryMultiplier   float64       `env:"NOTIFICATION_RETRY_MULTIPLIER" envDefault:"2.0"`

	// Deferred-retry sweep over persisted retry records.
	SweepMaxRetries int `env:"NOTIFICATION_SWEEP_MAX_RETRIES" envDefault:"3"`
	SweepBatchLimit int `env:"NOTIFICATION_SWEEP_BATCH_LIMIT" envDefault:"100"`
}

// WebhookConfig is the configuration for the guardian webhook channel.
type WebhookConfig struct {
	URL     string        `env:"GUARDIAN_WEBHOOK_URL"`
	Timeout time.Duration `env:"GUARDIAN_WEBHOOK_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment: %w", err)
	}
	return cfg, nil
}
