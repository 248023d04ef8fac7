// Package config loads service settings from an optional YAML file and the
// environment. Environment variables take precedence over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port     int    `koanf:"port"`
	LogLevel string `koanf:"log_level"`

	// Session storage. An empty RedisAddr keeps sessions in process memory.
	RedisAddr  string        `koanf:"redis_addr"`
	SessionTTL time.Duration `koanf:"session_ttl"`

	MaxUploadMB     int     `koanf:"max_upload_mb"`
	PreviewRows     int     `koanf:"preview_rows"`
	HighlightRows   int     `koanf:"highlight_rows"`
	HistogramBins   int     `koanf:"histogram_bins"`
	MaxUrgencyFloor float64 `koanf:"max_urgency_floor"`

	// Optional Postgres import source. Disabled when PostgresHost is empty.
	PostgresHost     string `koanf:"postgres_host"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresUser     string `koanf:"postgres_user"`
	PostgresPassword string `koanf:"postgres_password"`
	PostgresDB       string `koanf:"postgres_db"`

	// Optional RabbitMQ ranking notifications. Disabled when MQHost is empty.
	MQHost     string `koanf:"mq_host"`
	MQPort     string `koanf:"mq_port"`
	MQUser     string `koanf:"mq_user"`
	MQPassword string `koanf:"mq_password"`
	MQQueue    string `koanf:"mq_queue"`
}

const (
	DefaultPort            = 3000
	DefaultLogLevel        = "info"
	DefaultSessionTTL      = 2 * time.Hour
	DefaultMaxUploadMB     = 15
	DefaultPreviewRows     = 5
	DefaultHighlightRows   = 3
	DefaultHistogramBins   = 10
	DefaultMaxUrgencyFloor = 10.0
	DefaultPostgresPort    = "5432"
	DefaultMQPort          = "5672"
	DefaultMQQueue         = "rankings"
)

var (
	ErrInvalidPort       = errors.New("PORT must be between 1 and 65535")
	ErrInvalidSessionTTL = errors.New("SESSION_TTL must be positive")
	ErrInvalidUploadSize = errors.New("MAX_UPLOAD_MB must be positive")
	ErrInvalidRowCounts  = errors.New("PREVIEW_ROWS and HIGHLIGHT_ROWS must be positive")
	ErrInvalidBins       = errors.New("HISTOGRAM_BINS must be positive")
	ErrInvalidFloor      = errors.New("MAX_URGENCY_FLOOR must be positive")
)

// Load reads configuration from configFilePath (optional) and the
// environment. It returns the config and every problem found.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	var errs []error
	intVal := func(env, key string, def int) int {
		v, err := envInt(env, k.Int(key), def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	ttl, err := envDuration("SESSION_TTL", k.Duration("session_ttl"), DefaultSessionTTL)
	if err != nil {
		errs = append(errs, err)
	}
	floor, err := envFloat("MAX_URGENCY_FLOOR", k.Float64("max_urgency_floor"), DefaultMaxUrgencyFloor)
	if err != nil {
		errs = append(errs, err)
	}

	cfg := &Config{
		Port:     intVal("PORT", "port", DefaultPort),
		LogLevel: envString("LOG_LEVEL", k.String("log_level"), DefaultLogLevel),

		RedisAddr:  envString("REDIS_ADDR", k.String("redis_addr"), ""),
		SessionTTL: ttl,

		MaxUploadMB:     intVal("MAX_UPLOAD_MB", "max_upload_mb", DefaultMaxUploadMB),
		PreviewRows:     intVal("PREVIEW_ROWS", "preview_rows", DefaultPreviewRows),
		HighlightRows:   intVal("HIGHLIGHT_ROWS", "highlight_rows", DefaultHighlightRows),
		HistogramBins:   intVal("HISTOGRAM_BINS", "histogram_bins", DefaultHistogramBins),
		MaxUrgencyFloor: floor,

		PostgresHost:     envString("POSTGRES_HOST", k.String("postgres_host"), ""),
		PostgresPort:     envString("POSTGRES_PORT", k.String("postgres_port"), DefaultPostgresPort),
		PostgresUser:     envString("POSTGRES_USER", k.String("postgres_user"), ""),
		PostgresPassword: envString("POSTGRES_PASSWORD", k.String("postgres_password"), ""),
		PostgresDB:       envString("POSTGRES_DB", k.String("postgres_db"), ""),

		MQHost:     envString("MQ_HOST", k.String("mq_host"), ""),
		MQPort:     envString("MQ_PORT", k.String("mq_port"), DefaultMQPort),
		MQUser:     envString("MQ_USER", k.String("mq_user"), ""),
		MQPassword: envString("MQ_PASSWORD", k.String("mq_password"), ""),
		MQQueue:    envString("MQ_QUEUE", k.String("mq_queue"), DefaultMQQueue),
	}

	errs = append(errs, cfg.Validate()...)
	return cfg, errs
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		LogLevel:        DefaultLogLevel,
		SessionTTL:      DefaultSessionTTL,
		MaxUploadMB:     DefaultMaxUploadMB,
		PreviewRows:     DefaultPreviewRows,
		HighlightRows:   DefaultHighlightRows,
		HistogramBins:   DefaultHistogramBins,
		MaxUrgencyFloor: DefaultMaxUrgencyFloor,
		PostgresPort:    DefaultPostgresPort,
		MQPort:          DefaultMQPort,
		MQQueue:         DefaultMQQueue,
	}
}

func (c *Config) Validate() []error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, ErrInvalidSessionTTL)
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, ErrInvalidUploadSize)
	}
	if c.PreviewRows <= 0 || c.HighlightRows <= 0 {
		errs = append(errs, ErrInvalidRowCounts)
	}
	if c.HistogramBins <= 0 {
		errs = append(errs, ErrInvalidBins)
	}
	if c.MaxUrgencyFloor <= 0 {
		errs = append(errs, ErrInvalidFloor)
	}
	return errs
}

func (c *Config) PostgresEnabled() bool {
	return c.PostgresHost != ""
}

func (c *Config) MQEnabled() bool {
	return c.MQHost != ""
}

func envString(envKey, koanfVal, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if koanfVal != "" {
		return koanfVal
	}
	return def
}

func envInt(envKey string, koanfVal, def int) (int, error) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		out, err := strconv.Atoi(v)
		if err != nil {
			return def, fmt.Errorf("invalid %s=%q: %w", envKey, v, err)
		}
		return out, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return def, nil
}

func envFloat(envKey string, koanfVal, def float64) (float64, error) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		out, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def, fmt.Errorf("invalid %s=%q: %w", envKey, v, err)
		}
		return out, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return def, nil
}

func envDuration(envKey string, koanfVal, def time.Duration) (time.Duration, error) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		out, err := time.ParseDuration(v)
		if err != nil {
			return def, fmt.Errorf("invalid %s=%q: %w", envKey, v, err)
		}
		return out, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return def, nil
}
