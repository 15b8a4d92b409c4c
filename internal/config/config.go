package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from .env file, environment and flags.
type Config struct {
	RunAddress            string        `env:"RUN_ADDRESS"`
	DatabaseURI           string        `env:"DATABASE_URI"`
	PaymentGatewayAddress string        `env:"PAYMENT_GATEWAY_ADDRESS"`
	PaymentSecretKey      string        `env:"PAYMENT_SECRET_KEY"`
	WebhookChallenge      string        `env:"PAYMENT_WEBHOOK_CHALLENGE"`
	PaymentCurrency       string        `env:"PAYMENT_CURRENCY"`
	JWTSecret             string        `env:"JWT_SECRET"`
	JWTSecretFile         string        `env:"JWT_SECRET_FILE"`
	TokenTTL              time.Duration `env:"TOKEN_TTL"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	PaymentPollInterval   time.Duration `env:"PAYMENT_POLL_INTERVAL"`
	WorkerPoolSize        int           `env:"WORKER_POOL_SIZE"`
	MaxPaymentsBatch      int           `env:"POLL_BATCH_SIZE"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT"`
	FilesDir              string        `env:"FILES_DIR"`
	PublicBaseURL         string        `env:"PUBLIC_BASE_URL"`
	MaxUploadBytes        int64         `env:"MAX_UPLOAD_BYTES"`
	StaffEmails           []string      `env:"STAFF_EMAILS" envSeparator:","`
	KafkaBrokers          []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic            string        `env:"KAFKA_TOPIC"`
	RabbitMQURL           string        `env:"RABBITMQ_URL"`
	RabbitMQExchange      string        `env:"RABBITMQ_EXCHANGE"`
	DBMaxConns            int32         `env:"DB_MAX_CONNS"`
	AutoMigrate           bool          `env:"AUTO_MIGRATE"`
	LogLevel              string        `env:"LOG_LEVEL"`
}

// Args are command-line arguments passed to the serve command.
type Args []string

const (
	defaultRunAddress          = ":8080"
	defaultJWTSecret           = "change-me-in-production"
	defaultPaymentCurrency     = "KES"
	defaultPaymentPollInterval = 5 * time.Second
	defaultTokenTTL            = 24 * time.Hour
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
	defaultMaxPaymentsBatch    = 32
	defaultFilesDir            = "data/files"
	defaultPublicBaseURL       = "http://localhost:8080"
	defaultMaxUploadBytes      = 10 << 20
	defaultKafkaTopic          = "cvorders.order-events"
	defaultRabbitMQExchange    = "cvorders.order-events"
	defaultLogLevel            = "info"
	defaultEnvFile             = ".env"
)

// Load parses configuration from .env file, process environment and flags.
func Load(args Args) (*Config, error) {
	environ, err := readEnviron(os.Environ())
	if err != nil {
		return nil, err
	}
	return load(args, environ)
}

// readEnviron merges the .env file with process environment. Process values win.
func readEnviron(processEnv []string) (map[string]string, error) {
	current := make(map[string]string, len(processEnv))
	for _, kv := range processEnv {
		if k, v, ok := strings.Cut(kv, "="); ok {
			current[k] = v
		}
	}

	path := defaultEnvFile
	if v, ok := current["ENV_FILE"]; ok && v != "" {
		path = v
	}

	merged, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		merged = make(map[string]string, len(current))
	}
	for k, v := range current {
		merged[k] = v
	}
	return merged, nil
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{
		RunAddress:          defaultRunAddress,
		JWTSecret:           defaultJWTSecret,
		TokenTTL:            defaultTokenTTL,
		PaymentCurrency:     defaultPaymentCurrency,
		PaymentPollInterval: defaultPaymentPollInterval,
		WorkerPoolSize:      defaultWorkerPoolSize,
		MaxPaymentsBatch:    defaultMaxPaymentsBatch,
		ShutdownTimeout:     defaultShutdownTimeout,
		FilesDir:            defaultFilesDir,
		PublicBaseURL:       defaultPublicBaseURL,
		MaxUploadBytes:      defaultMaxUploadBytes,
		KafkaTopic:          defaultKafkaTopic,
		RabbitMQExchange:    defaultRabbitMQExchange,
		LogLevel:            defaultLogLevel,
		AutoMigrate:         true,
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("cvorders", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PaymentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentGatewayAddress, "p", cfg.PaymentGatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent payment reconciliation workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment status polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxPaymentsBatch, "poll-batch", cfg.MaxPaymentsBatch, "Maximum payments per polling batch")
	fs.StringVar(&cfg.FilesDir, "files-dir", cfg.FilesDir, "Directory for uploaded files")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PaymentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.JWTSecretFile != "" {
		content, err := os.ReadFile(cfg.JWTSecretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxPaymentsBatch <= 0 {
		cfg.MaxPaymentsBatch = defaultMaxPaymentsBatch
	}

	if cfg.PaymentPollInterval <= 0 {
		cfg.PaymentPollInterval = defaultPaymentPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	cfg.StaffEmails = normalizeList(cfg.StaffEmails, true)
	cfg.KafkaBrokers = normalizeList(cfg.KafkaBrokers, false)

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentGatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

// LogValue renders the effective settings with secrets left out.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_address", c.RunAddress),
		slog.String("payment_gateway", c.PaymentGatewayAddress),
		slog.String("payment_currency", c.PaymentCurrency),
		slog.Duration("poll_interval", c.PaymentPollInterval),
		slog.Int("worker_pool", c.WorkerPoolSize),
		slog.String("files_dir", c.FilesDir),
		slog.Int("staff_emails", len(c.StaffEmails)),
		slog.Bool("kafka", len(c.KafkaBrokers) > 0),
		slog.Bool("rabbitmq", c.RabbitMQURL != ""),
		slog.Bool("auto_migrate", c.AutoMigrate),
	)
}

// IsStaffEmail reports whether email is configured as a staff account.
func (c *Config) IsStaffEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.StaffEmails {
		if e == email {
			return true
		}
	}
	return false
}

func normalizeList(values []string, lower bool) []string {
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
