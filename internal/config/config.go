package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from .env, environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	JWTSecret         string
	LogLevel          string
	ShutdownTimeout   time.Duration
	ReconcileInterval time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	AMQPURL           string
	AMQPExchange      string
	JaegerEndpoint    string
	WSSendBuffer      int
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultLogLevel          = "info"
	defaultShutdownTimeout   = 10 * time.Second
	defaultReconcileInterval = time.Minute
	defaultReconcileBatch    = 100
	defaultWorkerPoolSize    = 4
	defaultAMQPExchange      = "foodcourt.events"
	defaultWSSendBuffer      = 16
)

const (
	keyRunAddress        = "RUN_ADDRESS"
	keyDatabaseURI       = "DATABASE_URI"
	keyJWTSecret         = "JWT_SECRET"
	keyJWTSecretFile     = "JWT_SECRET_FILE"
	keyLogLevel          = "LOG_LEVEL"
	keyShutdownTimeout   = "SHUTDOWN_TIMEOUT"
	keyReconcileInterval = "RECONCILE_INTERVAL"
	keyReconcileBatch    = "RECONCILE_BATCH"
	keyWorkerPoolSize    = "WORKER_POOL_SIZE"
	keyAMQPURL           = "AMQP_URL"
	keyAMQPExchange      = "AMQP_EXCHANGE"
	keyJaegerEndpoint    = "JAEGER_ENDPOINT"
	keyWSSendBuffer      = "WS_SEND_BUFFER"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyRunAddress, defaultRunAddress)
	v.SetDefault(keyJWTSecret, defaultJWTSecret)
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyShutdownTimeout, defaultShutdownTimeout)
	v.SetDefault(keyReconcileInterval, defaultReconcileInterval)
	v.SetDefault(keyReconcileBatch, defaultReconcileBatch)
	v.SetDefault(keyWorkerPoolSize, defaultWorkerPoolSize)
	v.SetDefault(keyAMQPExchange, defaultAMQPExchange)
	v.SetDefault(keyWSSendBuffer, defaultWSSendBuffer)

	fset := pflag.NewFlagSet("foodcourt", pflag.ContinueOnError)
	fset.SetOutput(io.Discard)

	fset.StringP("address", "a", defaultRunAddress, "HTTP server listen address")
	fset.StringP("database", "d", "", "PostgreSQL DSN")
	fset.String("jwt-secret", defaultJWTSecret, "Secret for signing auth tokens")
	fset.String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	fset.Duration("shutdown-timeout", defaultShutdownTimeout, "Graceful shutdown timeout")
	fset.Duration("reconcile-interval", defaultReconcileInterval, "Interval between ledger reconciliation runs")
	fset.Int("reconcile-batch", defaultReconcileBatch, "Merchant balances checked per reconciliation batch")
	fset.Int("worker-pool", defaultWorkerPoolSize, "Number of concurrent reconciliation workers")
	fset.String("amqp-url", "", "AMQP broker URL for the event mirror (disabled when empty)")
	fset.String("amqp-exchange", defaultAMQPExchange, "AMQP fanout exchange for mirrored events")
	fset.String("jaeger-endpoint", "", "Jaeger collector endpoint (tracing export disabled when empty)")
	fset.Int("ws-send-buffer", defaultWSSendBuffer, "Per-connection websocket send buffer")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	bindings := map[string]string{
		keyRunAddress:        "address",
		keyDatabaseURI:       "database",
		keyJWTSecret:         "jwt-secret",
		keyLogLevel:          "log-level",
		keyShutdownTimeout:   "shutdown-timeout",
		keyReconcileInterval: "reconcile-interval",
		keyReconcileBatch:    "reconcile-batch",
		keyWorkerPoolSize:    "worker-pool",
		keyAMQPURL:           "amqp-url",
		keyAMQPExchange:      "amqp-exchange",
		keyJaegerEndpoint:    "jaeger-endpoint",
		keyWSSendBuffer:      "ws-send-buffer",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fset.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg := &Config{
		RunAddress:        v.GetString(keyRunAddress),
		DatabaseURI:       v.GetString(keyDatabaseURI),
		JWTSecret:         v.GetString(keyJWTSecret),
		LogLevel:          v.GetString(keyLogLevel),
		ShutdownTimeout:   v.GetDuration(keyShutdownTimeout),
		ReconcileInterval: v.GetDuration(keyReconcileInterval),
		ReconcileBatch:    v.GetInt(keyReconcileBatch),
		WorkerPoolSize:    v.GetInt(keyWorkerPoolSize),
		AMQPURL:           v.GetString(keyAMQPURL),
		AMQPExchange:      v.GetString(keyAMQPExchange),
		JaegerEndpoint:    v.GetString(keyJaegerEndpoint),
		WSSendBuffer:      v.GetInt(keyWSSendBuffer),
	}

	if secretFile := v.GetString(keyJWTSecretFile); secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.WSSendBuffer <= 0 {
		cfg.WSSendBuffer = defaultWSSendBuffer
	}

	if cfg.AMQPExchange == "" {
		cfg.AMQPExchange = defaultAMQPExchange
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}
