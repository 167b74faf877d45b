package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"amendments/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
// Variables already set in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"amendments"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"LOG_ENCODING" envDefault:"json"`

	KafkaBrokers        []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaAmendmentTopic string        `env:"KAFKA_AMENDMENT_TOPIC" envDefault:"amendments.events"`
	KafkaWriteTimeout   time.Duration `env:"KAFKA_WRITE_TIMEOUT" envDefault:"10s"`

	ExpirationSweepSchedule string `env:"EXPIRATION_SWEEP_SCHEDULE" envDefault:"@every 1m"`
	ExpirationSweepBatch    int    `env:"EXPIRATION_SWEEP_BATCH" envDefault:"100"`

	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// LoadConfig reads the existing envFiles into the process environment and
// parses the configuration from it.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var portErr, dbErr, batchErr, kafkaErr error
	if c.HTTPPort == "" {
		portErr = errs.NewValueIsRequiredError("HTTP_PORT")
	}
	if c.DBName == "" {
		dbErr = errs.NewValueIsRequiredError("DB_NAME")
	}
	if c.ExpirationSweepBatch <= 0 {
		batchErr = errs.NewValueIsOutOfRangeError("EXPIRATION_SWEEP_BATCH", c.ExpirationSweepBatch, 1, "unbounded")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaAmendmentTopic == "" {
		kafkaErr = errs.NewValueIsRequiredError("KAFKA_AMENDMENT_TOPIC")
	}
	return errors.Join(portErr, dbErr, batchErr, kafkaErr)
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// Address is the listen address of the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", c.HTTPPort)
}
