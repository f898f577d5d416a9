package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/adapters/out/redisgeo"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Empty selects the in-process location index.
	RedisAddr     string
	RedisGeoKey   string
	RedisPassword string

	// Empty selects the log notifier.
	KafkaBrokers     []string
	KafkaEventsTopic string

	JWTSecret string

	CommissionRate      float64
	PickupCodeTTL       time.Duration
	BidTTL              time.Duration
	BidSweepSchedule    string
	BidSweepBatchSize   int
	NearbyDefaultRadius float64
	NearbyMaxRadius     float64

	LogLevel slog.Level
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after merging an optional .env file from
// the working directory. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) (Config, error) {
	r := reader{getenv: getenv}

	cfg := Config{
		HTTPPort: r.str("HTTP_PORT", "8080"),

		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "marketplace"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		RedisAddr:     r.str("REDIS_ADDR", ""),
		RedisGeoKey:   r.str("REDIS_GEO_KEY", redisgeo.DefaultKey),
		RedisPassword: r.str("REDIS_PASSWORD", ""),

		KafkaBrokers:     r.list("KAFKA_BROKERS"),
		KafkaEventsTopic: r.str("KAFKA_EVENTS_TOPIC", "marketplace.events"),

		JWTSecret: r.str("JWT_SECRET", ""),

		CommissionRate:      r.float("COMMISSION_RATE", services.DefaultCommissionRate),
		PickupCodeTTL:       r.duration("PICKUP_CODE_TTL", services.DefaultPickupCodeTTL),
		BidTTL:              r.duration("BID_TTL", 24*time.Hour),
		BidSweepSchedule:    r.str("BID_SWEEP_SCHEDULE", jobs.DefaultSweepSchedule),
		BidSweepBatchSize:   r.integer("BID_SWEEP_BATCH_SIZE", 0),
		NearbyDefaultRadius: r.float("NEARBY_DEFAULT_RADIUS", services.DefaultSearchRadiusMeters),
		NearbyMaxRadius:     r.float("NEARBY_MAX_RADIUS", services.MaxSearchRadiusMeters),

		LogLevel: r.level("LOG_LEVEL", slog.LevelInfo),
	}

	if err := errors.Join(append(r.errs, cfg.validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error

	if c.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("COMMISSION_RATE", c.CommissionRate, 0, "1 (exclusive)"))
	}
	if c.PickupCodeTTL <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("PICKUP_CODE_TTL", c.PickupCodeTTL, "1s", "unbounded"))
	}
	if c.BidTTL <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("BID_TTL", c.BidTTL, "1s", "unbounded"))
	}
	if c.NearbyDefaultRadius <= 0 || c.NearbyDefaultRadius > c.NearbyMaxRadius {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"NEARBY_DEFAULT_RADIUS", c.NearbyDefaultRadius, "0 (exclusive)", c.NearbyMaxRadius))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaEventsTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_EVENTS_TOPIC"))
	}

	return errors.Join(problems...)
}

// reader collects parse failures so every bad key is reported at once.
type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *reader) list(key string) []string {
	var out []string
	for item := range strings.SplitSeq(r.getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (r *reader) float(key string, fallback float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (r *reader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (r *reader) level(key string, fallback slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	var v slog.Level
	if err := v.UnmarshalText([]byte(raw)); err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}
