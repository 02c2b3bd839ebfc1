package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

type Config struct {
	HTTPPort string
	LogLevel string
	Location *time.Location

	DB DBConfig

	KafkaEnabled      bool
	KafkaBrokers      []string
	DeliveryTopic     string
	AuditTopic        string
	ConsumerGroupID   string
	OutboxPoll        time.Duration
	OutboxBatchSize   int
	OutboxMaxAttempts int

	RedisAddr     string
	RedisPassword string
	SnapshotTTL   time.Duration

	ExportBucket   string
	ExportEndpoint string
	ExportRegion   string
	ExportKey      string
	ExportSecret   string

	AdminUsername string
	AdminPassword string

	PlannerInterval time.Duration
	PlannerDays     int

	Fees schedule.FeePolicy
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", c.Host, c.Port, c.User, c.Password, c.Name)
}

// LoadEnv reads the first .env found next to the working directory or up to
// two levels above it, falling back to .example.env.
func LoadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("Error getting working directory: %v", err)
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}

	for _, envPath := range possiblePaths {
		examplePath := filepath.Join(filepath.Dir(envPath), ".example.env")
		if err := godotenv.Load(examplePath); err == nil {
			log.Printf("Loaded environment variables from %s", examplePath)
			return
		}
	}

	log.Println("No .env file found, using process environment")
}

// Load builds the configuration from the environment.
func Load() (*Config, error) {
	LoadEnv()

	loc, err := time.LoadLocation(getString("TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	cfg := &Config{
		HTTPPort: getString("HTTP_PORT", "9000"),
		LogLevel: getString("LOG_LEVEL", "info"),
		Location: loc,
		DB: DBConfig{
			Host:     getString("DB_HOST", "localhost"),
			Port:     getInt("DB_PORT", 5432),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
		},
		KafkaEnabled:      getBool("KAFKA_ENABLED", true),
		KafkaBrokers:      splitList(getString("KAFKA_BROKERS", "localhost:9092")),
		DeliveryTopic:     getString("KAFKA_DELIVERY_TOPIC", "milk_delivery_events"),
		AuditTopic:        getString("KAFKA_AUDIT_TOPIC", "audit_logs"),
		ConsumerGroupID:   getString("KAFKA_GROUP_ID", "delivery-events-consumer-group"),
		OutboxPoll:        getDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatchSize:   getInt("OUTBOX_BATCH_SIZE", 10),
		OutboxMaxAttempts: getInt("OUTBOX_MAX_ATTEMPTS", 5),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		SnapshotTTL:       getDuration("SNAPSHOT_TTL", 24*time.Hour),
		ExportBucket:      os.Getenv("EXPORT_BUCKET"),
		ExportEndpoint:    os.Getenv("EXPORT_ENDPOINT"),
		ExportRegion:      getString("EXPORT_REGION", "auto"),
		ExportKey:         os.Getenv("EXPORT_ACCESS_KEY"),
		ExportSecret:      os.Getenv("EXPORT_SECRET_KEY"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		PlannerInterval:   getDuration("PLANNER_INTERVAL", time.Hour),
		PlannerDays:       getInt("PLANNER_DAYS", 7),
		Fees:              schedule.DefaultFeePolicy(),
	}

	if v, ok := getDecimal("FREE_DELIVERY_THRESHOLD"); ok {
		cfg.Fees.FreeThreshold = v
	}
	if v, ok := getDecimal("STANDARD_DELIVERY_FEE"); ok {
		cfg.Fees.StandardFee = v
	}
	if v, ok := getDecimal("HANDLING_FEE"); ok {
		cfg.Fees.HandlingFee = v
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getDecimal(key string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(os.Getenv(key))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
