package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformkafka "github.com/openretail/pos-api-server/internal/platform/kafka"
)

// Config carries the runtime settings for the API process. Every field
// has a working default so the server boots with no environment at all,
// backed by in-memory adapters.
type Config struct {
	Port string

	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
	// OrdersAPIBaseURL switches the sales repository to a remote HTTP
	// backend when no database is configured.
	OrdersAPIBaseURL string

	RedisAddr        string
	RedisPassword    string
	KafkaBrokers     []string
	KafkaOrdersTopic string

	OrderSequenceStart string
	Currency           string
	SessionTTL         time.Duration
	DraftTTL           time.Duration
}

// LoadConfig reads configuration from the environment, loading a local
// .env file first when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Port:               envDefault("PORT", "8080"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		MongoURI:           strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:      envDefault("MONGO_DATABASE", "pos"),
		OrdersAPIBaseURL:   strings.TrimSpace(os.Getenv("ORDERS_API_BASE_URL")),
		RedisAddr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:       platformkafka.BrokersFromEnv(),
		KafkaOrdersTopic:   platformkafka.TopicFromEnv(""),
		OrderSequenceStart: envDefault("ORDER_SEQUENCE_START", "100"),
		Currency:           envDefault("CURRENCY", "$"),
		SessionTTL:         envHours("SESSION_TTL_HOURS", 24*time.Hour),
		DraftTTL:           envDays("DRAFT_TTL_DAYS", 30*24*time.Hour),
	}
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envHours(key string, fallback time.Duration) time.Duration {
	return envDuration(key, time.Hour, fallback)
}

func envDays(key string, fallback time.Duration) time.Duration {
	return envDuration(key, 24*time.Hour, fallback)
}

func envDuration(key string, unit, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * unit
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
