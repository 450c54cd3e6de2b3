package kafka

import (
	"os"
	"strings"
)

// BrokersFromEnv parses KAFKA_BROKERS as a comma-separated broker list.
// An empty result means event publishing is disabled.
func BrokersFromEnv() []string {
	raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// TopicFromEnv reads KAFKA_TOPIC_ORDERS, falling back when unset.
func TopicFromEnv(fallback string) string {
	if topic := strings.TrimSpace(os.Getenv("KAFKA_TOPIC_ORDERS")); topic != "" {
		return topic
	}
	return fallback
}
