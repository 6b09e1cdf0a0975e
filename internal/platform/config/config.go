package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr       string
	AdminToken string

	// Gate / store behavior.
	DomainClaimPolicy string

	// Audit pipeline.
	AuditBufferSize int
	KafkaBrokers    []string
	KafkaAuditTopic string

	// Optional collaborators; empty means not configured.
	Redis       RedisConfig
	DatabaseURL string
}

// RedisConfig holds connection settings for the optional Redis audit stream.
type RedisConfig struct {
	URL          string
	AuditStream  string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DUTYWIRE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "dutywire.audit.events"
	}

	stream := os.Getenv("REDIS_AUDIT_STREAM")
	if stream == "" {
		stream = "dutywire:audit"
	}

	return Server{
		Addr:              addr,
		AdminToken:        os.Getenv("DUTYWIRE_ADMIN_TOKEN"),
		DomainClaimPolicy: os.Getenv("DOMAIN_CLAIM_POLICY"),
		AuditBufferSize:   intFromEnv("AUDIT_BUFFER_SIZE", 1024),
		KafkaBrokers:      brokers,
		KafkaAuditTopic:   topic,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			AuditStream:  stream,
			PoolSize:     intFromEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intFromEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationFromEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationFromEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationFromEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func intFromEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
