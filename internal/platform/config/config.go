package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr               string
	PostgresDSN        string
	Redis              RedisConfig
	KafkaBrokers       []string
	KafkaTopic         string
	BadgeSweepInterval time.Duration
	RefdataTTL         time.Duration
	ShutdownTimeout    time.Duration
}

// RedisConfig carries connection tuning for the reference-data cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LANKACONNECT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var brokers []string
	if raw := os.Getenv("LANKACONNECT_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("LANKACONNECT_KAFKA_TOPIC")
	if topic == "" {
		topic = "lankaconnect.event-effects"
	}

	return Server{
		Addr:        addr,
		PostgresDSN: os.Getenv("LANKACONNECT_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("LANKACONNECT_REDIS_URL"),
			PoolSize:     envInt("LANKACONNECT_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("LANKACONNECT_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("LANKACONNECT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("LANKACONNECT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("LANKACONNECT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		KafkaBrokers:       brokers,
		KafkaTopic:         topic,
		BadgeSweepInterval: envDuration("LANKACONNECT_BADGE_SWEEP_INTERVAL", time.Hour),
		RefdataTTL:         envDuration("LANKACONNECT_REFDATA_TTL", 5*time.Minute),
		ShutdownTimeout:    envDuration("LANKACONNECT_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
