package config

import (
	"os"
	"strings"
)

// Server captures process-level configuration. Empty DatabaseURL, RedisURL,
// or KafkaBrokers select the in-memory / disabled fallbacks so a bare
// `go run ./cmd/server` works for local development.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string
	JWTIssuer     string
	Bootstrap     bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TASKDECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	auditTopic := os.Getenv("TASKDECK_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "taskdeck.audit"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  brokers,
		AuditTopic:    auditTopic,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     "taskdeck",
		Bootstrap:     os.Getenv("TASKDECK_BOOTSTRAP") == "true",
	}
}
