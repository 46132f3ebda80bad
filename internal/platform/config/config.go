package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean.
type Server struct {
	Addr           string
	JWTSigningKey  string
	TokenTTL       time.Duration
	PostgresURL    string
	RedisURL       string
	KafkaBrokers   []string
	AuditTopic     string
	BootstrapAdmin BootstrapAdmin
}

// BootstrapAdmin seeds the first inspector account so a fresh deployment is
// usable without manual store surgery.
type BootstrapAdmin struct {
	Cedula   string
	Password string
	Name     string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("SESACO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("SESACO_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 8 * time.Hour
	if raw := os.Getenv("SESACO_TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("SESACO_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("SESACO_AUDIT_TOPIC")
	if topic == "" {
		topic = "sesaco.audit"
	}

	admin := BootstrapAdmin{
		Cedula:   os.Getenv("SESACO_ADMIN_CEDULA"),
		Password: os.Getenv("SESACO_ADMIN_PASSWORD"),
		Name:     os.Getenv("SESACO_ADMIN_NAME"),
	}
	if admin.Cedula == "" {
		admin.Cedula = "1722212253"
	}
	if admin.Password == "" {
		admin.Password = admin.Cedula
	}
	if admin.Name == "" {
		admin.Name = "Inspector Principal"
	}

	return Server{
		Addr:           addr,
		JWTSigningKey:  jwtSigningKey,
		TokenTTL:       tokenTTL,
		PostgresURL:    os.Getenv("SESACO_POSTGRES_URL"),
		RedisURL:       os.Getenv("SESACO_REDIS_URL"),
		KafkaBrokers:   brokers,
		AuditTopic:     topic,
		BootstrapAdmin: admin,
	}
}
