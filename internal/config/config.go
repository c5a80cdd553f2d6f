package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. DatabaseURL selects the storage backend: a
// postgres:// (or postgresql://) URL opens a PostgreSQL pool, anything else
// is treated as a SQLite file path.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DatabaseURL  string // postgres URL or sqlite file path
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	CORSOrigin   string // allowed CORS origin ("*" by default)
	AMQPURL      string // optional RabbitMQ URL for contract events
}

// Load reads configuration values from environment variables and returns a
// Config. JWT_SECRET is required and enforced by must(); everything else
// falls back to a development default.
func Load() Config {
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "5001"),
		DatabaseURL:  envStr("DATABASE_URL", "festival.db"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 24*60),
		BcryptCost:   envInt("BCRYPT_COST", 10),
		CORSOrigin:   envStr("CORS_ORIGIN", "*"),
		AMQPURL:      os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

