package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// DefaultJWTSecret is the fallback signing secret used when SECRET_KEY
// is not set. It exists so the server can be started out of the box in
// development, and it is flagged loudly at startup because it is not
// safe for production.
const DefaultJWTSecret = "default_secret_key"

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The types reflect how the
// values are used in the application: strings for identifiers and
// secrets, ints for durations and costs.
type Config struct {
	Env              string   // application environment (e.g. "dev", "prod")
	Port             string   // HTTP port to listen on
	DBUser           string   // database username
	DBPass           string   // database password (optional)
	DBHost           string   // database host address
	DBPort           string   // database port number
	DBName           string   // database name
	JWTSecret        string   // secret used to sign bearer tokens
	InsecureSecret   bool     // true when the insecure default secret is in use
	TokenTTLMin      int      // bearer token time-to-live in minutes
	BcryptCost       int      // bcrypt cost for password hashing
	AllowedOrigins   []string // CORS origin allow-list
	StrictValidation bool     // reject unknown transaction types / non-positive amounts
	QueueEnabled     bool     // publish and consume account events over AMQP
}

// Load reads configuration values from environment variables and
// returns a Config. Database variables are required and enforced by
// must(); everything else falls back to the defaults of the original
// deployment (port 5000, 1-hour tokens, localhost CORS origins).
func Load() Config {
	secret := getenv("SECRET_KEY", DefaultJWTSecret)
	cfg := Config{
		Env:              getenv("APP_ENV", "dev"),
		Port:             getenv("APP_PORT", "5000"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        secret,
		InsecureSecret:   secret == DefaultJWTSecret,
		TokenTTLMin:      getenvInt("TOKEN_TTL_MIN", 60),
		BcryptCost:       getenvInt("BCRYPT_COST", 10),
		AllowedOrigins:   splitOrigins(getenv("ALLOWED_ORIGINS", "http://127.0.0.1:3000,http://localhost:3000")),
		StrictValidation: getenvBool("STRICT_VALIDATION", false),
		QueueEnabled:     getenvBool("QUEUE_ENABLED", false),
	}
	if cfg.InsecureSecret {
		log.Printf("WARNING: SECRET_KEY not set, using the built-in default; do not run this in production")
	}
	return cfg
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

// getenv returns the value of an environment variable or a default
// when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenvBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	return strings.EqualFold(s, "true") || s == "1"
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
