package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the upstream client timeout
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, durations and ints
// for timeouts and TTLs.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	UpstreamBaseURL string        // base URL of the parking backend API
	UpstreamTimeout time.Duration // per-request timeout for upstream calls
	JWTSecret       string        // secret used to sign gateway session JWTs
	SessionTTLMin   int           // session (and token) idle time-to-live in minutes
	SweepSpec       string        // cron spec for the session sweep job
	DBUser          string        // database username (history mirror, optional)
	DBPass          string        // database password (optional)
	DBHost          string        // database host address (empty disables the mirror)
	DBPort          string        // database port number
	DBName          string        // database name
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The DB_* variables
// are optional as a group: leaving DB_HOST unset runs the gateway without
// the confirmed-booking mirror.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),           // environment (dev/test/prod)
		Port:            must("APP_PORT"),          // port to bind the HTTP server
		UpstreamBaseURL: must("UPSTREAM_BASE_URL"), // parking backend base URL
		UpstreamTimeout: mustDur("UPSTREAM_TIMEOUT"),
		JWTSecret:       must("JWT_SECRET"),     // secret used for signing session JWTs
		SessionTTLMin:   mustInt("SESSION_TTL_MIN"),
		SweepSpec:       getenv("SESSION_SWEEP_SPEC", "@every 5m"),
		DBHost:          os.Getenv("DB_HOST"),
	}
	if cfg.DBHost != "" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// MirrorEnabled reports whether the confirmed-booking MySQL mirror is
// configured.
func (c Config) MirrorEnabled() bool { return c.DBHost != "" }

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustDur is like must() but parses the value as a Go duration string.
func mustDur(key string) time.Duration {
	s := must(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
