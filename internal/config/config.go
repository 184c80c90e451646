package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Database settings are
// optional: when DBHost is empty the service runs on its in-memory
// store, which is also how the original deployment operated.
type Config struct {
	Env                     string // application environment (e.g. "dev", "prod")
	Port                    string // HTTP port to listen on
	DBUser                  string // database username (optional)
	DBPass                  string // database password (optional)
	DBHost                  string // database host; empty selects the in-memory store
	DBPort                  string // database port number
	DBName                  string // database name
	RabbitURL               string // AMQP broker URL; empty disables event publishing
	ReservationThresholdMin int    // minutes an unpaid hold stays active
}

// Load reads configuration from environment variables, applying
// defaults where values are absent.  Nothing here is fatal: the
// service can always start against the in-memory store.
func Load() Config {
	return Config{
		Env:                     getenv("APP_ENV", "dev"),
		Port:                    getenv("APP_PORT", "8080"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPass:                  os.Getenv("DB_PASS"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  getenv("DB_PORT", "3306"),
		DBName:                  getenv("DB_NAME", "cinema"),
		RabbitURL:               os.Getenv("RABBITMQ_URL"),
		ReservationThresholdMin: ParseThresholdMinutes(os.Getenv("RESERVATION_THRESHOLD_MIN")),
	}
}

// ParseThresholdMinutes converts the configured reservation threshold
// into minutes.  Any value that does not parse as an integer of at
// least 1 falls back to the default of 10.
func ParseThresholdMinutes(value string) int {
	if n, err := strconv.Atoi(value); err == nil && n >= 1 {
		return n
	}
	if value != "" {
		log.Printf("config: invalid reservation threshold %q, using default of 10", value)
	}
	return 10
}

// getenv retrieves an environment variable, returning def when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
