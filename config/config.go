package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Engine tunables. These are design constants, not deployment knobs.
const (
	// DefaultPingTTL is used when a post carries no (or a malformed) duration.
	DefaultPingTTL = 5 * time.Minute

	// SweepInterval is how often the expiry sweeper runs.
	SweepInterval = 10 * time.Second

	// TokenHeader carries the opaque session token on every protected call.
	TokenHeader = "X-Session-Token"
)

// Config holds everything read from the environment.
type Config struct {
	ListenAddr    string
	UserPassword  string
	AdminPassword string
	BlacklistFile string
	DBConnection  string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	return &Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		UserPassword:  getenv("USER_PASSWORD", "hunter2"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		BlacklistFile: getenv("BLACKLIST_FILE", "blacklist.json"),
		DBConnection:  os.Getenv("DB_CONNECTION"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
