// internal/config/config.go
//
// Process configuration read from the environment.
// Responsibilities:
//   - Provide defaults for every setting so a bare checkout runs locally.
//   - Parse numeric settings, falling back to the default on bad input.
//
// Notes:
//   - main calls godotenv.Load() first, so a .env file feeds the same lookups.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds every environment-driven setting.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string // empty keeps the leaderboard in memory
	JWTSecret    string
	SessionTTL   time.Duration
	ClientOrigin string
	WordsFile    string // empty uses the embedded bank
	DailySalt    string
	TimeLimit    int // seconds per level
}

// Load reads the environment.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       lookupEnv("DB_PATH", "./data/wordsearch.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		SessionTTL:   time.Duration(getInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		TimeLimit:    getInt("LEVEL_TIME_LIMIT", 300),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// lookupEnv is like getEnv but honours an explicitly empty value.
func lookupEnv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid number, using default")
		return def
	}
	return n
}
