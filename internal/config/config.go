// Package config reads server configuration from the environment.
// main calls godotenv.Load before FromEnv so a local .env file is honored.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the server.
type Config struct {
	Port         string
	LogLevel     string
	LogPretty    bool
	ClientOrigin string
	JWTSecret    string
	SessionTTL   time.Duration
	SweepEvery   time.Duration // idle game sweep interval
	DBPath       string
	ShuffleMode  string // "uniform" | "comparator"
	WordBank     []string
	WordBankFile string
	Production   bool
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    os.Getenv("LOG_PRETTY") == "true",
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		SessionTTL:   time.Duration(getInt("SESSION_DAYS", 1)) * 24 * time.Hour,
		SweepEvery:   time.Duration(getInt("SWEEP_MINUTES", 10)) * time.Minute,
		DBPath:       getEnv("DB_PATH", "./data/wordmatch.db"),
		ShuffleMode:  strings.ToLower(getEnv("SHUFFLE_MODE", "uniform")),
		WordBank:     splitList(os.Getenv("WORD_BANK")),
		WordBankFile: os.Getenv("WORD_BANK_FILE"),
		Production:   os.Getenv("NODE_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// splitList splits a comma separated list, dropping blank items.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
