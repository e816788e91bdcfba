package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Addr         string
	DBPath       string
	SeedFiles    []string
	MockMode     bool
	MockVulns    int
	Debug        bool
	MaxWSClients int
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	seedStr := getEnv("VULNSCOPE_SEED", "")
	cfg.Addr = getEnv("VULNSCOPE_ADDR", ":8080")
	cfg.DBPath = getEnv("VULNSCOPE_DB", getDefaultDBPath())
	cfg.MockMode = getEnvBool("VULNSCOPE_MOCK", false)
	cfg.MockVulns = getEnvInt("VULNSCOPE_MOCK_VULNS", 250)
	cfg.MaxWSClients = getEnvInt("VULNSCOPE_WS_CLIENTS", 256)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&seedStr, "seed", seedStr, "Vulnerability seed file(s) to import on startup (comma separated)")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run in mock mode (synthetic vulnerability data)")
	flag.IntVar(&cfg.MockVulns, "mock-vulns", cfg.MockVulns, "Number of synthetic vulnerability records in mock mode")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.IntVar(&cfg.MaxWSClients, "ws-clients", cfg.MaxWSClients, "Maximum concurrent WebSocket clients")

	flag.Parse()

	cfg.SeedFiles = parseSeedFiles(seedStr)

	return cfg
}

func parseSeedFiles(s string) []string {
	var files []string
	if s == "" {
		return files
	}
	for _, p := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			files = append(files, trimmed)
		}
	}
	return files
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "vulnscope.db"
	}

	appDir := filepath.Join(home, ".vulnscope")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.Printf("Warning: Could not create .vulnscope directory, using current dir: %v", err)
		return "vulnscope.db"
	}

	return filepath.Join(appDir, "vulnscope.db")
}
