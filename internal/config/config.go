package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// WatchedRoute is one origin/destination pair the tracker refreshes.
type WatchedRoute struct {
	From string
	To   string
}

// Config holds all configuration for the application
type Config struct {
	// App
	AppEnv string
	Port   string

	// Snapshot storage
	DataDir string

	// Per-IP rate limiting
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Tracker
	WatchRoutes     []WatchedRoute
	RefreshInterval time.Duration
	WatchInterval   time.Duration
	PriceThreshold  float64
	ThrottleWindow  time.Duration
	TrackerEnabled  bool

	// Tavily crawler
	TavilyAPIKey  string
	TavilyBaseURL string

	// Notifications
	DiscordWebhookURL string

	// Cache backend: "memory" or "redis"
	CacheBackend  string
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Alert history database. Postgres when PG_HOST is set, sqlite otherwise.
	PGHost         string
	PGPort         string
	PGUser         string
	PGPassword     string
	PGDatabase     string
	SQLitePath     string
	PriceHistoryOn bool
}

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		Port:    getEnv("PORT", "8080"),
		DataDir: getEnv("DATA_DIR", "data"),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),

		WatchRoutes:     parseWatchRoutes(getEnv("WATCH_ROUTES", "")),
		RefreshInterval: time.Duration(getEnvAsInt("REFRESH_INTERVAL_SECONDS", 300)) * time.Second,
		WatchInterval:   time.Duration(getEnvAsInt("WATCH_INTERVAL_SECONDS", 300)) * time.Second,
		PriceThreshold:  getEnvAsFloat("PRICE_ALERT_THRESHOLD", 500),
		ThrottleWindow:  time.Duration(getEnvAsInt("ALERT_THROTTLE_MINUTES", 30)) * time.Minute,
		TrackerEnabled:  getEnv("TRACKER_ENABLED", "true") == "true",

		TavilyAPIKey:  getEnv("TAVILY_API_KEY", ""),
		TavilyBaseURL: getEnv("TAVILY_BASE_URL", "https://api.tavily.com"),

		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),

		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		PGHost:     getEnv("PG_HOST", ""),
		PGPort:     getEnv("PG_PORT", "5432"),
		PGUser:     getEnv("PG_USER", "farewatch"),
		PGPassword: getEnv("PG_PASSWORD", ""),
		PGDatabase: getEnv("PG_DB", "farewatch"),
		SQLitePath: getEnv("SQLITE_PATH", "farewatch.db"),
	}

	cfg.PriceHistoryOn = cfg.PGHost != ""
	return cfg
}

// PostgresDSN builds the Postgres connection string. Empty when PG_HOST is unset.
func (c *Config) PostgresDSN() string {
	if c.PGHost == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// parseWatchRoutes parses "Vancouver:Toronto,Toronto:Montreal" into pairs.
// Malformed entries are dropped.
func parseWatchRoutes(raw string) []WatchedRoute {
	if raw == "" {
		return nil
	}
	var routes []WatchedRoute
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		routes = append(routes, WatchedRoute{From: parts[0], To: parts[1]})
	}
	return routes
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}
