package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by LINKVAULT_STORAGE.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StoragePebble = "pebble"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Storage   string // "memory" | "redis" | "pebble"
	KeyPrefix string // prefix for the three slot keys (ex: "linkvault:")
	PebbleDir string // directory of the pebble database

	Location *time.Location // used to format chat clocks and absolute dates

	// Seed import (optional, empty SeedFile = disabled)
	SeedFile     string        // path to a homepage-style bookmarks.yaml
	SeedEmail    string        // user receiving the seeded bookmarks
	SeedInterval time.Duration // interval to re-import the seed file

	// Backups (optional, empty BackupDir = disabled)
	BackupDir       string
	BackupInterval  time.Duration
	BackupRetention time.Duration // backups older than this are deleted

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Rate limiting of mutating routes
	RateLimitRPS   float64
	RateLimitBurst int

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to admin endpoints (metrics, reload, full export)
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

// Load reads the configuration from the environment, after loading a .env file if present.
func Load() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKVAULT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKVAULT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKVAULT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKVAULT_PRETTY_LOG", true),

		// Storage
		Storage:   strings.ToLower(getenv("LINKVAULT_STORAGE", StorageMemory)),
		KeyPrefix: getenv("LINKVAULT_KEY_PREFIX", "linkvault:"),
		PebbleDir: getenv("LINKVAULT_PEBBLE_DIR", "./data"),

		Location: mustLocation("LINKVAULT_TIMEZONE", time.Local),

		// Seed
		SeedFile:     getenv("LINKVAULT_SEED_FILE", ""),
		SeedInterval: mustDuration("LINKVAULT_SEED_INTERVAL", 24*time.Hour),

		// Backups
		BackupDir:       getenv("LINKVAULT_BACKUP_DIR", ""),
		BackupInterval:  mustDuration("LINKVAULT_BACKUP_INTERVAL", 6*time.Hour),
		BackupRetention: mustDuration("LINKVAULT_BACKUP_RETENTION", 30*24*time.Hour),

		// Redis settings (only read when the redis backend is selected)
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		RateLimitRPS:   getenvFloat("LINKVAULT_RATE_LIMIT_RPS", 5),
		RateLimitBurst: getenvInt("LINKVAULT_RATE_LIMIT_BURST", 20),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LINKVAULT_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("LINKVAULT_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LINKVAULT_TRUST_PROXY", false),
	}

	switch cfg.Storage {
	case StorageMemory, StoragePebble:
	case StorageRedis:
		cfg.RedisAddr = requireEnv("LINKVAULT_REDIS_ADDR")
		cfg.RedisUser = getenv("LINKVAULT_REDIS_USERNAME", "")
		cfg.RedisPassword = getenv("LINKVAULT_REDIS_PASSWORD", "")
		cfg.RedisDB = getenvInt("LINKVAULT_REDIS_DB", 0)
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown LINKVAULT_STORAGE %q (want memory, redis or pebble)", cfg.Storage))
	}

	if cfg.SeedFile != "" {
		cfg.SeedEmail = requireEnv("LINKVAULT_SEED_EMAIL")
		requirePositive("LINKVAULT_SEED_INTERVAL", cfg.SeedInterval)
	}
	if cfg.BackupDir != "" {
		requirePositive("LINKVAULT_BACKUP_INTERVAL", cfg.BackupInterval)
		requirePositive("LINKVAULT_BACKUP_RETENTION", cfg.BackupRetention)
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// requirePositive panics on intervals a ticker cannot run with.
func requirePositive(key string, d time.Duration) {
	if d <= 0 {
		panic(fmt.Sprintf("❌ FATAL: %s must be > 0, got %v", key, d))
	}
}

func mustLocation(key string, def *time.Location) *time.Location {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid time zone for %s: %s", key, v))
	}
	return loc
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
