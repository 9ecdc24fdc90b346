package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Outbound fetching
	FetchTimeout time.Duration // timeout for website extraction requests (default: 10s)
	RateTimeout  time.Duration // timeout for rate API requests (default: 30s)

	// Upstream base URLs (overridable so tests and staging can point at stubs)
	BlockchainBaseURL string // ticker API (default: https://blockchain.info)
	ECBBaseURL        string // SDMX time-series API (default: https://data-api.ecb.europa.eu/service/data)

	RateCacheTTL time.Duration // TTL for cached exchange rates (default: 24h)

	// Inbound rate limiting
	RateLimitBurst  int  // bucket capacity per client IP
	RateLimitPerMin int  // refill rate per client IP per minute
	TrustProxy      bool // true => trust X-Forwarded-For headers

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisWarnThreshold  int           // warn after this many attempts
}

// Load builds the configuration from an optional YAML file plus environment
// variables. File values act as defaults; environment variables win.
// The file path comes from SITEINFO_CONFIG_FILE and may be empty.
func Load() (*Config, error) {
	file, err := loadFile(os.Getenv("SITEINFO_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SITEINFO_LISTEN_PORT", file.str(file.ListenPort, ":8080")),
		ShutdownTimeout: mustDuration("SITEINFO_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("SITEINFO_REQUEST_TIMEOUT", 45*time.Second),

		// Logging
		LogLevel:  getenv("SITEINFO_LOG_LEVEL", file.str(file.LogLevel, "info")),
		PrettyLog: mustBool("SITEINFO_PRETTY_LOG", false),

		// Outbound fetching
		FetchTimeout: mustDuration("SITEINFO_FETCH_TIMEOUT", 10*time.Second),
		RateTimeout:  mustDuration("SITEINFO_RATE_TIMEOUT", 30*time.Second),

		BlockchainBaseURL: getenv("SITEINFO_BLOCKCHAIN_URL",
			file.str(file.Upstreams.BlockchainURL, "https://blockchain.info")),
		ECBBaseURL: getenv("SITEINFO_ECB_URL",
			file.str(file.Upstreams.ECBURL, "https://data-api.ecb.europa.eu/service/data")),

		RateCacheTTL: mustDuration("SITEINFO_RATE_CACHE_TTL", 24*time.Hour),

		// Inbound rate limiting
		RateLimitBurst:  getenvInt("SITEINFO_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("SITEINFO_RATE_LIMIT_PER_MIN", 60),
		TrustProxy:      mustBool("SITEINFO_TRUST_PROXY", false),

		// Redis settings
		RedisAddr:           getenv("SITEINFO_REDIS_ADDR", file.str(file.Redis.Addr, "localhost:6379")),
		RedisUser:           getenv("SITEINFO_REDIS_USERNAME", file.Redis.User),
		RedisPassword:       getenv("SITEINFO_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SITEINFO_REDIS_DB", file.Redis.DB),
		RedisDialTimeout:    mustDuration("SITEINFO_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("SITEINFO_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("SITEINFO_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("SITEINFO_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("SITEINFO_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("SITEINFO_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("SITEINFO_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("SITEINFO_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("SITEINFO_REDIS_WARN_THRESHOLD", 3),
	}

	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("SITEINFO_FETCH_TIMEOUT must be > 0, got %v", cfg.FetchTimeout)
	}
	if cfg.RateTimeout <= 0 {
		return nil, fmt.Errorf("SITEINFO_RATE_TIMEOUT must be > 0, got %v", cfg.RateTimeout)
	}
	if cfg.RateCacheTTL <= 0 {
		return nil, fmt.Errorf("SITEINFO_RATE_CACHE_TTL must be > 0, got %v", cfg.RateCacheTTL)
	}

	return cfg, nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
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
