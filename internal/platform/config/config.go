package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration sourced from the environment.
type Server struct {
	Addr string

	// PostgresDSN is empty when the service runs on in-memory stores only.
	PostgresDSN string

	Redis RedisConfig

	Cache   CacheConfig
	Session SessionConfig
}

// RedisConfig tunes the optional Redis-backed lookup cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CacheConfig holds lookup-cache TTLs and the sweep cadence.
type CacheConfig struct {
	// ResolutionTTL bounds how long a resolved vehicle identity is served
	// from cache. Identity facts change slowly.
	ResolutionTTL time.Duration
	// IntelligenceTTL bounds combined eligibility+cost payloads. Compliance
	// and cost inputs change faster than identity facts, so it is shorter.
	IntelligenceTTL time.Duration
	SweepInterval   time.Duration
}

// SessionConfig holds journey-session expiry settings.
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	// ReconstructWindow bounds how many recently accessed sessions a
	// tokenless reconstruction may scan.
	ReconstructWindow int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("IMPORTINTEL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:        addr,
		PostgresDSN: os.Getenv("IMPORTINTEL_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("IMPORTINTEL_REDIS_URL"),
			PoolSize:     envInt("IMPORTINTEL_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("IMPORTINTEL_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("IMPORTINTEL_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("IMPORTINTEL_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("IMPORTINTEL_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Cache: CacheConfig{
			ResolutionTTL:   envDuration("IMPORTINTEL_CACHE_RESOLUTION_TTL", 24*time.Hour),
			IntelligenceTTL: envDuration("IMPORTINTEL_CACHE_INTELLIGENCE_TTL", 12*time.Hour),
			SweepInterval:   envDuration("IMPORTINTEL_CACHE_SWEEP_INTERVAL", time.Hour),
		},
		Session: SessionConfig{
			IdleTimeout:       envDuration("IMPORTINTEL_SESSION_IDLE_TIMEOUT", 24*time.Hour),
			SweepInterval:     envDuration("IMPORTINTEL_SESSION_SWEEP_INTERVAL", time.Hour),
			ReconstructWindow: envInt("IMPORTINTEL_SESSION_RECONSTRUCT_WINDOW", 50),
		},
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
