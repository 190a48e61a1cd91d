package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	JWT       JWTConfig
	Mock      MockConfig
	Generator GeneratorConfig
	Redis     RedisConfig
	Session   SessionConfig
	Database  DatabaseConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	Level  string
	Format string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type MockConfig struct {
	// DelayScale multiplies every simulated backend latency. Zero disables the delay.
	DelayScale float64
}

type GeneratorConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string

	SearchCacheTTL time.Duration
}

type SessionConfig struct {
	TTL          time.Duration
	// ReapInterval is how often state held for expired sessions is dropped.
	ReapInterval time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32

	// Seed loads demo rows after migrations.
	Seed bool
}

// Enabled reports whether a postgres host is configured.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DBHost) != ""
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

const (
	defaultAccessSecret    = "learnpath-access-secret"
	defaultRefreshSecret   = "learnpath-refresh-secret"
	defaultGeneratorURL    = "http://127.0.0.1:5000"
	defaultAccessExpiresIn = 15 * time.Minute
	defaultRefreshExpires  = 7 * 24 * time.Hour
	defaultGeneratorTO     = 5 * time.Second
	defaultSessionTTL      = 24 * time.Hour
	defaultSearchCacheTTL  = 5 * time.Minute
	defaultReapInterval    = time.Minute
)

func Load() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}
	optInt32 := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(optDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(optDefault("LOG_FORMAT", "text")),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     optDefault("JWT_ACCESS_SECRET", defaultAccessSecret),
		RefreshSecret:    optDefault("JWT_REFRESH_SECRET", defaultRefreshSecret),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", defaultAccessExpiresIn),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", defaultRefreshExpires),
	}

	scale := 1.0
	if raw := opt("MOCK_DELAY_SCALE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			invalid = append(invalid, "MOCK_DELAY_SCALE")
		} else {
			scale = v
		}
	}
	cfg.Mock = MockConfig{DelayScale: scale}

	cfg.Generator = GeneratorConfig{
		BaseURL: optDefault("GENERATOR_BASE_URL", defaultGeneratorURL),
		Timeout: optDuration("GENERATOR_TIMEOUT", defaultGeneratorTO),
	}
	if !optBool("GENERATOR_ENABLED", true) {
		cfg.Generator.BaseURL = ""
	}

	cfg.Redis = RedisConfig{
		Enabled:  optBool("REDIS_ENABLED", false),
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),

		SearchCacheTTL: optDuration("REDIS_SEARCH_CACHE_TTL", defaultSearchCacheTTL),
	}

	cfg.Session = SessionConfig{
		TTL:          optDuration("SESSION_TTL", defaultSessionTTL),
		ReapInterval: optDuration("SESSION_REAP_INTERVAL", defaultReapInterval),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         optDefault("DB_PORT", "5432"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   optInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:   optInt32("DB_POOL_MIN_CONNS"),
		Seed:           optBool("DB_SEED", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
