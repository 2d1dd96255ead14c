// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, matching policy, scoring
// weights, rate limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-matching-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// RedisConfig defines the optional question-catalog cache settings.
type RedisConfig struct {
	Enabled  bool          // REDIS_ENABLED
	Addr     string        // REDIS_ADDR (host:port)
	Password string        // REDIS_PASSWORD
	DB       int           // REDIS_DB
	CacheTTL time.Duration // QUESTION_CACHE_TTL
}

// MatchingConfig groups the externally configurable matching policy: the
// join-code shape, the participant cap, and the bounded code-generation retry.
type MatchingConfig struct {
	CodeLength      int    // MATCHING_CODE_LENGTH
	CodeAlphabet    string // MATCHING_CODE_ALPHABET
	MaxParticipants int    // MAX_PARTICIPANTS
	MaxCodeAttempts int    // MAX_CODE_ATTEMPTS
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath        string // SQLite path
	SeedQuestions bool   // seed the default question catalog at startup

	// Matching policy
	Matching MatchingConfig

	// TemperatureWeights maps a question ordering key to its scoring
	// coefficient. Orders absent from the map are excluded from scoring.
	TemperatureWeights map[int]float64

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Caching
	Redis RedisConfig

	// Observability
	OTEL OTELConfig
}

// DefaultTemperatureWeights is the coefficient table applied when
// TEMPERATURE_WEIGHTS is unset: the four scored questions of the default
// catalog (sentiment, expectation, distance, comfort).
func DefaultTemperatureWeights() map[int]float64 {
	return map[int]float64{
		3: 3.0, // sentiment
		4: 2.0, // expectation
		5: 3.0, // distance
		6: 2.0, // comfort
	}
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	weights, err := parseWeights(getenv("TEMPERATURE_WEIGHTS", ""))
	if err != nil {
		return Config{}, err
	}
	if len(weights) == 0 {
		weights = DefaultTemperatureWeights()
	}

	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:        getenv("DB_PATH", "app.db"),
		SeedQuestions: getbool("SEED_QUESTIONS", true),

		// Matching policy
		Matching: MatchingConfig{
			CodeLength:      getint("MATCHING_CODE_LENGTH", 6),
			CodeAlphabet:    getenv("MATCHING_CODE_ALPHABET", "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"),
			MaxParticipants: getint("MAX_PARTICIPANTS", 2),
			MaxCodeAttempts: getint("MAX_CODE_ATTEMPTS", 10),
		},

		TemperatureWeights: weights,

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Caching
		Redis: RedisConfig{
			Enabled:  getbool("REDIS_ENABLED", false),
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
			CacheTTL: getdur("QUESTION_CACHE_TTL", 10*time.Minute),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-matching-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.Matching.CodeLength < 4 || cfg.Matching.CodeLength > 10 {
		return cfg, errors.New("MATCHING_CODE_LENGTH must be between 4 and 10")
	}
	if len(cfg.Matching.CodeAlphabet) < 10 {
		return cfg, errors.New("MATCHING_CODE_ALPHABET must contain at least 10 characters")
	}
	if cfg.Matching.MaxParticipants < 2 {
		return cfg, errors.New("MAX_PARTICIPANTS must be >= 2")
	}
	if cfg.Matching.MaxCodeAttempts < 1 {
		return cfg, errors.New("MAX_CODE_ATTEMPTS must be >= 1")
	}
	for order, w := range cfg.TemperatureWeights {
		if w <= 0 {
			return cfg, fmt.Errorf("TEMPERATURE_WEIGHTS coefficient for order %d must be > 0", order)
		}
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.Redis.CacheTTL <= 0 {
		return cfg, errors.New("QUESTION_CACHE_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// WeightOrders returns the configured ordering keys in ascending order,
// mainly for deterministic logging and tests.
func (c Config) WeightOrders() []int {
	out := make([]int, 0, len(c.TemperatureWeights))
	for k := range c.TemperatureWeights {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// parseWeights parses a "order:coefficient" CSV such as "3:3.0,4:2.0,5:3.0".
// An empty input yields an empty (non-nil decision deferred to caller) map.
func parseWeights(s string) (map[int]float64, error) {
	out := map[int]float64{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("TEMPERATURE_WEIGHTS entry %q must be order:coefficient", part)
		}
		order, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil {
			return nil, fmt.Errorf("TEMPERATURE_WEIGHTS order %q is not an integer", kv[0])
		}
		coef, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("TEMPERATURE_WEIGHTS coefficient %q is not a number", kv[1])
		}
		out[order] = coef
	}
	return out, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
