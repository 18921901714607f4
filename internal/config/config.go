package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	BackendHTTP   = "http"
	BackendMemory = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string

	BackendMode                  string
	BackendBaseURL               string
	BackendToken                 string
	BackendTimeout               time.Duration
	BackendMaxRetries            int
	BackendRateLimitRPS          float64
	BackendRateLimitBurst        int
	BackendCircuitEnabled        bool
	BackendCircuitFailureCount   int
	BackendCircuitOpenTimeout    time.Duration
	BackendCircuitHalfOpenMaxReq int

	CacheEnabled          bool
	CacheTTL              time.Duration
	MatchRefreshInterval  time.Duration
	SessionIdleTTL        time.Duration
	RosterPrefetchWorkers int

	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
	PprofEnabled           bool
	PprofAddr              string
}

// LoadDotEnv reads variables from the given files (".env" by default)
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "fantasy-hockey-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		BackendBaseURL:     strings.TrimSpace(getEnv("BACKEND_BASE_URL", "")),
		BackendToken:       strings.TrimSpace(getEnv("BACKEND_TOKEN", "")),
		UptraceDSN:         strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = positiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = positiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	cfg.BackendMode = strings.ToLower(strings.TrimSpace(getEnv("BACKEND_MODE", BackendHTTP)))
	switch cfg.BackendMode {
	case BackendHTTP:
		if cfg.BackendBaseURL == "" {
			return Config{}, fmt.Errorf("BACKEND_BASE_URL is required when BACKEND_MODE=%s", BackendHTTP)
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("invalid BACKEND_MODE %q: valid values are %s, %s", cfg.BackendMode, BackendHTTP, BackendMemory)
	}

	if cfg.BackendTimeout, err = positiveDuration("BACKEND_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.BackendMaxRetries, err = getEnvAsInt("BACKEND_MAX_RETRIES", 1); err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_MAX_RETRIES: %w", err)
	}
	if cfg.BackendMaxRetries < 0 {
		return Config{}, fmt.Errorf("BACKEND_MAX_RETRIES must be >= 0")
	}
	if cfg.BackendRateLimitRPS, err = strconv.ParseFloat(getEnv("BACKEND_RATE_LIMIT_RPS", "0"), 64); err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_RATE_LIMIT_RPS: %w", err)
	}
	if cfg.BackendRateLimitRPS < 0 {
		return Config{}, fmt.Errorf("BACKEND_RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.BackendRateLimitBurst, err = getEnvAsInt("BACKEND_RATE_LIMIT_BURST", 5); err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_RATE_LIMIT_BURST: %w", err)
	}

	if cfg.BackendCircuitEnabled, err = strconv.ParseBool(getEnv("BACKEND_CIRCUIT_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.BackendCircuitFailureCount, err = getEnvAsInt("BACKEND_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.BackendCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("BACKEND_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.BackendCircuitOpenTimeout, err = positiveDuration("BACKEND_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.BackendCircuitHalfOpenMaxReq, err = getEnvAsInt("BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.BackendCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = positiveDuration("CACHE_TTL", "5m"); err != nil {
		return Config{}, err
	}
	if cfg.MatchRefreshInterval, err = positiveDuration("MATCH_REFRESH_INTERVAL", "60s"); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTTL, err = positiveDuration("SESSION_IDLE_TTL", "2h"); err != nil {
		return Config{}, err
	}
	if cfg.RosterPrefetchWorkers, err = getEnvAsInt("ROSTER_PREFETCH_WORKERS", 3); err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_PREFETCH_WORKERS: %w", err)
	}
	if cfg.RosterPrefetchWorkers < 1 {
		return Config{}, fmt.Errorf("ROSTER_PREFETCH_WORKERS must be >= 1")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	if cfg.PyroscopeUploadRate, err = positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
