package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port                  string
	DBUrl                 string
	JWTSecret             string
	AppEnv                string
	EnableDocs            bool
	RequestTimeout        time.Duration
	TokenTTL              time.Duration
	CORSOrigins           string
	LogLevel              string
	LogFile               string
	LogToStdout           bool
	LogJSON               bool
	SentryDSN             string
	RedisAddr             string
	RedisPassword         string
	LoginRateLimitPerMin  int
	DBTracing             bool
	TracingExporter       string
	NutritionCacheSizeMB  int
	NutritionImportSource string
	SupabaseURL           string
	SupabaseBucket        string
	SupabaseServiceKey    string
}

// fileConfig mirrors the optional TOML file. Zero values leave the defaults untouched.
type fileConfig struct {
	Port                 string `toml:"port"`
	RequestTimeout       string `toml:"request_timeout"`
	TokenTTL             string `toml:"token_ttl"`
	CORSOrigins          string `toml:"cors_origins"`
	LogLevel             string `toml:"log_level"`
	LogFile              string `toml:"log_file"`
	LogJSON              bool   `toml:"log_json"`
	RedisAddr            string `toml:"redis_addr"`
	LoginRateLimitPerMin int    `toml:"login_rate_limit_per_min"`
	DBTracing            bool   `toml:"db_tracing"`
	TracingExporter      string `toml:"tracing_exporter"`
	NutritionCacheSizeMB int    `toml:"nutrition_cache_mb"`
	EnableDocs           bool   `toml:"enable_docs"`
}

type tomlFile struct {
	Development fileConfig `toml:"development"`
	Staging     fileConfig `toml:"staging"`
	Production  fileConfig `toml:"production"`
	Test        fileConfig `toml:"test"`
}

func (t tomlFile) get(env string) fileConfig {
	switch env {
	case "development":
		return t.Development
	case "staging":
		return t.Staging
	case "test":
		return t.Test
	default:
		return t.Production
	}
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugln("no .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Port:                 "8080",
		JWTSecret:            jwtSecret,
		AppEnv:               normalizeEnv(getEnv("APP_ENV", "production")),
		RequestTimeout:       10 * time.Second,
		TokenTTL:             72 * time.Hour,
		CORSOrigins:          "*",
		LogLevel:             "info",
		LogToStdout:          true,
		LoginRateLimitPerMin: 10,
		NutritionCacheSizeMB: 8,
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBUrl = getEnv("DB_URL", "")
	cfg.EnableDocs = getEnvBool("ENABLE_API_DOCS", cfg.EnableDocs)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogToStdout = getEnvBool("LOG_TO_STDOUT", cfg.LogToStdout)
	cfg.LogJSON = getEnvBool("LOG_JSON", cfg.LogJSON)
	cfg.SentryDSN = getEnv("SENTRY_DSN", "")
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.LoginRateLimitPerMin = getEnvInt("LOGIN_RATE_LIMIT_PER_MIN", cfg.LoginRateLimitPerMin)
	cfg.DBTracing = getEnvBool("DB_TRACING", cfg.DBTracing)
	cfg.TracingExporter = strings.ToLower(getEnv("TRACING_EXPORTER", cfg.TracingExporter))
	cfg.NutritionCacheSizeMB = getEnvInt("NUTRITION_CACHE_MB", cfg.NutritionCacheSizeMB)
	cfg.NutritionImportSource = getEnv("NUTRITION_IMPORT_FILE", "data/nutrition.json")
	cfg.SupabaseURL = getEnv("SUPABASE_URL", "")
	cfg.SupabaseBucket = getEnv("SUPABASE_BUCKET", "profile-pictures")
	cfg.SupabaseServiceKey = getEnv("SUPABASE_SERVICE_KEY", "")

	var err error
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getEnvDuration("TOKEN_TTL", cfg.TokenTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var file tomlFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	section := file.get(c.AppEnv)
	if section.Port != "" {
		c.Port = section.Port
	}
	if section.CORSOrigins != "" {
		c.CORSOrigins = section.CORSOrigins
	}
	if section.LogLevel != "" {
		c.LogLevel = section.LogLevel
	}
	if section.LogFile != "" {
		c.LogFile = section.LogFile
	}
	if section.RedisAddr != "" {
		c.RedisAddr = section.RedisAddr
	}
	if section.LoginRateLimitPerMin > 0 {
		c.LoginRateLimitPerMin = section.LoginRateLimitPerMin
	}
	if section.TracingExporter != "" {
		c.TracingExporter = section.TracingExporter
	}
	if section.NutritionCacheSizeMB > 0 {
		c.NutritionCacheSizeMB = section.NutritionCacheSizeMB
	}
	c.LogJSON = c.LogJSON || section.LogJSON
	c.DBTracing = c.DBTracing || section.DBTracing
	c.EnableDocs = c.EnableDocs || section.EnableDocs

	if section.RequestTimeout != "" {
		d, err := time.ParseDuration(section.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if section.TokenTTL != "" {
		d, err := time.ParseDuration(section.TokenTTL)
		if err != nil {
			return fmt.Errorf("token_ttl: %w", err)
		}
		c.TokenTTL = d
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Warnf("ignoring invalid %s=%q", key, value)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func (c *Config) RedisEnabled() bool {
	return c != nil && c.RedisAddr != ""
}

// StorageEnabled reports whether profile picture uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c != nil && c.SupabaseURL != "" && c.SupabaseServiceKey != "" && c.SupabaseBucket != ""
}
