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
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Matching MatchingConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	PoolMaxConns   int32
	ConnectTimeout time.Duration
	MigrationsDir  string
	RunSeeders     bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// MatchingConfig drives the skill compatibility oracle and the discovery engine.
// SemanticRequested only states intent; semantic mode is active when an API key is
// also present and the provider could be constructed.
type MatchingConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	SemanticRequested bool
	CallTimeout       time.Duration
	MinInterval       time.Duration
	CacheSize         int
	Workers           int
}

type LogConfig struct {
	Debug bool
	JSON  bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
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

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         req("DB_HOST"),
		DBPort:         stringOr(opt("DB_PORT"), "5432"),
		DBName:         req("DB_NAME"),
		DBUser:         req("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      stringOr(opt("DB_SSL_MODE"), "disable"),
		PoolMaxConns:   int32(intOr(opt("DB_POOL_MAX_CONNS"), 10)),
		ConnectTimeout: durationOr(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		MigrationsDir:  opt("MIGRATIONS_DIR"),
		RunSeeders:     boolOr(opt("DB_RUN_SEEDERS"), false),
	}

	cfg.Redis = RedisConfig{
		Enabled:  boolOr(opt("REDIS_ENABLED"), opt("REDIS_HOST") != ""),
		Host:     stringOr(opt("REDIS_HOST"), "localhost"),
		Port:     stringOr(opt("REDIS_PORT"), "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      time.Duration(intOr(opt("REDIS_TTL"), 86400)) * time.Second,
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    opt("JWT_ACCESS_SECRET"),
		AccessExpiresIn: durationOr(opt("JWT_ACCESS_EXPIRES_IN"), 24*time.Hour),
	}

	cfg.Matching = MatchingConfig{
		GeminiAPIKey:      opt("GEMINI_API_KEY"),
		GeminiModel:       stringOr(opt("GEMINI_MODEL"), "gemini-2.0-flash"),
		SemanticRequested: boolOr(opt("AI_MATCHING_ENABLED"), true),
		CallTimeout:       durationOr(opt("AI_CALL_TIMEOUT"), 10*time.Second),
		MinInterval:       durationOr(opt("AI_MIN_INTERVAL"), 100*time.Millisecond),
		CacheSize:         intOr(opt("SKILL_CACHE_SIZE"), 1000),
		Workers:           intOr(opt("MATCH_WORKERS"), 4),
	}

	cfg.Log = LogConfig{
		Debug: strings.EqualFold(opt("LOG_LEVEL"), "debug"),
		JSON:  boolOr(opt("LOG_JSON"), false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// SemanticAvailable reports whether semantic matching should be attempted at startup.
func (m MatchingConfig) SemanticAvailable() bool {
	return m.SemanticRequested && m.GeminiAPIKey != ""
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func boolOr(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func durationOr(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return def
	}
	return d
}
