package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env             string
	HTTPPort        string
	DatabaseURL     string
	MigrationsPath  string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration

	// Параметры леджера.
	AdminID        uuid.UUID
	VaultID        uuid.UUID
	MinLeadTime    uint64
	GenesisUnix    int64
	HeightInterval time.Duration

	AvatarStoragePath string
	MaxUploadSizeMB   int64
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:               env,
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		AvatarStoragePath: getEnv("AVATAR_STORAGE_PATH", "./storage/avatars"),
	}

	// Валидация JWT секрета
	jwtSecret := getEnv("JWT_SECRET", "")
	if env == "production" {
		if jwtSecret == "" || len(jwtSecret) < 32 {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в production")
		}
	} else if jwtSecret == "" {
		jwtSecret = "super-secret-development-only-change-in-production"
		log.Printf("config: WARNING - используется дефолтный JWT_SECRET, измените в production!")
	}
	cfg.JWTSecret = jwtSecret

	// Идентичности администратора и счёта custody.
	adminID, err := parseIdentity("ADMIN_ID", env)
	if err != nil {
		return nil, err
	}
	vaultID, err := parseIdentity("VAULT_ID", env)
	if err != nil {
		return nil, err
	}
	cfg.AdminID = adminID
	cfg.VaultID = vaultID

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	cfg.AccessTokenTTL = mustParseDuration(getEnv("ACCESS_TOKEN_TTL", "15m"))
	cfg.MaxUploadSizeMB = mustParseInt64(getEnv("MAX_UPLOAD_MB", "10"))

	// Rate limiting настройки
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	// Часы высоты: интервал и генезис. MIN_LEAD_TIME — минимальное окно
	// подачи откликов для заказов с планом этапов, в высотах.
	cfg.HeightInterval = mustParseDuration(getEnv("HEIGHT_INTERVAL", "1s"))
	cfg.GenesisUnix = mustParseInt64(getEnv("GENESIS_UNIX", "0"))
	minLead := mustParseInt64(getEnv("MIN_LEAD_TIME", "720"))
	if minLead < 0 {
		return nil, fmt.Errorf("config: MIN_LEAD_TIME не может быть отрицательным")
	}
	cfg.MinLeadTime = uint64(minLead)

	return cfg, nil
}

// parseIdentity читает uuid-идентичность из окружения. В development при
// отсутствии значения используется фиксированный дефолт.
func parseIdentity(key, env string) (uuid.UUID, error) {
	raw := getEnv(key, "")
	if raw == "" {
		if env == "production" {
			return uuid.Nil, fmt.Errorf("config: %s обязателен в production", key)
		}
		// Детерминированные дефолты для локальной разработки.
		defaults := map[string]string{
			"ADMIN_ID": "00000000-0000-0000-0000-00000000ad01",
			"VAULT_ID": "00000000-0000-0000-0000-0000000000e5",
		}
		raw = defaults[key]
		log.Printf("config: WARNING - %s не задан, используется дефолт %s", key, raw)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("config: не удалось распарсить %s: %w", key, err)
	}
	return id, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
