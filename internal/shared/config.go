package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	JWTSecret string

	GeocodePrimaryBase string
	GeocodePrimaryKey  string
	GeocodeFallback    string

	SMSBase string
	SMSKey  string
	SMSFrom string

	EmailBase string
	EmailKey  string
	EmailFrom string

	StorageBase   string
	StorageKey    string
	StorageBucket string

	CacheTTL time.Duration

	OTPTTL          time.Duration
	OTPResendWait   time.Duration
	OTPMaxAttempts  int
	ReviewWindow    time.Duration
	ReviewMaxPerWin int
	FlagMaxPerWin   int

	GeocodeWorkers   int
	GeocodeBatchSize int
}

func Load() Config {
	// .env is for local development; absence is not an error.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	secs := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Second
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/sayso?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		JWTSecret: env("JWT_SECRET", ""),

		GeocodePrimaryBase: env("GEOCODE_PRIMARY_URL", "https://api.geocode.earth/v1"),
		GeocodePrimaryKey:  env("GEOCODE_PRIMARY_KEY", ""),
		GeocodeFallback:    env("GEOCODE_FALLBACK_URL", "https://nominatim.openstreetmap.org"),

		SMSBase: env("SMS_BASE_URL", ""),
		SMSKey:  env("SMS_API_KEY", ""),
		SMSFrom: env("SMS_FROM", "sayso"),

		EmailBase: env("EMAIL_BASE_URL", ""),
		EmailKey:  env("EMAIL_API_KEY", ""),
		EmailFrom: env("EMAIL_FROM", "no-reply@sayso.app"),

		StorageBase:   env("STORAGE_BASE_URL", ""),
		StorageKey:    env("STORAGE_API_KEY", ""),
		StorageBucket: env("STORAGE_BUCKET", "business-media"),

		CacheTTL: secs("CACHE_TTL_SECONDS", 900),

		OTPTTL:          secs("OTP_TTL_SECONDS", 600),
		OTPResendWait:   secs("OTP_RESEND_SECONDS", 60),
		OTPMaxAttempts:  atoi("OTP_MAX_ATTEMPTS", 5),
		ReviewWindow:    secs("REVIEW_WINDOW_SECONDS", 86400),
		ReviewMaxPerWin: atoi("REVIEW_MAX_PER_WINDOW", 5),
		FlagMaxPerWin:   atoi("FLAG_MAX_PER_WINDOW", 10),

		GeocodeWorkers:   atoi("GEOCODE_WORKERS", 4),
		GeocodeBatchSize: atoi("GEOCODE_BATCH_SIZE", 200),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; tokens will not validate")
	}
	if c.SMSKey == "" {
		log.Warn().Msg("SMS_API_KEY is empty; OTP delivery disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
