package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	MySQLDSN        string
	DBMaxOpenConns  int
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	AMQPURL         string
	EventsQueue     string
	NotifierWorkers int

	JWTSecret    string
	JWTIssuer    string
	JWTAudience  string
	JWTTTL       time.Duration
	BcryptCost   int
	AuthRequired bool

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
}

// Load reads an optional .env (missing is fine) and then the process env.
// Real env vars win over .env entries.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_booking?parseTime=true&charset=utf8mb4&loc=UTC"),
		DBMaxOpenConns:  atoi("DB_MAX_OPEN_CONNS", 20),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		AMQPURL:         env("AMQP_URL", ""),
		EventsQueue:     env("EVENTS_QUEUE", "reservation_events"),
		NotifierWorkers: atoi("NOTIFIER_WORKERS", 4),

		JWTSecret:    env("JWT_SECRET", ""),
		JWTIssuer:    env("JWT_ISSUER", "hotel_booking"),
		JWTAudience:  env("JWT_AUDIENCE", "hotel_booking_clients"),
		JWTTTL:       time.Duration(atoi("JWT_TTL_MINUTES", 300)) * time.Minute,
		BcryptCost:   atoi("BCRYPT_COST", 10),
		AuthRequired: boolean("AUTH_REQUIRED", false),

		RateLimitRPS:   atof("RATE_LIMIT_RPS", 20),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 40),

		ShutdownTimeout: time.Duration(atoi("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "dev-only-secret"
		log.Warn().Msg("JWT_SECRET is empty; using an insecure development secret")
	}
	if c.NotifierWorkers < 1 {
		c.NotifierWorkers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolean(k string, def bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
