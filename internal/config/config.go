package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSanity = "sanity"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

type Config struct {
	Env                string
	ServerAddr         string
	FrontendOrigins    []string
	ContentBackend     string
	SanityProjectID    string
	SanityDataset      string
	SanityAPIVersion   string
	SanityToken        string
	SanityUseCDN       bool
	MongoURI           string
	MongoDB            string
	SQLitePath         string
	RedisURL           string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheTTLSeconds    int
	CacheWarmSchedule  string
	AdminAPIKey        string
	AdminUser          string
	AdminPasswordHash  string
	JWTSecret          string
	AccessTTLMinutes   int
	RefreshTTLMinutes  int
	CookieSecure       bool
	RateLimitContact   int
	RateLimitLogin     int
	RateLimitWindowSec int
	BrevoAPIKey        string
	BrevoSenderEmail   string
	BrevoSenderName    string
	BrevoSandbox       bool
	ContactRecipient   string
	ShowCertificates   bool
	Timezone           *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Load() (*Config, error) {
	// Variables already present in the environment win over .env.
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("TZ", "Africa/Johannesburg"))
	if err != nil {
		return nil, err
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017/portfolio")
	mongoDB := getEnv("MONGO_DB", "")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "portfolio"
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigins:    getEnvList("FRONTEND_ORIGINS", "http://localhost:3000"),
		ContentBackend:     strings.ToLower(getEnv("CONTENT_BACKEND", BackendSanity)),
		SanityProjectID:    getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:      getEnv("SANITY_DATASET", "production"),
		SanityAPIVersion:   getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityToken:        getEnv("SANITY_TOKEN", ""),
		SanityUseCDN:       getEnvBool("SANITY_USE_CDN", false),
		MongoURI:           mongoURI,
		MongoDB:            mongoDB,
		SQLitePath:         getEnv("SQLITE_PATH", "portfolio.db"),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds:    getEnvInt("CACHE_TTL_SECONDS", 60),
		CacheWarmSchedule:  getEnv("CACHE_WARM_SCHEDULE", "@every 5m"),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		AdminUser:          getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTTLMinutes:   getEnvInt("ACCESS_TTL_MINUTES", 15),
		RefreshTTLMinutes:  getEnvInt("REFRESH_TTL_MINUTES", 43200),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		RateLimitContact:   getEnvInt("RATE_LIMIT_CONTACT", 5),
		RateLimitLogin:     getEnvInt("RATE_LIMIT_LOGIN", 10),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
		BrevoAPIKey:        getEnv("BREVO_API_KEY", ""),
		BrevoSenderEmail:   getEnv("BREVO_SENDER_EMAIL", ""),
		BrevoSenderName:    getEnv("BREVO_SENDER_NAME", ""),
		BrevoSandbox:       getEnvBool("BREVO_SANDBOX", false),
		ContactRecipient:   getEnv("CONTACT_RECIPIENT", ""),
		ShowCertificates:   getEnvBool("SHOW_CERTIFICATES", true),
		Timezone:           loc,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ContentBackend {
	case BackendSanity:
		if c.SanityProjectID == "" {
			return errors.New("SANITY_PROJECT_ID is required for the sanity backend")
		}
	case BackendMongo, BackendSQLite:
	default:
		return errors.New("CONTENT_BACKEND must be one of sanity, mongo, sqlite")
	}
	return nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}
