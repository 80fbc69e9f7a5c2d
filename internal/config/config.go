package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is read once at startup and handed to constructors.
type Config struct {
	Env     string
	Port    string
	BaseURL string

	DSN     string
	DBDebug bool

	StorageDriver string
	StorageDir    string
	StorageURL    string
	S3            S3Config
	CloudinaryURL string

	AdminSecret        string
	GoogleClientID     string
	GoogleClientSecret string

	DefaultLanguage   string
	RateLimitRPS      float64
	UploadConcurrency int
}

type S3Config struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	URL      string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	c := Config{
		Env:     strings.ToLower(get("APP_ENV", "development")),
		Port:    get("PORT", "8080"),
		BaseURL: strings.TrimRight(get("BASE_URL", "http://localhost:8080"), "/"),
		DSN:     getenv("DB_DSN"),
		DBDebug: get("DB_DEBUG", "") == "1",

		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", "local")),
		StorageDir:    get("STORAGE_DIR", "uploads"),
		StorageURL:    get("STORAGE_URL", "/uploads"),
		S3: S3Config{
			Bucket:   getenv("S3_BUCKET"),
			Region:   get("S3_REGION", "us-east-1"),
			Key:      getenv("S3_KEY"),
			Secret:   getenv("S3_SECRET"),
			Endpoint: getenv("S3_ENDPOINT"),
			URL:      strings.TrimRight(getenv("S3_URL"), "/"),
		},
		CloudinaryURL: getenv("CLOUDINARY_URL"),

		AdminSecret:        get("JWT_ADMIN_SECRET", get("SECRET_KEY", "dev-admin-secret")),
		GoogleClientID:     getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET"),

		DefaultLanguage: get("DEFAULT_LANGUAGE", "en"),
	}
	if strings.TrimSpace(c.DSN) == "" {
		user := get("DB_USER", get("POSTGRES_USER", "postgres"))
		pass := get("DB_PASSWORD", get("POSTGRES_PASSWORD", "postgres"))
		name := get("DB_NAME", get("POSTGRES_DB", "kiddocorner"))
		c.DSN = "host=" + get("DB_HOST", "localhost") + " user=" + user + " password=" + pass +
			" dbname=" + name + " port=" + get("DB_PORT", "5432") + " sslmode=" + get("DB_SSLMODE", "disable")
	}
	c.RateLimitRPS, _ = strconv.ParseFloat(get("RATE_LIMIT_RPS", "2"), 64)
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = 2
	}
	c.UploadConcurrency, _ = strconv.Atoi(get("UPLOAD_CONCURRENCY", "4"))
	if c.UploadConcurrency <= 0 {
		c.UploadConcurrency = 4
	}
	if c.DefaultLanguage != "bn" {
		c.DefaultLanguage = "en"
	}
	return c
}

func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
