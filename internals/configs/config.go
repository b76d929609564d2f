package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config dibangun sekali saat start lalu diteruskan ke komponen yang butuh.
type Config struct {
	App       AppConfig
	DB        DBConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Reaper    ReaperConfig
	Midtrans  MidtransConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Env          string
	Port         string
	TimeZone     string
	AllowOrigins []string
	BodyLimit    int
	ReqTimeout   time.Duration
}

type DBConfig struct {
	DSN              string
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	StatementTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	SlowThreshold    time.Duration
	LogQueries       bool
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type StorageConfig struct {
	Driver         string // local | oss
	LocalDir       string
	PublicPrefix   string
	MaxUploadBytes int64
	OSS            OSSConfig
}

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string
	PublicBaseURL   string
}

type ReaperConfig struct {
	Enabled   bool
	Schedule  string
	Retention time.Duration
	DryRun    bool
}

type MidtransConfig struct {
	ServerKey  string
	Production bool
}

type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
}

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("[INFO] .env file berhasil dimuat")
		}
	} else {
		log.Println("[INFO] Running in Railway, menggunakan ENV dari sistem")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("BODY_LIMIT_MB", 25)
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "3s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_SLOW_THRESHOLD", "200ms")
	v.SetDefault("DB_LOG_QUERIES", false)

	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "public/document")
	v.SetDefault("STORAGE_PUBLIC_PREFIX", "/document")
	v.SetDefault("UPLOAD_MAX_MB", 20)
	v.SetDefault("ALI_OSS_PREFIX", "document/")

	v.SetDefault("REAPER_ENABLED", true)
	v.SetDefault("REAPER_SCHEDULE", "15 2 * * *")
	v.SetDefault("REAPER_RETENTION", "24h")
	v.SetDefault("REAPER_DRY_RUN", false)

	v.SetDefault("MIDTRANS_USE_PROD", false)

	v.SetDefault("RATE_LIMIT_MAX", 300)
	v.SetDefault("RATE_LIMIT_EXPIRATION", "1m")
	return v
}

// Load membaca ENV (dan .env kalau ada) menjadi Config.
func Load() (*Config, error) {
	LoadEnv()
	return FromViper(newViper())
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:          v.GetString("APP_ENV"),
			Port:         v.GetString("PORT"),
			TimeZone:     v.GetString("APP_TIMEZONE"),
			AllowOrigins: splitCSV(v.GetString("CORS_ALLOW_ORIGINS")),
			BodyLimit:    v.GetInt("BODY_LIMIT_MB") * 1024 * 1024,
			ReqTimeout:   v.GetDuration("REQUEST_TIMEOUT"),
		},
		DB: DBConfig{
			DSN:              v.GetString("DATABASE_URL"),
			Host:             v.GetString("DB_HOST"),
			Port:             v.GetString("DB_PORT"),
			User:             v.GetString("DB_USER"),
			Password:         v.GetString("DB_PASSWORD"),
			Name:             v.GetString("DB_NAME"),
			SSLMode:          v.GetString("DB_SSLMODE"),
			StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
			MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
			SlowThreshold:    v.GetDuration("DB_SLOW_THRESHOLD"),
			LogQueries:       v.GetBool("DB_LOG_QUERIES"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("JWT_TTL"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
			LocalDir:       v.GetString("STORAGE_LOCAL_DIR"),
			PublicPrefix:   strings.TrimRight(v.GetString("STORAGE_PUBLIC_PREFIX"), "/"),
			MaxUploadBytes: v.GetInt64("UPLOAD_MAX_MB") * 1024 * 1024,
			OSS: OSSConfig{
				Endpoint:        v.GetString("ALI_OSS_ENDPOINT"),
				AccessKeyID:     v.GetString("ALI_OSS_ACCESS_KEY"),
				AccessKeySecret: v.GetString("ALI_OSS_SECRET_KEY"),
				Bucket:          v.GetString("ALI_OSS_BUCKET"),
				Prefix:          v.GetString("ALI_OSS_PREFIX"),
				PublicBaseURL:   v.GetString("ALI_OSS_PUBLIC_BASE"),
			},
		},
		Reaper: ReaperConfig{
			Enabled:   v.GetBool("REAPER_ENABLED"),
			Schedule:  v.GetString("REAPER_SCHEDULE"),
			Retention: v.GetDuration("REAPER_RETENTION"),
			DryRun:    v.GetBool("REAPER_DRY_RUN"),
		},
		Midtrans: MidtransConfig{
			ServerKey:  v.GetString("MIDTRANS_SERVER_KEY"),
			Production: v.GetBool("MIDTRANS_USE_PROD"),
		},
		RateLimit: RateLimitConfig{
			Max:        v.GetInt("RATE_LIMIT_MAX"),
			Expiration: v.GetDuration("RATE_LIMIT_EXPIRATION"),
		},
		Seed: SeedConfig{
			AdminUsername: v.GetString("SEED_ADMIN_USERNAME"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET belum diset")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.Errorf("JWT_TTL tidak valid: %s", c.Auth.TokenTTL)
	}
	switch c.Storage.Driver {
	case "local":
	case "oss":
		o := c.Storage.OSS
		if o.Endpoint == "" || o.AccessKeyID == "" || o.AccessKeySecret == "" || o.Bucket == "" {
			return errors.New("STORAGE_DRIVER=oss membutuhkan ALI_OSS_ENDPOINT, ALI_OSS_ACCESS_KEY, ALI_OSS_SECRET_KEY, ALI_OSS_BUCKET")
		}
	default:
		return errors.Errorf("STORAGE_DRIVER tidak dikenal: %q", c.Storage.Driver)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.New("UPLOAD_MAX_MB harus > 0")
	}
	return nil
}

// PostgresDSN memakai DATABASE_URL kalau ada, selain itu dirakit dari DB_*.
func (d DBConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sekolah&options=-c%%20statement_timeout=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, d.StatementTimeout.Milliseconds(),
	)
}

// Location zona waktu sekolah, fallback UTC.
func (a AppConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(a.TimeZone); err == nil {
		return loc
	}
	return time.UTC
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
