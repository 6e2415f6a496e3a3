// Package config reads service settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type MySQL struct {
	User         string
	Password     string
	Host         string
	Port         string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
}

type Redis struct {
	Addr     string
	DB       int
	PoolSize int
}

type RabbitMQ struct {
	URL      string
	Exchange string
}

type S3 struct {
	Bucket    string
	PublicURL string
	Prefix    string
}

type Logger struct {
	Mode     string
	Filename string
}

type Reconcile struct {
	Spec  string
	Grace time.Duration
}

type Config struct {
	Port        string
	Timezone    string
	JWTSecret   string
	CORSOrigins []string
	RecentLimit int

	MySQL     MySQL
	Redis     Redis
	RabbitMQ  RabbitMQ
	S3        S3
	Logger    Logger
	Reconcile Reconcile
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function.
func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	redisAddr := get("REDIS_ADDR", "")
	if redisAddr == "" {
		if host := get("REDIS_HOST", ""); host != "" {
			redisAddr = host + ":6379"
		}
	}

	return &Config{
		Port:        get("PORT", "8080"),
		Timezone:    get("APP_TIMEZONE", "Asia/Bangkok"),
		JWTSecret:   get("JWT_SECRET", ""),
		CORSOrigins: splitList(get("CORS_ORIGINS", "http://localhost:3000")),
		RecentLimit: cast.ToInt(get("DASHBOARD_RECENT_LIMIT", "4")),
		MySQL: MySQL{
			User:         get("MYSQL_USER", "root"),
			Password:     get("MYSQL_PASSWORD", ""),
			Host:         get("MYSQL_HOST", "127.0.0.1"),
			Port:         get("MYSQL_PORT", "3306"),
			Database:     get("MYSQL_DATABASE", "restaurant"),
			MaxOpenConns: cast.ToInt(get("MYSQL_MAX_OPEN_CONNS", "50")),
			MaxIdleConns: cast.ToInt(get("MYSQL_MAX_IDLE_CONNS", "10")),
		},
		Redis: Redis{
			Addr:     redisAddr,
			DB:       cast.ToInt(get("REDIS_DB", "0")),
			PoolSize: cast.ToInt(get("REDIS_POOL_SIZE", "20")),
		},
		RabbitMQ: RabbitMQ{
			URL:      get("RABBITMQ_URL", ""),
			Exchange: get("RABBITMQ_EXCHANGE", "restaurant.exchange"),
		},
		S3: S3{
			Bucket:    get("S3_BUCKET", ""),
			PublicURL: get("S3_PUBLIC_URL", ""),
			Prefix:    get("S3_PREFIX", "menu-images"),
		},
		Logger: Logger{
			Mode:     get("LOG_MODE", "development"),
			Filename: get("LOG_FILE", ""),
		},
		Reconcile: Reconcile{
			Spec:  get("RECONCILE_SPEC", "@every 5m"),
			Grace: cast.ToDuration(get("RECONCILE_GRACE", "10m")),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
