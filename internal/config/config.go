package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	StorePostgres = "postgres"
	StoreBolt     = "bolt"

	FeedPostgres = "postgres"
	FeedRedis    = "redis"
	FeedMemory   = "memory"
)

type Config struct {
	ServerPort  string
	Environment string
	Timezone    string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
	BotAPIKey         string

	StoreDriver string
	DBUrl       string
	BoltPath    string

	FeedDriver string
	RedisURL   string

	CleanupSchedule string
	QRSize          int

	S3 S3Config

	Logger LoggerConfig
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type LoggerConfig struct {
	Mode       string
	FileEnable bool
	Filename   string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Timezone:    getEnv("TIMEZONE", "America/Sao_Paulo"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminEmail:        strings.ToLower(getEnv("ADMIN_EMAIL", "admin@salonsync.local")),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		BotAPIKey:         getEnv("BOT_API_KEY", ""),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StorePostgres)),
		DBUrl:       getEnv("DATABASE_URL", ""),
		BoltPath:    getEnv("BOLT_PATH", "salonsync.db"),

		FeedDriver: strings.ToLower(getEnv("FEED_DRIVER", "")),
		RedisURL:   getEnv("REDIS_URL", ""),

		CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "@every 1m"),
		QRSize:          getEnvInt("QR_SIZE", 256),

		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		},

		Logger: LoggerConfig{
			Mode:       getEnv("LOG_MODE", "development"),
			FileEnable: getEnvBool("LOG_FILE_ENABLE", false),
			Filename:   getEnv("LOG_FILE", "salonsync.log"),
		},
	}

	if cfg.FeedDriver == "" {
		cfg.FeedDriver = defaultFeed(cfg.StoreDriver)
	}

	return cfg
}

func defaultFeed(store string) string {
	if store == StoreBolt {
		return FeedMemory
	}
	return FeedPostgres
}

// Validate rejects driver combinations that can never deliver change
// notifications.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DBUrl == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreBolt:
		if c.BoltPath == "" {
			return errors.New("BOLT_PATH is required for the bolt store")
		}
	default:
		return errors.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.FeedDriver {
	case FeedPostgres:
		if c.StoreDriver != StorePostgres {
			return errors.New("FEED_DRIVER=postgres needs STORE_DRIVER=postgres")
		}
	case FeedRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis feed")
		}
	case FeedMemory:
	default:
		return errors.Errorf("unknown FEED_DRIVER %q", c.FeedDriver)
	}

	if c.QRSize < 64 {
		return errors.Errorf("QR_SIZE must be at least 64, got %d", c.QRSize)
	}

	return c.validateURLs()
}

// validateURLs checks that every configured URL parses, keeping the parse
// error as the cause.
func (c *Config) validateURLs() error {
	urls := []struct {
		name, value string
	}{
		{"DATABASE_URL", c.DBUrl},
		{"REDIS_URL", c.RedisURL},
		{"S3_ENDPOINT", c.S3.Endpoint},
		{"S3_PUBLIC_BASE_URL", c.S3.PublicBaseURL},
	}

	for _, u := range urls {
		if u.value == "" {
			continue
		}
		// libpq key=value DSNs are valid DATABASE_URL values too.
		if u.name == "DATABASE_URL" && !strings.Contains(u.value, "://") {
			continue
		}
		parsed, err := url.Parse(u.value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", u.name)
		}
		if parsed.Scheme == "" {
			return errors.Errorf("invalid %s: missing scheme", u.name)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
