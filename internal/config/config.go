package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr         string
	RedisDB           int
	RedisPass         string
	CacheOpTimeout    time.Duration
	CachePingInterval time.Duration

	// JWTSecret has no default on purpose: an unset secret is a fatal
	// configuration error at startup.
	JWTSecret string

	// AuthAllowDegraded accepts tokens on signature+expiry alone while the
	// session cache is unreachable. Availability over strict revocation.
	AuthAllowDegraded bool

	UploadsDir string

	// S3Bucket switches uploaded images from local disk to S3 when set.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/craftmarket?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		CacheOpTimeout:    getEnvDuration("CACHE_OP_TIMEOUT", 500*time.Millisecond),
		CachePingInterval: getEnvDuration("CACHE_PING_INTERVAL", 5*time.Second),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AuthAllowDegraded: getEnvBool("AUTH_ALLOW_DEGRADED", true),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		S3Bucket:          os.Getenv("UPLOADS_S3_BUCKET"),
		S3Region:          getEnv("UPLOADS_S3_REGION", "us-east-1"),
		S3Endpoint:        os.Getenv("UPLOADS_S3_ENDPOINT"),
		S3AccessKey:       os.Getenv("UPLOADS_S3_ACCESS_KEY"),
		S3SecretKey:       os.Getenv("UPLOADS_S3_SECRET_KEY"),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
