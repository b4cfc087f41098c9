package config

import (
	"os"
	"strconv"
	"strings"
)

// Runtime configuration, loaded once from the environment in main.
var (
	Port         string
	MongoURI     string
	DatabaseName string
	JWTSecret    []byte

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	CDNDomain   string

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	MailFrom    string
	AdminEmails []string

	FirebaseCredentialsFile string

	RedisAddr     string
	RedisPassword string

	LowStockThreshold   int
	LowStockPollMinutes int

	AllowedOrigins []string
)

func Load() {
	Port = getEnv("PORT", "1414")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	DatabaseName = getEnv("MONGO_DB", "glowstore")
	JWTSecret = []byte(getEnv("JWT_SECRET", "dev_secret_change_me"))

	S3Endpoint = getEnv("S3_ENDPOINT", "")
	S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	S3SecretKey = getEnv("S3_SECRET_KEY", "")
	S3Bucket = getEnv("S3_BUCKET", "")
	CDNDomain = getEnv("CDN_DOMAIN", "")

	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvInt("SMTP_PORT", 465)
	SMTPUser = getEnv("SMTP_USER", "")
	SMTPPass = getEnv("SMTP_PASS", "")
	MailFrom = getEnv("MAIL_FROM", SMTPUser)
	AdminEmails = splitList(getEnv("ADMIN_EMAILS", ""))

	FirebaseCredentialsFile = getEnv("FIREBASE_CREDENTIALS_FILE", "")

	RedisAddr = getEnv("REDIS_ADDR", "")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	LowStockThreshold = getEnvInt("LOW_STOCK_THRESHOLD", 10)
	LowStockPollMinutes = getEnvInt("LOW_STOCK_POLL_MINUTES", 15)

	AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
