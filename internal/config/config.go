package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	ServerPort string

	JWTSecret string
	JWTExpiry time.Duration

	OTPLength       int
	OTPTTL          time.Duration
	ResetTokenTTL   time.Duration
	ResetLinkFormat string
	GoogleClientID  string

	UploadDir      string
	MaxUploadBytes int64

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

// Load reads the given env files (./.env when none) and then the environment.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) *Config {
	err := godotenv.Load(envFiles...)
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "eureka_user"),
		DBPassword:  getEnv("DB_PASSWORD", "eureka_pass"),
		DBName:      getEnv("DB_NAME", "eureka_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret: getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		OTPLength:       getEnvInt("OTP_LENGTH", 6),
		OTPTTL:          getEnvDuration("OTP_TTL", 10*time.Minute),
		ResetTokenTTL:   getEnvDuration("RESET_TOKEN_TTL", time.Hour),
		ResetLinkFormat: getEnv("RESET_LINK_FORMAT", "example://gawean/%s"),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@eureka.local"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer for %s=%q, using %d", key, value, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("⚠️  Invalid boolean for %s=%q, using %t", key, value, defaultVal)
		return defaultVal
	}
	return b
}

// getEnvDuration accepts Go duration strings such as "15m" or "24h".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️  Invalid duration for %s=%q, using %s", key, value, defaultVal)
		return defaultVal
	}
	return d
}
