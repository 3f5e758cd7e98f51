package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string
	JWTSecret  string
	Port       string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Transactional mail addressing
	MailFrom   string
	AdminEmail string

	// Object storage (S3-compatible; endpoint empty means real AWS)
	S3Region          string
	S3Endpoint        string
	S3AccessKey       string
	S3SecretKey       string
	ReceiptsBucket    string
	ProductImgBuckets map[string]string

	SiteBaseURL string

	// Contact-form rate limit window, minutes
	ContactWindowMin int
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		RedisAddr:  getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       getenvOrDefault("PORT", "8080"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getenvIntOrDefault("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		MailFrom:   getenvOrDefault("MAIL_FROM", "pantanir@tolvuleiga.is"),
		AdminEmail: getenvOrDefault("ADMIN_EMAIL", "admin@tolvuleiga.is"),

		S3Region:       getenvOrDefault("S3_REGION", "eu-west-1"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    getenvOrDefault("S3_ACCESS_KEY", "local"),
		S3SecretKey:    getenvOrDefault("S3_SECRET_KEY", "local"),
		ReceiptsBucket: getenvOrDefault("RECEIPTS_BUCKET", "receipts"),
		ProductImgBuckets: map[string]string{
			"pc":       getenvOrDefault("PC_IMAGES_BUCKET", "pc-images"),
			"console":  getenvOrDefault("CONSOLE_IMAGES_BUCKET", "console-images"),
			"screen":   getenvOrDefault("SCREEN_IMAGES_BUCKET", "screen-images"),
			"keyboard": getenvOrDefault("KEYBOARD_IMAGES_BUCKET", "keyboard-images"),
			"mouse":    getenvOrDefault("MOUSE_IMAGES_BUCKET", "mouse-images"),
		},

		SiteBaseURL: getenvOrDefault("SITE_BASE_URL", "https://tolvuleiga.is"),

		ContactWindowMin: getenvIntOrDefault("CONTACT_WINDOW_MINUTES", 10),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
