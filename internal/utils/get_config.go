package utils

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// App and JWT
	AppPort   string `yaml:"APP_PORT"`
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTTTL    string `yaml:"JWT_TTL"`

	// Order schedule defaults
	OrderRequiredOffset string `yaml:"ORDER_REQUIRED_OFFSET"`
	OrderShippedOffset  string `yaml:"ORDER_SHIPPED_OFFSET"`

	// Seeded admin account
	AdminEmail    string `yaml:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Midtrans configuration
	ClientKey string `yaml:"CLIENT_KEY"`
	ServerKey string `yaml:"SERVER_KEY"`
	IsProd    bool   `yaml:"IsProd"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

// LoadConfig reads .env and config.yaml from the working directory. Both are
// optional; environment variables win over yaml values in GetConfig.
func LoadConfig() {
	LoadConfigFrom(".env", "config.yaml")
}

func LoadConfigFrom(envFile, yamlFile string) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("error reading %s: %v", envFile, err)
	}

	config = Config{}
	file, err := os.ReadFile(yamlFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("error reading YAML file: %v", err)
		}
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Errorf("error parsing YAML file: %v", err)
	}
}

func GetConfig(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	switch key {
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "APP_PORT":
		return config.AppPort
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL":
		return config.JWTTTL
	case "ORDER_REQUIRED_OFFSET":
		return config.OrderRequiredOffset
	case "ORDER_SHIPPED_OFFSET":
		return config.OrderShippedOffset
	case "ADMIN_EMAIL":
		return config.AdminEmail
	case "ADMIN_PASSWORD":
		return config.AdminPassword
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "CLIENT_KEY":
		return config.ClientKey
	case "SERVER_KEY":
		return config.ServerKey
	case "IsProd":
		return strconv.FormatBool(config.IsProd)
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetDurationConfig parses key as a time.Duration ("72h", "90m").
// Missing or malformed values fall back.
func GetDurationConfig(key string, fallback time.Duration) time.Duration {
	raw := GetConfig(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("invalid duration for %s: %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func GetBoolConfig(key string) bool {
	b, _ := strconv.ParseBool(GetConfig(key))
	return b
}
