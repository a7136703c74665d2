package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// Payment gateway (collect-request API)
	GatewayBaseURL string
	GatewayAPIKey  string
	GatewaySecret  string
	SchoolID       string
	CallbackURL    string

	// SMTP for payment confirmation mails
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		GatewayBaseURL: os.Getenv("PG_BASE_URL"),
		GatewayAPIKey:  os.Getenv("PAYMENT_API_KEY"),
		GatewaySecret:  os.Getenv("PG_SECRET_KEY"),
		SchoolID:       os.Getenv("DEFAULT_SCHOOL_ID"),
		CallbackURL:    os.Getenv("FRONTEND_URL") + "/dashboard",

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}

	return config, nil
}
