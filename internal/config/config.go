package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	AppPort           string
	AppEnv            string
	JWTSecret         string
	PaystackSecretKey string
	ReceiptDir        string
	CallbackURL       string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		ReceiptDir:        os.Getenv("RECEIPT_DIR"),
		CallbackURL:       os.Getenv("CALLBACK_URL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.ReceiptDir == "" {
		cfg.ReceiptDir = "./receipts"
	}

	return cfg
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=disable"
}
