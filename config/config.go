package config

import (
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port          string
	DatabaseDSN   string
	JWTSecret     string
	CORSOrigin    string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	OperatorEmail string
	Environment   string
}

// Load lit le fichier .env s'il existe puis construit la configuration
// depuis l'environnement, avec des valeurs par défaut de développement.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=reservation port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigin:    getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPass:      getEnv("SMTP_PASS", ""),
		OperatorEmail: getEnv("OPERATOR_EMAIL", "reservations@latable.example"),
		Environment:   getEnv("APP_ENV", "development"),
	}
}

// InitDB ouvre la connexion Postgres. TranslateError permet de recevoir
// gorm.ErrDuplicatedKey sur les violations de contrainte unique au lieu
// d'une erreur driver brute.
func InitDB(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
