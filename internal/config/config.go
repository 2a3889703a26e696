package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port          string
	PublicBaseURL string
	CardsDir      string
	ExportEnabled bool
	ExportFile    string
	DB            DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.PublicBaseURL = getenv("PUBLIC_BASE_URL", "http://localhost:8080")
	c.CardsDir = getenv("CARDS_DIR", "./data/cards")
	c.ExportEnabled = getenv("EXPORT_ENABLED", "true") == "true"
	c.ExportFile = getenv("EXPORT_FILE", "./aioreal-results.txt")
	c.DB = DBConfig{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "aioreal"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getenv("DB_NAME", "aioreal"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
