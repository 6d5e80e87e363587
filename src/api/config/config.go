package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MySQLDSN      string
	RedisURL      string
	JWTSecret     string
	Port          string
	AdminUser     string
	AdminPassword string
	RateLimit     int
	RateWindow    time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	rate, _ := strconv.Atoi(getenv("RATE_LIMIT", "10"))
	window, _ := strconv.Atoi(getenv("RATE_WINDOW_SECONDS", "60"))
	return Config{
		MySQLDSN:      getenv("MYSQL_DSN", "hub:hub@tcp(127.0.0.1:3306)/hub_editais?parseTime=true"),
		RedisURL:      getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		Port:          getenv("PORT", "8080"),
		AdminUser:     getenv("ADMIN_USER", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RateLimit:     rate,
		RateWindow:    time.Duration(window) * time.Second,
	}
}
