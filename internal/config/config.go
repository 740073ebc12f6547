package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver    string
	Path      string
	URL       string
	LogLevel  string
	BackupDir string
}

type AuthConfig struct {
	JWTSecret   string
	JWTTTLHours int
}

type SeedConfig struct {
	ManagerPassword string
	SellerPassword  string
}

func Load() *Config {
	_ = godotenv.Load()

	ttl, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttl <= 0 {
		ttl = 24
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:    getEnv("DB_DRIVER", "sqlite"),
			Path:      getEnv("DB_PATH", "store.db"),
			URL:       getEnv("DATABASE_URL", ""),
			LogLevel:  getEnv("DB_LOG_LEVEL", "warn"),
			BackupDir: getEnv("BACKUP_DIR", "backups"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
			JWTTTLHours: ttl,
		},
		Seed: SeedConfig{
			ManagerPassword: getEnv("SEED_MANAGER_PASSWORD", "admin123"),
			SellerPassword:  getEnv("SEED_SELLER_PASSWORD", "sale456"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, db=%s", cfg.Server.Env, cfg.Server.Port, cfg.Database.Driver)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
