package config

import (
	"log"
	"os"

	"kiosk-ordering-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Secrets and credentials come from the environment only — the server
// refuses to start without them.
var (
	JWTSecret         []byte
	AdminUsername     string
	AdminPasswordHash string // bcrypt hash of the admin password
)

// Load reads required configuration from the environment. Call once at
// startup, after godotenv.
func Load() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	JWTSecret = []byte(secret)

	AdminUsername = os.Getenv("ADMIN_USERNAME")
	AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if AdminUsername == "" || AdminPasswordHash == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD_HASH must be set")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DBPath returns the SQLite path, overridable via env
func DBPath() string {
	return getEnv("DB_PATH", "kiosk_ordering.db")
}

func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
