package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleet_tracker/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables
// and applies the schema plus the case-insensitive uniqueness indexes.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Load environment variables (with defaults)
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "postgres")
	password := GetEnv("DB_PASSWORD", "password")
	dbname := GetEnv("DB_NAME", "fleet")
	sslmode := GetEnv("DB_SSLMODE", "disable")
	timezone := GetEnv("DB_TIMEZONE", "UTC")

	// Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Driver{}, &models.Trip{}, &models.Passenger{})
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	// Plate and license numbers are unique case-insensitively; the store
	// checks this inside its transactions, and these partial indexes are
	// the database-level backstop (partial so soft-deleted rows free up
	// their identifier).
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_plate_lower ON vehicles (LOWER(plate_number)) WHERE deleted_at IS NULL;")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_drivers_license_lower ON drivers (LOWER(license_number)) WHERE deleted_at IS NULL;")

	// Assign to global
	DB = db
}

// GetEnv reads an environment variable or returns the provided default
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
