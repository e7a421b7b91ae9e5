package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the database connection. The canonical schema is
// relational: sqlite backed by DB_PATH by default, PostgreSQL when
// DATABASE_URL is set.
func ConnectDatabase(cfg *Config) error {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
		log.Println("Connecting to PostgreSQL database")
	} else {
		dialector = sqlite.Open(cfg.DBPath)
		log.Printf("Connecting to SQLite database at %s", cfg.DBPath)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
