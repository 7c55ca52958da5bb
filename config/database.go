// designmecha-mes/config/database.go

package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the PostgreSQL connection. Without a database there is
// nothing this service can do, so failure is fatal.
func ConnectDB() {
	dsn := App.DatabaseURL
	if dsn == "" {
		dsn = os.Getenv("DB_URL")
	}
	if dsn == "" {
		slog.Error("No database URL configured (set database_url or DB_URL)")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Connected to database")
}
