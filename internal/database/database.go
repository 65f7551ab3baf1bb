package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"propvest-backend/internal/models"
)

// Open opens a GORM DB. Postgres DSNs get PreferSimpleProtocol to disable
// prepared-statement caching, which breaks behind connection poolers
// (PgBouncer, Supabase, Render). Anything else is treated as a SQLite path,
// which is how the catalog ships for local runs (":memory:" works too).
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate creates the catalog tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Property{}, &models.PropertyAudit{})
}
