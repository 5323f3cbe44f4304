package database

import (
	"fmt"
	"log/slog"

	"github.com/QPC-github/security-vulnogram/database/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getDSN(host, user, password, dbname, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
}

func NewConnection(host, user, password, dbname, port string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(getDSN(host, user, password, dbname, port)), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations keeps the record table in sync with the model definitions.
func RunMigrations(db *gorm.DB) error {
	slog.Info("running database migrations")
	return db.AutoMigrate(
		&models.CveRecord{},
	)
}
