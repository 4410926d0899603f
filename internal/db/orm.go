package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	gormModels "farewatch/backend/internal/models/gorm"
)

// InitORM opens the alert-history database: Postgres when a DSN is
// configured, a local sqlite file otherwise.
func InitORM(pgDSN, sqlitePath string) (*gorm.DB, error) {
	var (
		orm *gorm.DB
		err error
	)

	if pgDSN != "" {
		orm, err = gorm.Open(postgres.Open(pgDSN), &gorm.Config{})
	} else {
		orm, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open alert database: %w", err)
	}

	if err := orm.AutoMigrate(&gormModels.PriceAlert{}); err != nil {
		return nil, fmt.Errorf("failed to migrate alert database: %w", err)
	}
	return orm, nil
}
