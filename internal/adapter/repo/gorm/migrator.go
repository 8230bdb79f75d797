package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dicehall/internal/adapter/repo/gorm/model"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.SheetAttribute{},
		&model.CommandLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
