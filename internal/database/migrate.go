package database

import (
	"fmt"
	"log/slog"

	"github.com/pageza/tastyshare/backend/internal/models"
	"gorm.io/gorm"
)

// optionalColumns are columns that older databases may lack. They are added
// in place, never dropped or retyped.
var optionalColumns = []struct {
	model interface{}
	table string
	field string
}{
	{&models.Recipe{}, "recipes", "Category"},
	{&models.Recipe{}, "recipes", "CookingTime"},
	{&models.Recipe{}, "recipes", "ImageName"},
	{&models.Favourite{}, "favourites", "CreatedAt"},
	{&models.Review{}, "reviews", "CreatedAt"},
}

// Migrate brings the schema up to date. It is idempotent and additive: missing
// tables are created, missing optional columns and indexes are added, and
// existing rows are left untouched.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	m := db.Migrator()

	tables := []interface{}{
		&models.User{},
		&models.Recipe{},
		&models.Favourite{},
		&models.Review{},
	}
	for _, model := range tables {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
		logger.Info("Created table", slog.String("model", fmt.Sprintf("%T", model)))
	}

	for _, col := range optionalColumns {
		if m.HasColumn(col.model, col.field) {
			continue
		}
		if err := m.AddColumn(col.model, col.field); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", col.table, col.field, err)
		}
		logger.Info("Added column", slog.String("table", col.table), slog.String("field", col.field))
	}

	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.Recipe{}, "UserID"},
		{&models.Favourite{}, "RecipeID"},
		{&models.Review{}, "RecipeID"},
	}
	for _, idx := range indexes {
		if m.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := m.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index on %T.%s: %w", idx.model, idx.name, err)
		}
	}

	logger.Info("Database migration completed")
	return nil
}
