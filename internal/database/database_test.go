package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: NewGormLogger(discardLogger())})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestOpenCreatesSQLiteFile(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "nested", "tastyshare.db"),
	}

	db, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	defer Close(db)

	assert.NoError(t, HealthCheck(context.Background(), db))
	assert.FileExists(t, cfg.DBPath)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mysql"}, discardLogger())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateCreatesSchema(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, Migrate(db, discardLogger()))

	m := db.Migrator()
	for _, table := range []string{"users", "recipes", "favourites", "reviews"} {
		assert.True(t, m.HasTable(table), table)
	}
	assert.True(t, m.HasColumn(&models.User{}, "password"))
	assert.True(t, m.HasColumn(&models.Recipe{}, "image_name"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db, discardLogger()))

	user := models.User{Email: "cook@example.com", PasswordHash: "hash", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, Migrate(db, discardLogger()))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMigrateUpgradesLegacySchema(t *testing.T) {
	db := openMemory(t)

	legacy := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user'
		)`,
		`CREATE TABLE recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			title TEXT,
			ingredients TEXT,
			steps TEXT,
			image_path TEXT,
			FOREIGN KEY(user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE favourites (
			user_id INTEGER,
			recipe_id INTEGER,
			PRIMARY KEY(user_id, recipe_id)
		)`,
		`CREATE TABLE reviews (
			user_id INTEGER,
			recipe_id INTEGER,
			review_text TEXT,
			rating INTEGER,
			PRIMARY KEY(user_id, recipe_id)
		)`,
		`INSERT INTO users (email, password) VALUES ('old@example.com', 'hash')`,
		`INSERT INTO recipes (user_id, title, ingredients, steps, image_path) VALUES (1, 'Dal', 'lentils', 'boil', 'images/dal.png')`,
	}
	for _, stmt := range legacy {
		require.NoError(t, db.Exec(stmt).Error)
	}

	require.NoError(t, Migrate(db, discardLogger()))
	require.NoError(t, Migrate(db, discardLogger()))

	m := db.Migrator()
	assert.True(t, m.HasColumn(&models.Recipe{}, "category"))
	assert.True(t, m.HasColumn(&models.Recipe{}, "cooking_time"))
	assert.True(t, m.HasColumn(&models.Recipe{}, "image_name"))
	assert.True(t, m.HasColumn(&models.Review{}, "created_at"))

	var recipe models.Recipe
	require.NoError(t, db.First(&recipe).Error)
	assert.Equal(t, "Dal", recipe.Title)
	assert.Equal(t, "images/dal.png", recipe.ImagePath)
	assert.Empty(t, recipe.Category)
}

func TestIsUniqueViolation(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db, discardLogger()))

	require.NoError(t, db.Create(&models.User{Email: "dup@example.com", PasswordHash: "x", Role: "user"}).Error)
	err := db.Create(&models.User{Email: "dup@example.com", PasswordHash: "y", Role: "user"}).Error
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}
