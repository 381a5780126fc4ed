// Package testutil builds throwaway stores and configs for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Config returns a configuration backed by a private in-memory SQLite
// database, with rate limits disabled and the cheapest bcrypt cost.
func Config() *config.Config {
	return &config.Config{
		Env:         "test",
		DBDriver:    "sqlite",
		SQLitePath:  fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:   "test-secret",
		JWTExpiry:   7 * 24 * time.Hour,
		BcryptCost:  bcrypt.MinCost,
		Port:        "0",
		AppURL:      "http://localhost:3000",
		CORSOrigins: "http://localhost:3000",
	}
}

// NewDB opens and migrates the database described by cfg. The handle is
// closed when the test ends.
func NewDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
