package test

import (
	"context"
	"log"

	"github.com/google/uuid"

	"crmchat/internal/adapter/database/sqlite"
)

// Phones of the demo users every test database is seeded with.
const (
	SeedPhone      = "79001234567"
	OtherSeedPhone = "79009876543"
)

// InitTestDB returns a migrated and seeded in-memory database private to
// the caller. The pool holds a single connection so the shared-cache
// database lives exactly as long as the handle.
func InitTestDB() *sqlite.DB {
	db, err := sqlite.Init(context.Background(), sqlite.Config{
		Path:         sqlite.MemoryDSN(uuid.NewString()),
		Name:         "crm_test",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})

	if err != nil {
		log.Fatal(err)
	}

	return db
}

// CountRows is a shortcut for asserting on table contents.
func CountRows(db *sqlite.DB, table string) int {
	var count int

	stmt, args, err := db.QueryBuilder.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		log.Fatal(err)
	}

	if err := db.QueryRow(stmt, args...).Scan(&count); err != nil {
		log.Fatal(err)
	}

	return count
}
