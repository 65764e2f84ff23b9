package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
	logger       zerolog.Logger
}

type Config struct {
	// Path is a file path or a complete "file:" URI.
	Path string
	Name string

	MaxOpenConns int
	MaxIdleConns int

	// LogQueries routes every statement through sqldb-logger.
	LogQueries bool
	Logger     zerolog.Logger

	TracerProvider trace.TracerProvider
}

// DSN turns a database path into a go-sqlite3 URI with foreign keys on.
// Values already in URI form are returned unchanged.
func DSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}

	return fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL", path)
}

// MemoryDSN names a private in-memory database shared by the pool's connections.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
}

// Open connects to the store and verifies the connection. It does not
// touch the schema; call Migrate for that.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Name == "" {
		cfg.Name = "crm"
	}

	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}

	if !strings.HasPrefix(cfg.Path, "file:") {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := DSN(cfg.Path)

	sqlDB, err := otelsql.Open("sqlite3", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName(cfg.Name),
		otelsql.WithTracerProvider(cfg.TracerProvider),
	)

	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.LogQueries {
		traced := sqlDB
		defer traced.Close()

		sqlDB = sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(cfg.Logger),
			sqldblogger.WithLogArguments(false),
			sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
		)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	otelsql.ReportDBStatsMetrics(sqlDB, otelsql.WithDBName(cfg.Name))

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	cfg.Logger.Info().Str("path", cfg.Path).Msg("database opened")

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
		logger:       cfg.Logger,
	}, nil
}

// Migrate applies every pending embedded migration. The statements are
// idempotent so databases created before versioning was introduced are
// adopted as they are.
func (db *DB) Migrate() error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	// Closing the migrator would close db.DB as well.
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, _, _ := m.Version()
	db.logger.Info().Uint("version", version).Msg("database schema ready")

	return nil
}

// Init opens, migrates and seeds the store. Any failure is returned and
// the partially opened handle is closed.
func Init(ctx context.Context, cfg Config) (*DB, error) {
	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.Seed(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
