package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/movieapi/internal/client/migrations"
	"github.com/dmitrijs2005/movieapi/internal/client/repositories/movies"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenCache opens the SQLite catalog cache at dsn and migrates it. The
// returned close function releases the database.
func OpenCache(ctx context.Context, dsn string) (movies.Repository, func() error, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return movies.NewSQLiteRepository(db), db.Close, nil
}
