// Package movies caches the movie catalog in a local SQLite database so the
// CLI can still list movies when the server is unreachable.
package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/client/models"
	"github.com/dmitrijs2005/movieapi/internal/dbx"
)

const syncedAtKey = "movies_synced_at"

type Repository interface {
	// ReplaceAll swaps the cached catalog for movies atomically.
	ReplaceAll(ctx context.Context, movies []models.Movie) error
	GetAll(ctx context.Context) ([]models.Movie, error)
	// SyncedAt returns when ReplaceAll last succeeded, or the zero time.
	SyncedAt(ctx context.Context) (time.Time, error)
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, movies []models.Movie) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
			return fmt.Errorf("failed to clear movies: %w", err)
		}

		query := `INSERT INTO movies (id, title, director, genre, year, description, image_path, featured)
			values (?, ?, ?, ?, ?, ?, ?, ?)`
		for _, m := range movies {
			if _, err := tx.ExecContext(ctx, query,
				m.ID, m.Title, m.Director, m.Genre, m.Year, m.Description, m.ImagePath, m.Featured); err != nil {
				return fmt.Errorf("failed to insert movie: %w", err)
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO metadata (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			syncedAtKey, r.now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to store sync time: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Movie, error) {
	query := `select id, title, director, genre, year, description, image_path, featured from movies order by title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select movies: %w", err)
	}
	defer rows.Close()

	result := make([]models.Movie, 0)
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Genre, &m.Year, &m.Description, &m.ImagePath, &m.Featured); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) SyncedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `select value from metadata where key = ?`, syncedAtKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}
