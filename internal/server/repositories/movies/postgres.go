package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgInvalidText is raised by Postgres for malformed UUID literals.
const pgInvalidText = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	query :=
		`INSERT INTO movies (title, director, genre, year, description, image_path, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		m.Title, m.Director, m.Genre, m.Year, m.Description, m.ImagePath, m.Featured).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Movie, error) {
	query :=
		`SELECT id, title, director, genre, year, description, image_path, featured FROM movies
		 WHERE id = $1`

	m, err := scanMovie(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Movie, error) {
	query :=
		`SELECT id, title, director, genre, year, description, image_path, featured FROM movies
		 ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	query :=
		`UPDATE movies SET title = $2, director = $3, genre = $4, year = $5,
		   description = $6, image_path = $7, featured = $8
		 WHERE id = $1
		 RETURNING id, title, director, genre, year, description, image_path, featured`

	updated, err := scanMovie(r.db.QueryRowContext(ctx, query,
		m.ID, m.Title, m.Director, m.Genre, m.Year, m.Description, m.ImagePath, m.Featured))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	m := &models.Movie{}
	err := s.Scan(&m.ID, &m.Title, &m.Director, &m.Genre, &m.Year, &m.Description, &m.ImagePath, &m.Featured)
	return m, err
}

// mapError treats a malformed id the same as a missing one.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidText {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
