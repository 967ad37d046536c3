package movies

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var movieColumns = []string{"id", "title", "director", "genre", "year", "description", "image_path", "featured"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+movies.*RETURNING\s+id$`).
		WithArgs("Alien", "Ridley Scott", "Sci-Fi", 1979, "In space...", "", false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))

	got, err := repo.Create(context.Background(), &models.Movie{
		Title: "Alien", Director: "Ridley Scott", Genre: "Sci-Fi", Year: 1979, Description: "In space...",
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.ID)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^SELECT\s+id,\s*title.*FROM\s+movies\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("m-1").
		WillReturnRows(sqlmock.NewRows(movieColumns).AddRow("m-1", "Alien", "Ridley Scott", "Sci-Fi", 1979, "d", "posters/alien.jpg", true))
	mock.ExpectQuery(q).WithArgs("m-2").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs("not-a-uuid").WillReturnError(&pgconn.PgError{Code: "22P02"})

	got, err := repo.Get(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, "posters/alien.jpg", got.ImagePath)
	assert.True(t, got.Featured)

	_, err = repo.Get(context.Background(), "m-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+movies\s+ORDER\s+BY\s+title`).
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("m-1", "Alien", "Ridley Scott", "Sci-Fi", 1979, "d", "", false).
			AddRow("m-2", "Heat", "Michael Mann", "Crime", 1995, "d", "", false))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Heat", got[1].Title)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^UPDATE\s+movies\s+SET`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Movie{ID: "m-9", Title: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `DELETE\s+FROM\s+movies\s+WHERE\s+id\s*=\s*\$1`
	mock.ExpectExec(q).WithArgs("m-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("m-2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("m-3").WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Delete(context.Background(), "m-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "m-2"), common.ErrorNotFound)
	require.ErrorContains(t, repo.Delete(context.Background(), "m-3"), "db down")
}
