package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newCurriculumRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCurriculumRepositoryListByScope(t *testing.T) {
	db, mock, cleanup := newCurriculumRepoMock(t)
	defer cleanup()

	repo := NewCurriculumRepository(db)
	rows := sqlmock.NewRows([]string{"id", "stage", "subject", "course", "code", "description"}).
		AddRow("crit-1", "Educación Primaria", "Lengua Castellana", "4º", "2.1", "Produce textos escritos coherentes").
		AddRow("crit-2", "Educación Primaria", "Lengua Castellana", "4º", "3.2", "Revisa sus escritos")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, stage, subject, course, code, description")).
		WithArgs("Educación Primaria", "Lengua Castellana", "4º").
		WillReturnRows(rows)

	criteria, err := repo.ListByScope(context.Background(), "Educación Primaria", "Lengua Castellana", "4º")
	require.NoError(t, err)
	require.Len(t, criteria, 2)
	require.Equal(t, "2.1. Produce textos escritos coherentes", criteria[0].Label())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryEmptyScope(t *testing.T) {
	db, mock, cleanup := newCurriculumRepoMock(t)
	defer cleanup()

	repo := NewCurriculumRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, stage, subject, course, code, description")).
		WithArgs("Bachillerato", "Filosofía", "1º").
		WillReturnRows(sqlmock.NewRows([]string{"id", "stage", "subject", "course", "code", "description"}))

	criteria, err := repo.ListByScope(context.Background(), "Bachillerato", "Filosofía", "1º")
	require.NoError(t, err)
	require.Empty(t, criteria)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryNilHandle(t *testing.T) {
	var repo *CurriculumRepository
	criteria, err := repo.ListByScope(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	require.Nil(t, criteria)
}
