package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrUniqueConstraint},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, ErrValidation},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, ErrUniqueConstraint},
		{"mysql null column", &mysql.MySQLError{Number: 1048, Message: "Column cannot be null"}, ErrValidation},
		{"postgres duplicate", &pgconn.PgError{Code: "23505"}, ErrUniqueConstraint},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, ErrValidation},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, ErrValidation},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.email"), ErrUniqueConstraint},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), ErrValidation},
		{"sqlserver duplicate", errors.New("mssql: Cannot insert duplicate key row"), ErrUniqueConstraint},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tc.err), tc.want)
		})
	}

	assert.NoError(t, translate(nil))

	other := errors.New("connection reset")
	assert.Same(t, other, translate(other))
}

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateUniqueViolationOnPostgres(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := New[models.Commission](db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "commissions"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_commissions_commission_number"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Commission{CommissionNumber: "N-1", UserID: 1})
	assert.ErrorIs(t, err, ErrUniqueConstraint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotNullViolationOnPostgres(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := New[models.Customer](db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET`)).
		WillReturnError(&pgconn.PgError{Code: "23502"})
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), map[string]any{"name": nil}, Predicate{"id": 1})
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
