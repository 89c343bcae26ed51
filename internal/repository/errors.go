package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a predicate matches no record
	ErrNotFound = errors.New("record not found")
	// ErrUniqueConstraint is returned when a write collides with a unique index
	ErrUniqueConstraint = errors.New("unique constraint violated")
	// ErrValidation is returned when the store rejects a value (not null, foreign key, check)
	ErrValidation = errors.New("store validation failed")
)

// translate maps store-level failures onto the repository sentinel errors.
// Dialects that implement gorm's ErrorTranslator arrive here already mapped;
// the driver checks cover the rest.
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrUniqueConstraint, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidValue):
		return errors.Join(ErrValidation, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return errors.Join(ErrUniqueConstraint, err)
		case 1048, 1364, 1451, 1452, 3819:
			return errors.Join(ErrValidation, err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return errors.Join(ErrUniqueConstraint, err)
		case "23502", "23503", "23514", "22P02":
			return errors.Join(ErrValidation, err)
		}
	}

	// sqlite and sqlserver report constraint failures in the message text
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "Cannot insert duplicate key"):
		return errors.Join(ErrUniqueConstraint, err)
	case strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"):
		return errors.Join(ErrValidation, err)
	}

	return err
}
