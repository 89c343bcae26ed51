// repository.go
//
// A role-based records service for notary signing operations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notary-records.
// notary-records is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notary-records is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notary-records.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// Predicate is a conjunction of column equalities, e.g. {"id": 3, "user_id": 7}
type Predicate map[string]any

// Repository performs single-table reads and writes for one model type.
// Every call is scoped by a Predicate supplied by the caller.
type Repository[T any] struct {
	db *gorm.DB
}

// New returns a repository for T backed by db
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// quiet silences the gorm logger for hot lookups
func (r *Repository[T]) quiet(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Session(&gorm.Session{Logger: r.db.Logger.LogMode(logger.Silent)})
}

// Create inserts record and fills its generated fields
func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

// FindOne returns the first record matching where, loading the named associations.
// It returns ErrNotFound when nothing matches.
func (r *Repository[T]) FindOne(ctx context.Context, where Predicate, preload ...string) (*T, error) {
	if len(where) == 0 {
		return nil, fmt.Errorf("find one: %w", gorm.ErrMissingWhereClause)
	}

	query := r.quiet(ctx).Where(map[string]any(where))
	for _, assoc := range preload {
		query = query.Preload(assoc)
	}

	var record T
	if err := query.Take(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// FindAll returns every record matching where, ordered by primary key.
// A nil predicate lists the whole table.
func (r *Repository[T]) FindAll(ctx context.Context, where Predicate, preload ...string) ([]T, error) {
	var model T
	query := r.quiet(ctx).Clauses(hints.Comment("select", "list:"+tableName(r.db, &model)))
	if len(where) > 0 {
		query = query.Where(map[string]any(where))
	}
	for _, assoc := range preload {
		query = query.Preload(assoc)
	}

	records := make([]T, 0)
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return records, nil
}

// Update writes fields (column name to value) to every record matching where
// and returns the affected count. An empty field set writes nothing.
func (r *Repository[T]) Update(ctx context.Context, fields map[string]any, where Predicate) (int64, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("update: %w", gorm.ErrMissingWhereClause)
	}
	if len(fields) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Model(new(T)).Where(map[string]any(where)).Updates(fields)
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

// Destroy hard-deletes every record matching where and returns the count
func (r *Repository[T]) Destroy(ctx context.Context, where Predicate) (int64, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("destroy: %w", gorm.ErrMissingWhereClause)
	}

	result := r.db.WithContext(ctx).Where(map[string]any(where)).Delete(new(T))
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

// tableName resolves the table for model, falling back to a generic label
func tableName(db *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil || stmt.Schema == nil {
		return "records"
	}
	return stmt.Schema.Table
}

// IsNotFound reports whether err is a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnique reports whether err is a unique index collision
func IsUnique(err error) bool {
	return errors.Is(err, ErrUniqueConstraint)
}

// IsValidation reports whether err is a store-side value rejection
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
