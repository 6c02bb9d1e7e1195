package store

import (
	"context"

	"gorm.io/gorm"
)

// ============================================================================
// Generic GORM helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store files. They
// are unexported and operate on the raw *gorm.DB to avoid coupling to
// GORMStore, so they also work inside a transaction handle's *gorm.DB.

// getByField retrieves a single record of type T by matching field=value,
// applying optional GORM Preload clauses and converting gorm.ErrRecordNotFound
// to notFoundErr for consistent domain error mapping.
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error, preloads ...string) (*T, error) {
	var result T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listAll retrieves all records of type T matching the given query, applying
// optional GORM Preload clauses. Returns an empty slice (not nil) on success
// with no matching records.
func listAll[T any](db *gorm.DB, ctx context.Context, apply func(*gorm.DB) *gorm.DB, preloads ...string) ([]*T, error) {
	var results []*T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if apply != nil {
		q = apply(q)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// deleteByField deletes records of type T matching field=value. Returns
// notFoundErr if no rows were affected.
func deleteByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) error {
	var zero T
	result := db.WithContext(ctx).Where(field+" = ?", value).Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
