// Package versioned implements the conditional writes shared by every repository.
//
// Each row carries a version column. Update rewrites the row only when the stored
// version equals the version the caller read, and bumps it in the same statement:
//
//	UPDATE t SET ..., version = expected + 1 WHERE id = ? AND version = expected
//
// Zero affected rows means someone else committed first, which is reported as
// errs.ErrVersionIsInvalid and classified as a conflict.
package versioned

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Update writes dto over the row identified by id if its version is still expected.
// dto must already carry expected+1 in its version field. model is a zero value of
// the DTO type naming the table.
func Update(ctx context.Context, db *gorm.DB, model, dto any, id any, expected int64, entity string) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", id, expected).
		Select("*").
		Omit("id", "created_at").
		Updates(dto)
	if result.Error != nil {
		return Classify(result.Error, entity)
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError(entity)
	}

	return nil
}

// Create inserts dto, reporting a duplicate key as a version conflict.
func Create(ctx context.Context, db *gorm.DB, dto any, entity string) error {
	if err := db.WithContext(ctx).Create(dto).Error; err != nil {
		return Classify(err, entity)
	}
	return nil
}

// Classify turns store errors into the domain vocabulary. Unique violations
// become version conflicts; anything else is returned unchanged.
func Classify(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewVersionIsInvalidErrorWithCause(entity, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewVersionIsInvalidErrorWithCause(entity, err)
	}
	return err
}

// NotFound maps gorm.ErrRecordNotFound to errs.ErrObjectNotFound.
func NotFound(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}
	return err
}
