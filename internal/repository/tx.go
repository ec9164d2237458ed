package repository

import (
	"context"
	"errors"

	"taskboard/internal/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// inTx runs fn in one transaction. Any error rolls back every write made by fn.
// Typed errors pass through unchanged, anything else is reported as a failed
// transaction.
func inTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case unavailable(err):
		return apperror.StoreUnavailable(err)
	default:
		return apperror.TransactionFailed(op, err)
	}
}

// lockRow loads the row with id into dest holding a FOR UPDATE lock until the
// transaction ends. Locking a parent row serializes every mutation of its child list.
func lockRow(tx *gorm.DB, dest any, id uuid.UUID, notFound error) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// findRow loads the row with id into dest without locking.
func findRow(tx *gorm.DB, dest any, id uuid.UUID, notFound error) error {
	err := tx.Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
