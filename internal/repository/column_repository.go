package repository

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// ColumnPatch lists the fields of a column to change. Nil fields are kept.
type ColumnPatch struct {
	Name     *string
	Position *int
}

// GetAll returns every column, grouped by board and in position order.
func (r *ColumnRepository) GetAll(ctx context.Context) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Order("board_id").Order("position").Find(&columns).Error
	return columns, storeError("list columns", err, nil)
}

// GetWithCards returns the column and its cards in position order.
func (r *ColumnRepository) GetWithCards(ctx context.Context, id uuid.UUID) (model.ColumnWithCards, error) {
	var result model.ColumnWithCards
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findRow(tx, &result.Column, id, ErrColumnNotFound); err != nil {
			return err
		}
		var err error
		result.Cards, err = cardsOf(tx, id)
		return err
	})
	return result, storeError("get column", err, nil)
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findRow(tx, &model.Board{}, boardID, ErrBoardNotFound); err != nil {
			return err
		}
		var err error
		columns, err = columnsOf(tx, boardID)
		return err
	})
	return columns, storeError("list board columns", err, nil)
}

// Create appends the column to the end of its board.
func (r *ColumnRepository) Create(ctx context.Context, column model.Column) (model.Column, error) {
	err := inTx(ctx, r.db, "create column", func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Board{}, column.BoardID, ErrBoardNotFound); err != nil {
			return err
		}

		position, err := columnList.insertPosition(tx, column.BoardID)
		if err != nil {
			return err
		}
		column = column.WithPosition(position)
		return tx.Create(&column).Error
	})
	if err != nil {
		return model.Column{}, err
	}
	return column, nil
}

// Update renames and/or repositions a column in one transaction and returns it
// together with every column of its board. A new position is clamped to the
// board's bounds.
func (r *ColumnRepository) Update(ctx context.Context, id uuid.UUID, patch ColumnPatch) (model.ColumnReorder, error) {
	var result model.ColumnReorder
	err := inTx(ctx, r.db, "update column", func(tx *gorm.DB) error {
		column, err := lockColumn(tx, id)
		if err != nil {
			return err
		}

		updated := column
		if patch.Name != nil {
			updated = updated.WithName(*patch.Name)
		}
		if patch.Position != nil {
			count, err := columnList.count(tx, column.BoardID)
			if err != nil {
				return err
			}
			target := ordering.Clamp(*patch.Position, count-1)
			if err := columnList.shift(tx, column.BoardID, ordering.SameParentMove(column.Position, target)); err != nil {
				return err
			}
			updated = updated.WithPosition(target)
		}

		if err := tx.Model(&column).Updates(map[string]any{
			"name":     updated.Name,
			"position": updated.Position,
		}).Error; err != nil {
			return err
		}

		result.Column = updated
		result.Columns, err = columnsOf(tx, column.BoardID)
		return err
	})
	if err != nil {
		return model.ColumnReorder{}, err
	}
	return result, nil
}

// Delete removes the column with its cards and closes the gap in the board.
func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return inTx(ctx, r.db, "delete column", func(tx *gorm.DB) error {
		column, err := lockColumn(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Column{}, "id = ?", id).Error; err != nil {
			return err
		}
		return columnList.shift(tx, column.BoardID, ordering.DeleteShift(column.Position))
	})
}

// lockColumn locks the column's board, then the column itself, and returns the
// column as seen under those locks.
func lockColumn(tx *gorm.DB, id uuid.UUID) (model.Column, error) {
	var column model.Column
	if err := findRow(tx, &column, id, ErrColumnNotFound); err != nil {
		return column, err
	}
	if err := lockRow(tx, &model.Board{}, column.BoardID, ErrBoardNotFound); err != nil {
		return column, err
	}

	var current model.Column
	err := lockRow(tx, &current, id, ErrColumnNotFound)
	return current, err
}

func columnsOf(tx *gorm.DB, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := tx.Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}
