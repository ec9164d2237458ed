package repository

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create stores the board together with one column per name, positioned in
// the order given.
func (r *BoardRepository) Create(ctx context.Context, board model.Board, columnNames []string) (model.BoardWithColumns, error) {
	result := model.BoardWithColumns{Columns: []model.ColumnWithCards{}}
	err := inTx(ctx, r.db, "create board", func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		result.Board = board

		for i, name := range columnNames {
			column := model.Column{BoardID: board.ID, Name: name, Position: i}
			if err := tx.Create(&column).Error; err != nil {
				return err
			}
			result.Columns = append(result.Columns, model.ColumnWithCards{Column: column, Cards: []model.Card{}})
		}
		return nil
	})
	if err != nil {
		return model.BoardWithColumns{}, err
	}
	return result, nil
}

// GetAll returns every board, newest first.
func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&boards).Error
	return boards, storeError("list boards", err, nil)
}

// GetWithColumns returns the board with its columns and their cards, all in
// position order, read from one snapshot.
func (r *BoardRepository) GetWithColumns(ctx context.Context, id uuid.UUID) (model.BoardWithColumns, error) {
	var result model.BoardWithColumns
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findRow(tx, &result.Board, id, ErrBoardNotFound); err != nil {
			return err
		}

		columns, err := columnsOf(tx, id)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, len(columns))
		for i, c := range columns {
			ids[i] = c.ID
		}
		var cards []model.Card
		if len(ids) > 0 {
			err := tx.Where("column_id IN ?", ids).
				Order("column_id").Order("position").
				Find(&cards).Error
			if err != nil {
				return err
			}
		}

		byColumn := make(map[uuid.UUID][]model.Card, len(columns))
		for _, card := range cards {
			byColumn[card.ColumnID] = append(byColumn[card.ColumnID], card)
		}

		result.Columns = make([]model.ColumnWithCards, len(columns))
		for i, c := range columns {
			colCards := byColumn[c.ID]
			if colCards == nil {
				colCards = []model.Card{}
			}
			result.Columns[i] = model.ColumnWithCards{Column: c, Cards: colCards}
		}
		return nil
	})
	if err != nil {
		return model.BoardWithColumns{}, storeError("get board", err, nil)
	}
	return result, nil
}

func (r *BoardRepository) Rename(ctx context.Context, id uuid.UUID, name string) (model.Board, error) {
	var board model.Board
	err := inTx(ctx, r.db, "rename board", func(tx *gorm.DB) error {
		if err := lockRow(tx, &board, id, ErrBoardNotFound); err != nil {
			return err
		}
		if err := tx.Model(&board).Update("name", name).Error; err != nil {
			return err
		}
		board = board.WithName(name)
		return nil
	})
	if err != nil {
		return model.Board{}, err
	}
	return board, nil
}

// Delete removes the board with all its columns and cards.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return inTx(ctx, r.db, "delete board", func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Board{}, id, ErrBoardNotFound); err != nil {
			return err
		}

		var columnIDs []uuid.UUID
		err := tx.Model(&model.Column{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("board_id = ?", id).
			Order("id").
			Pluck("id", &columnIDs).Error
		if err != nil {
			return err
		}

		if len(columnIDs) > 0 {
			if err := tx.Where("column_id IN ?", columnIDs).Delete(&model.Card{}).Error; err != nil {
				return err
			}
			if err := tx.Where("board_id = ?", id).Delete(&model.Column{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Board{}, "id = ?", id).Error
	})
}
