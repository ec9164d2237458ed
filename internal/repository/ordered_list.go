package repository

import (
	"taskboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderedList is the set of rows in table sharing one parent key, ordered by
// position. All methods must run inside a transaction that holds the parent lock.
type orderedList struct {
	table     string
	parentKey string
}

var (
	columnList = orderedList{table: "columns", parentKey: "board_id"}
	cardList   = orderedList{table: "cards", parentKey: "column_id"}
)

func (l orderedList) scope(tx *gorm.DB, parentID uuid.UUID) *gorm.DB {
	return tx.Table(l.table).Where(l.parentKey+" = ?", parentID)
}

func (l orderedList) positions(tx *gorm.DB, parentID uuid.UUID) ([]int, error) {
	var positions []int
	err := l.scope(tx, parentID).Pluck("position", &positions).Error
	return positions, err
}

func (l orderedList) count(tx *gorm.DB, parentID uuid.UUID) (int, error) {
	var n int64
	err := l.scope(tx, parentID).Count(&n).Error
	return int(n), err
}

// insertPosition is the position for a child appended to the list.
func (l orderedList) insertPosition(tx *gorm.DB, parentID uuid.UUID) (int, error) {
	positions, err := l.positions(tx, parentID)
	if err != nil {
		return 0, err
	}
	return ordering.InsertPosition(positions), nil
}

// shift applies s to the list with a single UPDATE.
func (l orderedList) shift(tx *gorm.DB, parentID uuid.UUID, s ordering.Shift) error {
	if s.Empty() {
		return nil
	}

	q := l.scope(tx, parentID).Where("position >= ?", s.From)
	if s.Bounded() {
		q = q.Where("position <= ?", s.To)
	}
	return q.Update("position", gorm.Expr("position + ?", s.Delta)).Error
}
