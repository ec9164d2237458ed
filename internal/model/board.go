package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (b *Board) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// WithName returns a copy of the board renamed to name.
func (b Board) WithName(name string) Board {
	b.Name = name
	return b
}

var defaultColumnNames = []string{"To Do", "In Progress", "Done"}

// DefaultColumnNames returns the names seeded, in order, into every new board.
// Each call returns a fresh slice.
func DefaultColumnNames() []string {
	return append([]string(nil), defaultColumnNames...)
}

// BoardWithColumns is a board with its columns and their cards, all in position order.
type BoardWithColumns struct {
	Board
	Columns []ColumnWithCards
}
