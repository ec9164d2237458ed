package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Column struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (c *Column) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c Column) WithName(name string) Column {
	c.Name = name
	return c
}

func (c Column) WithPosition(position int) Column {
	c.Position = position
	return c
}

type ColumnWithCards struct {
	Column
	Cards []Card
}

// ColumnReorder is the result of repositioning a column: the column itself and
// every column of its board in position order.
type ColumnReorder struct {
	Column  Column
	Columns []Column
}
