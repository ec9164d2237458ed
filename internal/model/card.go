package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (c *Card) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c Card) WithTitle(title string) Card {
	c.Title = title
	return c
}

func (c Card) WithDescription(description string) Card {
	c.Description = description
	return c
}

func (c Card) WithPosition(position int) Card {
	c.Position = position
	return c
}

// InColumn returns a copy of the card placed at position in another column.
func (c Card) InColumn(columnID uuid.UUID, position int) Card {
	c.ColumnID = columnID
	c.Position = position
	return c
}

// CardMove is the result of moving a card: the card and the cards of both the
// source and destination columns in position order. Source and Destination are
// the same list for a move inside one column.
type CardMove struct {
	Card        Card
	Source      []Card
	Destination []Card
}
