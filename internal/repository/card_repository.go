package repository

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// CardPatch lists the fields of a card to change. Nil fields are kept.
type CardPatch struct {
	Title       *string
	Description *string
	Position    *int
}

// GetAll returns every card grouped by column and ordered by position.
func (r *CardRepository) GetAll(ctx context.Context) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Order("column_id").Order("position").Find(&cards).Error
	return cards, storeError("list cards", err, nil)
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Card, error) {
	var card model.Card
	err := findRow(r.db.WithContext(ctx), &card, id, ErrCardNotFound)
	return card, storeError("get card", err, ErrCardNotFound)
}

// GetByColumnID retrieves all cards in a column in position order
func (r *CardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findRow(tx, &model.Column{}, columnID, ErrColumnNotFound); err != nil {
			return err
		}
		var err error
		cards, err = cardsOf(tx, columnID)
		return err
	})
	return cards, storeError("list column cards", err, nil)
}

// Create appends the card to the end of its column.
func (r *CardRepository) Create(ctx context.Context, card model.Card) (model.Card, error) {
	err := inTx(ctx, r.db, "create card", func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Column{}, card.ColumnID, ErrColumnNotFound); err != nil {
			return err
		}

		position, err := cardList.insertPosition(tx, card.ColumnID)
		if err != nil {
			return err
		}
		card = card.WithPosition(position)
		return tx.Create(&card).Error
	})
	if err != nil {
		return model.Card{}, err
	}
	return card, nil
}

// Update changes title, description and position in one transaction. A new
// position reorders the card inside its current column and is clamped to the
// column's bounds.
func (r *CardRepository) Update(ctx context.Context, id uuid.UUID, patch CardPatch) (model.Card, error) {
	var updated model.Card
	err := inTx(ctx, r.db, "update card", func(tx *gorm.DB) error {
		card, err := lockCard(tx, id)
		if err != nil {
			return err
		}

		updated = card
		if patch.Title != nil {
			updated = updated.WithTitle(*patch.Title)
		}
		if patch.Description != nil {
			updated = updated.WithDescription(*patch.Description)
		}
		if patch.Position != nil {
			count, err := cardList.count(tx, card.ColumnID)
			if err != nil {
				return err
			}
			target := ordering.Clamp(*patch.Position, count-1)
			if err := cardList.shift(tx, card.ColumnID, ordering.SameParentMove(card.Position, target)); err != nil {
				return err
			}
			updated = updated.WithPosition(target)
		}

		return tx.Model(&card).Updates(map[string]any{
			"title":       updated.Title,
			"description": updated.Description,
			"position":    updated.Position,
		}).Error
	})
	if err != nil {
		return model.Card{}, err
	}
	return updated, nil
}

// Move places the card at position in destColumnID. The card must currently be
// in sourceColumnID. Both columns are locked in id order, the gap in the source
// is closed and a slot is opened in the destination, all in one transaction.
func (r *CardRepository) Move(ctx context.Context, id, sourceColumnID, destColumnID uuid.UUID, position int) (model.CardMove, error) {
	var result model.CardMove
	err := inTx(ctx, r.db, "move card", func(tx *gorm.DB) error {
		var card model.Card
		if err := findRow(tx, &card, id, ErrCardNotFound); err != nil {
			return err
		}
		if card.ColumnID != sourceColumnID {
			return ErrCardNotInSource
		}

		if err := lockColumns(tx, sourceColumnID, destColumnID); err != nil {
			return err
		}
		card = model.Card{}
		if err := findRow(tx, &card, id, ErrCardNotFound); err != nil {
			return err
		}
		if card.ColumnID != sourceColumnID {
			return ErrCardMoved
		}

		var target int
		if sourceColumnID == destColumnID {
			count, err := cardList.count(tx, sourceColumnID)
			if err != nil {
				return err
			}
			target = ordering.Clamp(position, count-1)
			if err := cardList.shift(tx, sourceColumnID, ordering.SameParentMove(card.Position, target)); err != nil {
				return err
			}
		} else {
			count, err := cardList.count(tx, destColumnID)
			if err != nil {
				return err
			}
			target = ordering.Clamp(position, count)
			source, dest := ordering.CrossParentMove(card.Position, target)
			if err := cardList.shift(tx, sourceColumnID, source); err != nil {
				return err
			}
			if err := cardList.shift(tx, destColumnID, dest); err != nil {
				return err
			}
		}

		result.Card = card.InColumn(destColumnID, target)
		if err := tx.Model(&card).Updates(map[string]any{
			"column_id": destColumnID,
			"position":  target,
		}).Error; err != nil {
			return err
		}

		var err error
		if result.Source, err = cardsOf(tx, sourceColumnID); err != nil {
			return err
		}
		if sourceColumnID == destColumnID {
			result.Destination = result.Source
			return nil
		}
		result.Destination, err = cardsOf(tx, destColumnID)
		return err
	})
	if err != nil {
		return model.CardMove{}, err
	}
	return result, nil
}

// Delete removes a card and closes the gap it leaves in its column
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return inTx(ctx, r.db, "delete card", func(tx *gorm.DB) error {
		card, err := lockCard(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.Card{}, "id = ?", id).Error; err != nil {
			return err
		}
		return cardList.shift(tx, card.ColumnID, ordering.DeleteShift(card.Position))
	})
}

// lockCard locks the card's column and returns the card as seen under that lock.
func lockCard(tx *gorm.DB, id uuid.UUID) (model.Card, error) {
	var card model.Card
	if err := findRow(tx, &card, id, ErrCardNotFound); err != nil {
		return card, err
	}
	columnID := card.ColumnID

	if err := lockRow(tx, &model.Column{}, columnID, ErrColumnNotFound); err != nil {
		return card, err
	}

	var current model.Card
	if err := findRow(tx, &current, id, ErrCardNotFound); err != nil {
		return current, err
	}
	if current.ColumnID != columnID {
		return current, ErrCardMoved
	}
	return current, nil
}

// lockColumns locks the given columns in ascending id order so two moves in
// opposite directions cannot deadlock.
func lockColumns(tx *gorm.DB, a, b uuid.UUID) error {
	first, second := a, b
	if second.String() < first.String() {
		first, second = second, first
	}
	if err := lockRow(tx, &model.Column{}, first, ErrColumnNotFound); err != nil {
		return err
	}
	if second == first {
		return nil
	}
	return lockRow(tx, &model.Column{}, second, ErrColumnNotFound)
}

func cardsOf(tx *gorm.DB, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := tx.Where("column_id = ?", columnID).Order("position").Find(&cards).Error
	return cards, err
}
