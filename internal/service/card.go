package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CardRepository interface {
	GetAll(ctx context.Context) ([]model.Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Card, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
	Create(ctx context.Context, card model.Card) (model.Card, error)
	Update(ctx context.Context, id uuid.UUID, patch repository.CardPatch) (model.Card, error)
	Move(ctx context.Context, id, sourceColumnID, destColumnID uuid.UUID, position int) (model.CardMove, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CardService struct {
	repo CardRepository
	log  log.FieldLogger
}

func NewCardService(repo CardRepository, logger log.FieldLogger) *CardService {
	return &CardService{repo: repo, log: logger}
}

// CardUpdate lists the card fields to change. Nil fields are kept.
type CardUpdate struct {
	Title       *string
	Description *string
	Position    *int
}

func (s *CardService) List(ctx context.Context) ([]model.Card, error) {
	return s.repo.GetAll(ctx)
}

func (s *CardService) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	return s.repo.GetByColumnID(ctx, columnID)
}

func (s *CardService) Get(ctx context.Context, id uuid.UUID) (model.Card, error) {
	return s.repo.GetByID(ctx, id)
}

// Create appends a card to the column. A nil description is stored as "".
func (s *CardService) Create(ctx context.Context, columnID uuid.UUID, title string, description *string) (model.Card, error) {
	title, err := requireText(title, ErrEmptyTitle)
	if err != nil {
		return model.Card{}, err
	}

	card := model.Card{ColumnID: columnID, Title: title}
	if description != nil {
		card = card.WithDescription(*description)
	}

	card, err = s.repo.Create(ctx, card)
	if err != nil {
		return model.Card{}, err
	}
	s.log.WithFields(log.Fields{
		"card_id":   card.ID,
		"column_id": columnID,
		"position":  card.Position,
	}).Debug("Card created")
	return card, nil
}

// Update changes title, description and position within the current column.
func (s *CardService) Update(ctx context.Context, id uuid.UUID, update CardUpdate) (model.Card, error) {
	patch := repository.CardPatch{Description: update.Description, Position: update.Position}
	if update.Title != nil {
		title, err := requireText(*update.Title, ErrEmptyTitle)
		if err != nil {
			return model.Card{}, err
		}
		patch.Title = &title
	}
	if err := checkPosition(update.Position); err != nil {
		return model.Card{}, err
	}

	card, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return model.Card{}, err
	}
	s.log.WithFields(log.Fields{
		"card_id":  id,
		"position": card.Position,
	}).Debug("Card updated")
	return card, nil
}

// Move places the card at position in destColumnID. sourceColumnID must be the
// column the card is in now. Positions past the end place the card last.
func (s *CardService) Move(ctx context.Context, id, sourceColumnID, destColumnID uuid.UUID, position int) (model.CardMove, error) {
	if err := checkPosition(&position); err != nil {
		return model.CardMove{}, err
	}

	result, err := s.repo.Move(ctx, id, sourceColumnID, destColumnID, position)
	if err != nil {
		return model.CardMove{}, err
	}
	s.log.WithFields(log.Fields{
		"card_id":   id,
		"from":      sourceColumnID,
		"to":        destColumnID,
		"position":  result.Card.Position,
		"requested": position,
	}).Debug("Card moved")
	return result, nil
}

func (s *CardService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("card_id", id).Debug("Card deleted")
	return nil
}
