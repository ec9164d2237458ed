package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ColumnRepository interface {
	GetAll(ctx context.Context) ([]model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetWithCards(ctx context.Context, id uuid.UUID) (model.ColumnWithCards, error)
	Create(ctx context.Context, column model.Column) (model.Column, error)
	Update(ctx context.Context, id uuid.UUID, patch repository.ColumnPatch) (model.ColumnReorder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ColumnService struct {
	repo ColumnRepository
	log  log.FieldLogger
}

func NewColumnService(repo ColumnRepository, logger log.FieldLogger) *ColumnService {
	return &ColumnService{repo: repo, log: logger}
}

// ColumnUpdate changes the name, the position, or both. Nil fields are kept.
type ColumnUpdate struct {
	Name     *string
	Position *int
}

// List returns every column grouped by board and ordered by position.
func (s *ColumnService) List(ctx context.Context) ([]model.Column, error) {
	return s.repo.GetAll(ctx)
}

func (s *ColumnService) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	return s.repo.GetByBoardID(ctx, boardID)
}

func (s *ColumnService) Get(ctx context.Context, id uuid.UUID) (model.ColumnWithCards, error) {
	return s.repo.GetWithCards(ctx, id)
}

// Create appends a column named name to the board.
func (s *ColumnService) Create(ctx context.Context, boardID uuid.UUID, name string) (model.Column, error) {
	name, err := requireText(name, ErrEmptyName)
	if err != nil {
		return model.Column{}, err
	}

	column, err := s.repo.Create(ctx, model.Column{BoardID: boardID, Name: name})
	if err != nil {
		return model.Column{}, err
	}
	s.log.WithFields(log.Fields{
		"column_id": column.ID,
		"board_id":  boardID,
		"position":  column.Position,
	}).Debug("Column created")
	return column, nil
}

func (s *ColumnService) Rename(ctx context.Context, id uuid.UUID, name string) (model.Column, error) {
	result, err := s.Update(ctx, id, ColumnUpdate{Name: &name})
	return result.Column, err
}

// Reposition moves the column to position within its board. Positions past the
// last column place it last.
func (s *ColumnService) Reposition(ctx context.Context, id uuid.UUID, position int) (model.ColumnReorder, error) {
	return s.Update(ctx, id, ColumnUpdate{Position: &position})
}

func (s *ColumnService) Update(ctx context.Context, id uuid.UUID, update ColumnUpdate) (model.ColumnReorder, error) {
	patch := repository.ColumnPatch{Position: update.Position}
	if update.Name != nil {
		name, err := requireText(*update.Name, ErrEmptyName)
		if err != nil {
			return model.ColumnReorder{}, err
		}
		patch.Name = &name
	}
	if err := checkPosition(update.Position); err != nil {
		return model.ColumnReorder{}, err
	}

	result, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return model.ColumnReorder{}, err
	}
	s.log.WithFields(log.Fields{
		"column_id": id,
		"position":  result.Column.Position,
	}).Debug("Column updated")
	return result, nil
}

// Delete removes the column and its cards.
func (s *ColumnService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("column_id", id).Debug("Column deleted")
	return nil
}
