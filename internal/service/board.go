// Package service holds the business rules that run before the repositories
// touch the store: text fields are trimmed and must not be blank, positions
// must not be negative, and every new board starts with the default columns.
package service

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type BoardRepository interface {
	Create(ctx context.Context, board model.Board, columnNames []string) (model.BoardWithColumns, error)
	GetAll(ctx context.Context) ([]model.Board, error)
	GetWithColumns(ctx context.Context, id uuid.UUID) (model.BoardWithColumns, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (model.Board, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoardService struct {
	repo BoardRepository
	log  log.FieldLogger
}

func NewBoardService(repo BoardRepository, logger log.FieldLogger) *BoardService {
	return &BoardService{repo: repo, log: logger}
}

func (s *BoardService) List(ctx context.Context) ([]model.Board, error) {
	return s.repo.GetAll(ctx)
}

// Get returns the board with its columns and cards.
func (s *BoardService) Get(ctx context.Context, id uuid.UUID) (model.BoardWithColumns, error) {
	return s.repo.GetWithColumns(ctx, id)
}

// Create stores a board named name together with the default columns.
func (s *BoardService) Create(ctx context.Context, name string) (model.BoardWithColumns, error) {
	name, err := requireText(name, ErrEmptyName)
	if err != nil {
		return model.BoardWithColumns{}, err
	}

	board, err := s.repo.Create(ctx, model.Board{Name: name}, model.DefaultColumnNames())
	if err != nil {
		return model.BoardWithColumns{}, err
	}
	s.log.WithField("board_id", board.ID).Debug("Board created")
	return board, nil
}

func (s *BoardService) Rename(ctx context.Context, id uuid.UUID, name string) (model.Board, error) {
	name, err := requireText(name, ErrEmptyName)
	if err != nil {
		return model.Board{}, err
	}

	board, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		return model.Board{}, err
	}
	s.log.WithField("board_id", id).Debug("Board renamed")
	return board, nil
}

func (s *BoardService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("board_id", id).Debug("Board deleted")
	return nil
}
