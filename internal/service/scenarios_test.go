package service_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/apperror"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	boards  *service.BoardService
	columns *service.ColumnService
	cards   *service.CardService
}

func setupServices(t *testing.T) services {
	t.Helper()

	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.SQLitePath = "file::memory:"
	cfg.DBConnectRetries = 1
	cfg.DBRetryDelay = time.Millisecond

	logger := newLogger()
	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return services{
		boards:  service.NewBoardService(repository.NewBoardRepository(db), logger),
		columns: service.NewColumnService(repository.NewColumnRepository(db), logger),
		cards:   service.NewCardService(repository.NewCardRepository(db), logger),
	}
}

func (s services) titles(t *testing.T, columnID uuid.UUID) []string {
	t.Helper()
	cards, err := s.cards.ListByColumn(context.Background(), columnID)
	require.NoError(t, err)
	titles := make([]string, len(cards))
	for i, c := range cards {
		assert.Equal(t, i, c.Position)
		titles[i] = c.Title
	}
	return titles
}

func (s services) create(t *testing.T, columnID uuid.UUID, titles ...string) []model.Card {
	t.Helper()
	out := make([]model.Card, len(titles))
	for i, title := range titles {
		card, err := s.cards.Create(context.Background(), columnID, title, nil)
		require.NoError(t, err)
		out[i] = card
	}
	return out
}

func TestScenario_DeleteClosesGap(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	board, err := s.boards.Create(ctx, "b")
	require.NoError(t, err)
	column := board.Columns[0].ID
	cards := s.create(t, column, "p0", "p1", "p2", "p3")

	require.NoError(t, s.cards.Delete(ctx, cards[1].ID))

	assert.Equal(t, []string{"p0", "p2", "p3"}, s.titles(t, column))
}

func TestScenario_MoveAcrossColumns(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	board, err := s.boards.Create(ctx, "b")
	require.NoError(t, err)
	a, b := board.Columns[0].ID, board.Columns[1].ID
	aCards := s.create(t, a, "a0", "a1")
	s.create(t, b, "b0")

	_, err = s.cards.Move(ctx, aCards[1].ID, a, b, 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"a0"}, s.titles(t, a))
	assert.Equal(t, []string{"a1", "b0"}, s.titles(t, b))
}

func TestScenario_CreateBoardSeedsColumns(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	board, err := s.boards.Create(ctx, "Sprint 1")
	require.NoError(t, err)

	columns, err := s.columns.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	for i, name := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, name, columns[i].Name)
		assert.Equal(t, i, columns[i].Position)
	}
}

func TestScenario_RepositionColumn(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	board, err := s.boards.Create(ctx, "b")
	require.NoError(t, err)

	result, err := s.columns.Reposition(ctx, board.Columns[2].ID, 0)

	require.NoError(t, err)
	require.Len(t, result.Columns, 3)
	assert.Equal(t, board.Columns[2].ID, result.Columns[0].ID)
	assert.Equal(t, board.Columns[0].ID, result.Columns[1].ID)
	assert.Equal(t, board.Columns[1].ID, result.Columns[2].ID)
	for i, c := range result.Columns {
		assert.Equal(t, i, c.Position)
	}
}

func TestScenario_EmptyTitleLeavesColumnUntouched(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	board, err := s.boards.Create(ctx, "b")
	require.NoError(t, err)
	column := board.Columns[0].ID
	s.create(t, column, "x", "y")

	_, err = s.cards.Create(ctx, column, "", nil)

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, []string{"x", "y"}, s.titles(t, column))
}

func TestScenario_RoundTrip(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	board, err := s.boards.Create(ctx, "b")
	require.NoError(t, err)

	created, err := s.cards.Create(ctx, board.Columns[0].ID, "title", ptr("desc"))
	require.NoError(t, err)
	got, err := s.cards.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)

	updated, err := s.cards.Update(ctx, created.ID, service.CardUpdate{Title: ptr("other")})
	require.NoError(t, err)
	got, err = s.cards.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Title, got.Title)

	require.NoError(t, s.cards.Delete(ctx, created.ID))
	_, err = s.cards.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
