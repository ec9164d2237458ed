package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/ordering"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type repos struct {
	db      *gorm.DB
	boards  *repository.BoardRepository
	columns *repository.ColumnRepository
	cards   *repository.CardRepository
}

// setupSQLite opens a private in-memory database with the schema applied.
func setupSQLite(t *testing.T) repos {
	t.Helper()

	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.SQLitePath = "file::memory:"
	cfg.DBConnectRetries = 1
	cfg.DBRetryDelay = time.Millisecond

	logger, _ := test.NewNullLogger()
	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return repos{
		db:      db,
		boards:  repository.NewBoardRepository(db),
		columns: repository.NewColumnRepository(db),
		cards:   repository.NewCardRepository(db),
	}
}

func (r repos) newBoard(t *testing.T, name string) model.BoardWithColumns {
	t.Helper()
	board, err := r.boards.Create(context.Background(), model.Board{Name: name}, model.DefaultColumnNames())
	require.NoError(t, err)
	return board
}

func (r repos) newCards(t *testing.T, columnID uuid.UUID, titles ...string) []model.Card {
	t.Helper()
	cards := make([]model.Card, len(titles))
	for i, title := range titles {
		card, err := r.cards.Create(context.Background(), model.Card{ColumnID: columnID, Title: title})
		require.NoError(t, err)
		cards[i] = card
	}
	return cards
}

// titlesOf returns the card titles of the column in position order and checks
// the positions are contiguous.
func (r repos) titlesOf(t *testing.T, columnID uuid.UUID) []string {
	t.Helper()
	cards, err := r.cards.GetByColumnID(context.Background(), columnID)
	require.NoError(t, err)

	titles := make([]string, len(cards))
	positions := make([]int, len(cards))
	for i, c := range cards {
		titles[i] = c.Title
		positions[i] = c.Position
	}
	assert.True(t, ordering.Contiguous(positions), "positions %v", positions)
	return titles
}

func (r repos) columnNamesOf(t *testing.T, boardID uuid.UUID) []string {
	t.Helper()
	columns, err := r.columns.GetByBoardID(context.Background(), boardID)
	require.NoError(t, err)

	names := make([]string, len(columns))
	positions := make([]int, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		positions[i] = c.Position
	}
	assert.True(t, ordering.Contiguous(positions), "positions %v", positions)
	return names
}
