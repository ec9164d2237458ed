package repository_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"taskboard/internal/apperror"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

var cardColumns = []string{"id", "column_id", "title", "description", "position", "created_at"}

func columnRow(id, boardID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "board_id", "name", "position", "created_at"}).
		AddRow(id.String(), boardID.String(), "To Do", 0, time.Now())
}

func TestCardRepository_CreateLocksColumn(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)
	columnID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).
		WillReturnRows(columnRow(columnID, uuid.New()))
	mock.ExpectQuery(`SELECT "position" FROM "cards" WHERE column_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(0).AddRow(1))
	mock.ExpectExec(`INSERT INTO "cards"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Act
	card, err := cardRepo.Create(context.Background(), model.Card{ColumnID: columnID, Title: "next"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 2, card.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_CreateMissingColumnRollsBack(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	// Act
	_, err := cardRepo.Create(context.Background(), model.Card{ColumnID: uuid.New(), Title: "t"})

	// Assert
	assert.ErrorIs(t, err, repository.ErrColumnNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_DeleteRollsBackWhenShiftFails(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)
	cardID, columnID := uuid.New(), uuid.New()
	card := func() *sqlmock.Rows {
		return sqlmock.NewRows(cardColumns).AddRow(cardID.String(), columnID.String(), "t", "", 1, time.Now())
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = `).WillReturnRows(card())
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).WillReturnRows(columnRow(columnID, uuid.New()))
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = `).WillReturnRows(card())
	mock.ExpectExec(`DELETE FROM "cards"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cards" SET "position"`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	// Act
	err := cardRepo.Delete(context.Background(), cardID)

	// Assert
	assert.ErrorIs(t, err, apperror.ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_MoveRollsBackWhenDestinationShiftFails(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)
	cardID, source, dest := uuid.New(), uuid.New(), uuid.New()
	card := func() *sqlmock.Rows {
		return sqlmock.NewRows(cardColumns).AddRow(cardID.String(), source.String(), "t", "", 0, time.Now())
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = `).WillReturnRows(card())
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).WillReturnRows(columnRow(source, uuid.New()))
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).WillReturnRows(columnRow(dest, uuid.New()))
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = `).WillReturnRows(card())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "cards"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(`UPDATE "cards" SET "position"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "cards" SET "position"`).WillReturnError(errors.New("could not serialize access"))
	mock.ExpectRollback()

	// Act
	_, err := cardRepo.Move(context.Background(), cardID, source, dest, 1)

	// Assert
	assert.ErrorIs(t, err, apperror.ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_MoveDetectsConcurrentMove(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)
	cardID, source, dest, elsewhere := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = `).
		WillReturnRows(sqlmock.NewRows(cardColumns).AddRow(cardID.String(), source.String(), "t", "", 0, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).WillReturnRows(columnRow(source, uuid.New()))
	mock.ExpectQuery(`SELECT \* FROM "columns" WHERE id = .* FOR UPDATE`).WillReturnRows(columnRow(dest, uuid.New()))
	mock.ExpectQuery(`SELECT \* FROM "cards" WHERE id = `).
		WillReturnRows(sqlmock.NewRows(cardColumns).AddRow(cardID.String(), elsewhere.String(), "t", "", 0, time.Now()))
	mock.ExpectRollback()

	// Act
	_, err := cardRepo.Move(context.Background(), cardID, source, dest, 0)

	// Assert
	assert.ErrorIs(t, err, repository.ErrCardMoved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateRollsBackWhenColumnInsertFails(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "boards"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "columns"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "columns"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	// Act
	_, err := boardRepo.Create(context.Background(), model.Board{Name: "b"}, model.DefaultColumnNames())

	// Assert
	assert.ErrorIs(t, err, apperror.ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnRepository_UnreachableStore(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	mock.ExpectBegin().WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	// Act
	err := columnRepo.Delete(context.Background(), uuid.New())

	// Assert
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetAllQueryError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards" ORDER BY created_at DESC`).
		WillReturnError(assert.AnError)

	_, err := boardRepo.GetAll(context.Background())

	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
