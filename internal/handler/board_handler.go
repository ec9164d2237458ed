package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardService interface {
	List(ctx context.Context) ([]model.Board, error)
	Get(ctx context.Context, id uuid.UUID) (model.BoardWithColumns, error)
	Create(ctx context.Context, name string) (model.BoardWithColumns, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (model.Board, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ColumnLister interface {
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
}

type BoardHandler struct {
	boards  BoardService
	columns ColumnLister
}

func NewBoardHandler(boards BoardService, columns ColumnLister) *BoardHandler {
	return &BoardHandler{boards: boards, columns: columns}
}

type BoardRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create godoc
// @Summary      Create a board
// @Description  Creates a board with the columns "To Do", "In Progress" and "Done".
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        board  body      BoardRequest  true  "Board"
// @Success      201    {object}  BoardDetailResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req BoardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	board, err := h.boards.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBoardDetailResponse(board))
}

// GetAll godoc
// @Summary  List boards, newest first
// @Tags     Boards
// @Produce  json
// @Success  200  {array}  BoardResponse
// @Router   /api/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i, board := range boards {
		response[i] = toBoardResponse(board)
	}
	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a board with its columns and cards
// @Tags     Boards
// @Produce  json
// @Param    id   path      string  true  "Board ID"
// @Success  200  {object}  BoardDetailResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "board")
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardDetailResponse(board))
}

// GetColumns godoc
// @Summary  List the columns of a board in order
// @Tags     Columns
// @Produce  json
// @Param    id   path     string  true  "Board ID"
// @Success  200  {array}  ColumnResponse
// @Failure  404  {object} ErrorResponse
// @Router   /api/boards/{id}/columns [get]
func (h *BoardHandler) GetColumns(c *gin.Context) {
	id, ok := pathID(c, "board")
	if !ok {
		return
	}

	columns, err := h.columns.ListByBoard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toColumnResponses(columns))
}

// Update godoc
// @Summary  Rename a board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    id     path      string        true  "Board ID"
// @Param    board  body      BoardRequest  true  "New name"
// @Success  200    {object}  BoardResponse
// @Failure  400    {object}  ErrorResponse
// @Failure  404    {object}  ErrorResponse
// @Router   /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "board")
	if !ok {
		return
	}

	var req BoardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	board, err := h.boards.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Delete godoc
// @Summary  Delete a board with its columns and cards
// @Tags     Boards
// @Param    id  path  string  true  "Board ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "board")
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	noContent(c)
}
