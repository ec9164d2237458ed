package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnService interface {
	List(ctx context.Context) ([]model.Column, error)
	Get(ctx context.Context, id uuid.UUID) (model.ColumnWithCards, error)
	Create(ctx context.Context, boardID uuid.UUID, name string) (model.Column, error)
	Update(ctx context.Context, id uuid.UUID, update service.ColumnUpdate) (model.ColumnReorder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CardLister interface {
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
}

type ColumnHandler struct {
	columns ColumnService
	cards   CardLister
}

func NewColumnHandler(columns ColumnService, cards CardLister) *ColumnHandler {
	return &ColumnHandler{columns: columns, cards: cards}
}

type CreateColumnRequest struct {
	BoardID string `json:"board_id" binding:"required,uuid"`
	Name    string `json:"name" binding:"required"`
}

// UpdateColumnRequest renames and/or repositions a column. Omitted fields are kept.
type UpdateColumnRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position" binding:"omitempty,gte=0"`
}

// Create godoc
// @Summary  Append a column to a board
// @Tags     Columns
// @Accept   json
// @Produce  json
// @Param    column  body      CreateColumnRequest  true  "Column"
// @Success  201     {object}  ColumnResponse
// @Failure  400     {object}  ErrorResponse
// @Failure  404     {object}  ErrorResponse
// @Router   /api/columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	var req CreateColumnRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	column, err := h.columns.Create(c.Request.Context(), uuid.MustParse(req.BoardID), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

// GetAll godoc
// @Summary  List every column, grouped by board in position order
// @Tags     Columns
// @Produce  json
// @Success  200  {array}  ColumnResponse
// @Router   /api/columns [get]
func (h *ColumnHandler) GetAll(c *gin.Context) {
	columns, err := h.columns.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toColumnResponses(columns))
}

// GetByID godoc
// @Summary  Get a column with its cards
// @Tags     Columns
// @Produce  json
// @Param    id   path      string  true  "Column ID"
// @Success  200  {object}  ColumnDetailResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/columns/{id} [get]
func (h *ColumnHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "column")
	if !ok {
		return
	}

	column, err := h.columns.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toColumnDetailResponse(column))
}

// GetCards godoc
// @Summary  List the cards of a column in order
// @Tags     Cards
// @Produce  json
// @Param    id   path     string  true  "Column ID"
// @Success  200  {array}  CardResponse
// @Failure  404  {object} ErrorResponse
// @Router   /api/columns/{id}/cards [get]
func (h *ColumnHandler) GetCards(c *gin.Context) {
	id, ok := pathID(c, "column")
	if !ok {
		return
	}

	cards, err := h.cards.ListByColumn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponses(cards))
}

// Update godoc
// @Summary      Rename or reposition a column
// @Description  A position past the last column places the column last.
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Column ID"
// @Param        column  body      UpdateColumnRequest  true  "Changes"
// @Success      200     {object}  ColumnReorderResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/columns/{id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "column")
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.columns.Update(c.Request.Context(), id, service.ColumnUpdate{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ColumnReorderResponse{
		Column:  toColumnResponse(result.Column),
		Columns: toColumnResponses(result.Columns),
	})
}

// Delete godoc
// @Summary  Delete a column and its cards
// @Tags     Columns
// @Param    id  path  string  true  "Column ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "column")
	if !ok {
		return
	}

	if err := h.columns.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	noContent(c)
}
