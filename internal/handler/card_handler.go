package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardService interface {
	List(ctx context.Context) ([]model.Card, error)
	Get(ctx context.Context, id uuid.UUID) (model.Card, error)
	Create(ctx context.Context, columnID uuid.UUID, title string, description *string) (model.Card, error)
	Update(ctx context.Context, id uuid.UUID, update service.CardUpdate) (model.Card, error)
	Move(ctx context.Context, id, sourceColumnID, destColumnID uuid.UUID, position int) (model.CardMove, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CardHandler struct {
	cards CardService
}

func NewCardHandler(cards CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type CreateCardRequest struct {
	ColumnID    string  `json:"column_id" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// UpdateCardRequest changes a card. A position reorders it inside its column.
type UpdateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position" binding:"omitempty,gte=0"`
}

type MoveCardRequest struct {
	SourceColumnID      string `json:"source_column_id" binding:"required,uuid"`
	DestinationColumnID string `json:"destination_column_id" binding:"required,uuid"`
	Position            *int   `json:"position" binding:"required,gte=0"`
}

// Create godoc
// @Summary  Append a card to a column
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    card  body      CreateCardRequest  true  "Card"
// @Success  201   {object}  CardResponse
// @Failure  400   {object}  ErrorResponse
// @Failure  404   {object}  ErrorResponse
// @Router   /api/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	var req CreateCardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	card, err := h.cards.Create(c.Request.Context(), uuid.MustParse(req.ColumnID), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCardResponse(card))
}

// GetAll godoc
// @Summary  List every card by column and position
// @Tags     Cards
// @Produce  json
// @Success  200  {array}  CardResponse
// @Router   /api/cards [get]
func (h *CardHandler) GetAll(c *gin.Context) {
	cards, err := h.cards.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponses(cards))
}

// GetByID godoc
// @Summary  Get a card
// @Tags     Cards
// @Produce  json
// @Param    id   path      string  true  "Card ID"
// @Success  200  {object}  CardResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/cards/{id} [get]
func (h *CardHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "card")
	if !ok {
		return
	}

	card, err := h.cards.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

// Update godoc
// @Summary  Update a card's title, description or position in its column
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id    path      string             true  "Card ID"
// @Param    card  body      UpdateCardRequest  true  "Changes"
// @Success  200   {object}  CardResponse
// @Failure  400   {object}  ErrorResponse
// @Failure  404   {object}  ErrorResponse
// @Router   /api/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "card")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	card, err := h.cards.Update(c.Request.Context(), id, service.CardUpdate{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

// Move godoc
// @Summary      Move a card within or across columns
// @Description  source_column_id must be the card's current column. A position past the end places the card last.
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Card ID"
// @Param        move  body      MoveCardRequest  true  "Target"
// @Success      200   {object}  CardMoveResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/cards/{id}/move [put]
func (h *CardHandler) Move(c *gin.Context) {
	id, ok := pathID(c, "card")
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.cards.Move(c.Request.Context(), id,
		uuid.MustParse(req.SourceColumnID),
		uuid.MustParse(req.DestinationColumnID),
		*req.Position,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CardMoveResponse{
		Card:        toCardResponse(result.Card),
		Source:      toCardResponses(result.Source),
		Destination: toCardResponses(result.Destination),
	})
}

// Delete godoc
// @Summary  Delete a card
// @Tags     Cards
// @Param    id  path  string  true  "Card ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "card")
	if !ok {
		return
	}

	if err := h.cards.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	noContent(c)
}
