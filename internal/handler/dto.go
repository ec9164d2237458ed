package handler

import (
	"time"

	"taskboard/internal/model"
)

type BoardResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BoardDetailResponse struct {
	BoardResponse
	Columns []ColumnDetailResponse `json:"columns"`
}

type ColumnResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type ColumnDetailResponse struct {
	ColumnResponse
	Cards []CardResponse `json:"cards"`
}

// ColumnReorderResponse carries the updated column and its board's columns in order.
type ColumnReorderResponse struct {
	Column  ColumnResponse   `json:"column"`
	Columns []ColumnResponse `json:"columns"`
}

type CardResponse struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// CardMoveResponse carries the moved card and both affected columns in order.
type CardMoveResponse struct {
	Card        CardResponse   `json:"card"`
	Source      []CardResponse `json:"source_cards"`
	Destination []CardResponse `json:"destination_cards"`
}

func toBoardResponse(b model.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}

func toBoardDetailResponse(b model.BoardWithColumns) BoardDetailResponse {
	columns := make([]ColumnDetailResponse, len(b.Columns))
	for i, c := range b.Columns {
		columns[i] = toColumnDetailResponse(c)
	}
	return BoardDetailResponse{BoardResponse: toBoardResponse(b.Board), Columns: columns}
}

func toColumnResponse(c model.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID.String(),
		BoardID:   c.BoardID.String(),
		Name:      c.Name,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
	}
}

func toColumnResponses(columns []model.Column) []ColumnResponse {
	out := make([]ColumnResponse, len(columns))
	for i, c := range columns {
		out[i] = toColumnResponse(c)
	}
	return out
}

func toColumnDetailResponse(c model.ColumnWithCards) ColumnDetailResponse {
	return ColumnDetailResponse{ColumnResponse: toColumnResponse(c.Column), Cards: toCardResponses(c.Cards)}
}

func toCardResponse(c model.Card) CardResponse {
	return CardResponse{
		ID:          c.ID.String(),
		ColumnID:    c.ColumnID.String(),
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
	}
}

func toCardResponses(cards []model.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = toCardResponse(c)
	}
	return out
}
