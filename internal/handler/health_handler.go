package handler

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/apperror"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// @Summary  Report whether the data store is reachable
// @Tags     Health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  ErrorResponse
// @Router   /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		respondError(c, apperror.StoreUnavailable(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
