package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	utils.SuccessResponse(c, http.StatusOK, "ok", gin.H{"status": "ok"})
}
