package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ticketusecases "github.com/inkwell-print/inkwell/internal/application/ticket/usecases"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

type TicketAdminHandler struct {
	candidatesUC FindCandidatesExecutor
	autoCloseUC  AutoCloseExecutor
	logger       logger.Interface
}

func NewTicketAdminHandler(candidatesUC FindCandidatesExecutor, autoCloseUC AutoCloseExecutor, logger logger.Interface) *TicketAdminHandler {
	return &TicketAdminHandler{
		candidatesUC: candidatesUC,
		autoCloseUC:  autoCloseUC,
		logger:       logger,
	}
}

// ListCandidates handles GET /admin/tickets/autoclose-candidates?anonymous=
func (h *TicketAdminHandler) ListCandidates(c *gin.Context) {
	result, err := h.candidatesUC.Execute(c.Request.Context(), utils.QueryBool(c, "anonymous"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"candidates": result, "count": len(result)})
}

// AutoClose handles POST /admin/tickets/:id/autoclose. Staff may close a
// conversation before it becomes eligible.
func (h *TicketAdminHandler) AutoClose(c *gin.Context) {
	conversationID := c.Param("id")
	if conversationID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("conversation ID is required"))
		return
	}

	result, err := h.autoCloseUC.Execute(c.Request.Context(), ticketusecases.AutoCloseCommand{
		Actor:           authorization.ActorFromContext(c),
		ConversationID:  conversationID,
		RequireEligible: utils.QueryBool(c, "eligible_only"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Conversation closed"
	if !result.Closed {
		message = "Conversation was already solved"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}
