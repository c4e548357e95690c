package handlers

import (
	"github.com/gin-gonic/gin"

	ticketusecases "github.com/inkwell-print/inkwell/internal/application/ticket/usecases"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

// SupportHandler serves the public support widget. Authentication is
// optional; staff tokens mark replies as admin replies.
type SupportHandler struct {
	openUC OpenConversationExecutor
	postUC PostMessageExecutor
	logger logger.Interface
}

func NewSupportHandler(openUC OpenConversationExecutor, postUC PostMessageExecutor, logger logger.Interface) *SupportHandler {
	return &SupportHandler{
		openUC: openUC,
		postUC: postUC,
		logger: logger,
	}
}

// OpenConversation handles POST /support/conversations
func (h *SupportHandler) OpenConversation(c *gin.Context) {
	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.openUC.Execute(c.Request.Context(), ticketusecases.OpenConversationCommand{
		Actor:         authorization.ActorFromContext(c),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Subject:       req.Subject,
		Body:          req.Message,
		Anonymous:     req.Anonymous,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Conversation opened")
}

// PostMessage handles POST /support/conversations/:id/messages
func (h *SupportHandler) PostMessage(c *gin.Context) {
	conversationID := c.Param("id")
	if conversationID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("conversation ID is required"))
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.postUC.Execute(c.Request.Context(), ticketusecases.PostMessageCommand{
		Actor:          authorization.ActorFromContext(c),
		ConversationID: conversationID,
		Body:           req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message posted")
}
