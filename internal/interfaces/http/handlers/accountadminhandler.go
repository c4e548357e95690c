package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountusecases "github.com/inkwell-print/inkwell/internal/application/account/usecases"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

// LeadHoursCap bounds the reminder lead an administrator may request. A
// lead equal to the TTL would remind accounts the moment they register.
func LeadHoursCap(verificationTTL time.Duration) int {
	hours := int(verificationTTL/time.Hour) - 1
	if hours < 1 {
		return 1
	}
	return hours
}

type AccountAdminHandler struct {
	statsUC      UnverifiedStatsExecutor
	listUC       ListUnverifiedExecutor
	cleanupUC    ManualCleanupExecutor
	remindersUC  SendRemindersExecutor
	deleteUC     DeleteAccountExecutor
	maxLeadHours int
	logger       logger.Interface
}

func NewAccountAdminHandler(
	statsUC UnverifiedStatsExecutor,
	listUC ListUnverifiedExecutor,
	cleanupUC ManualCleanupExecutor,
	remindersUC SendRemindersExecutor,
	deleteUC DeleteAccountExecutor,
	maxLeadHours int,
	logger logger.Interface,
) *AccountAdminHandler {
	return &AccountAdminHandler{
		statsUC:      statsUC,
		listUC:       listUC,
		cleanupUC:    cleanupUC,
		remindersUC:  remindersUC,
		deleteUC:     deleteUC,
		maxLeadHours: maxLeadHours,
		logger:       logger,
	}
}

// GetStats handles GET /admin/accounts/unverified/stats
func (h *AccountAdminHandler) GetStats(c *gin.Context) {
	result, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListUnverified handles GET /admin/accounts/unverified?expired_only=
func (h *AccountAdminHandler) ListUnverified(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), accountusecases.ListUnverifiedQuery{
		ExpiredOnly: utils.QueryBool(c, "expired_only"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"accounts": result, "count": len(result)})
}

// Cleanup handles POST /admin/accounts/unverified/cleanup
func (h *AccountAdminHandler) Cleanup(c *gin.Context) {
	actor := authorization.ActorFromContext(c)
	result, err := h.cleanupUC.Manual(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.logger.Infow("manual cleanup triggered", "actor", actor.Label(), "deleted_count", result.DeletedCount)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SendReminders handles POST /admin/accounts/unverified/reminders?lead_hours=
func (h *AccountAdminHandler) SendReminders(c *gin.Context) {
	leadHours, err := utils.QueryInt(c, "lead_hours", 0, h.maxLeadHours)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.remindersUC.Execute(c.Request.Context(), accountusecases.SendRemindersCommand{
		Actor:     authorization.ActorFromContext(c),
		LeadHours: leadHours,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteAccount handles DELETE /admin/accounts/:id
func (h *AccountAdminHandler) DeleteAccount(c *gin.Context) {
	accountID, err := utils.ParseUintParam(c, "id", "account")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteUC.Execute(c.Request.Context(), accountusecases.DeleteAccountCommand{
		Actor:     authorization.ActorFromContext(c),
		AccountID: accountID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Account deleted", result)
}
