package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	auditusecases "github.com/inkwell-print/inkwell/internal/application/audit/usecases"
	"github.com/inkwell-print/inkwell/internal/application/maintenance"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/constants"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

// maxRetentionDays caps the retention override accepted from the API.
const maxRetentionDays = 3650

type MaintenanceHandler struct {
	runner       JobRunner
	auditUC      ListAuditLogsExecutor
	maxLeadHours int
	logger       logger.Interface
}

// NewMaintenanceHandler creates the job trigger and audit listing handler.
// maxLeadHours caps lead_hours the same way the reminders endpoint does.
func NewMaintenanceHandler(runner JobRunner, auditUC ListAuditLogsExecutor, maxLeadHours int, logger logger.Interface) *MaintenanceHandler {
	return &MaintenanceHandler{
		runner:       runner,
		auditUC:      auditUC,
		maxLeadHours: maxLeadHours,
		logger:       logger,
	}
}

// RunJob handles POST /admin/jobs/:name/run?retention_days=&lead_hours=&force=
func (h *MaintenanceHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	if !maintenance.IsKnown(name) {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError(fmt.Sprintf("unknown job %q", name)))
		return
	}

	retentionDays, err := utils.QueryInt(c, "retention_days", 0, maxRetentionDays)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	leadHours, err := utils.QueryInt(c, "lead_hours", 0, h.maxLeadHours)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report := h.runner.Run(c.Request.Context(), name, maintenance.Options{
		Actor:         authorization.ActorFromContext(c),
		RetentionDays: retentionDays,
		LeadHours:     leadHours,
		Force:         utils.QueryBool(c, "force"),
	})
	if !report.Success {
		utils.FailureWithData(c, errors.ErrorType(report.ErrorType), report.Error, report)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", report)
}

// ListAuditLogs handles GET /admin/audit-logs?action=&limit=
func (h *MaintenanceHandler) ListAuditLogs(c *gin.Context) {
	limit, err := utils.QueryInt(c, "limit", constants.DefaultPageSize, constants.MaxPageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.auditUC.Execute(c.Request.Context(), auditusecases.ListAuditLogsQuery{
		Action: c.Query("action"),
		Limit:  limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"records": result, "count": len(result)})
}
