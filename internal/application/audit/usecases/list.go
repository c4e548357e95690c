package usecases

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type AuditRecordDTO struct {
	ID          uint           `json:"id"`
	UserID      *uint          `json:"user_id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	IPAddress   string         `json:"ip_address,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

type ListAuditLogsQuery struct {
	Action string
	Limit  int
}

type ListAuditLogsUseCase struct {
	repo   audit.Repository
	logger logger.Interface
}

// NewListAuditLogsUseCase creates a new list audit logs use case.
func NewListAuditLogsUseCase(repo audit.Repository, logger logger.Interface) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{repo: repo, logger: logger}
}

// Execute returns the newest records first, optionally filtered by action.
func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, query ListAuditLogsQuery) ([]AuditRecordDTO, error) {
	records, err := uc.repo.List(ctx, audit.ListFilter{Action: query.Action, Limit: query.Limit})
	if err != nil {
		uc.logger.Errorw("failed to list audit records", "error", err)
		return nil, err
	}

	return mapper.MapSlice(records, func(r *audit.Record) AuditRecordDTO {
		return AuditRecordDTO{
			ID:          r.ID,
			UserID:      r.UserID,
			Action:      r.Action,
			Description: r.Description,
			IPAddress:   r.IPAddress,
			UserAgent:   r.UserAgent,
			Metadata:    r.Metadata,
			CreatedAt:   biztime.FormatRFC3339(r.CreatedAt),
		}
	}), nil
}
