package handlers

import (
	"context"

	accountusecases "github.com/inkwell-print/inkwell/internal/application/account/usecases"
	auditusecases "github.com/inkwell-print/inkwell/internal/application/audit/usecases"
	"github.com/inkwell-print/inkwell/internal/application/maintenance"
	ticketdto "github.com/inkwell-print/inkwell/internal/application/ticket/dto"
	ticketusecases "github.com/inkwell-print/inkwell/internal/application/ticket/usecases"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
)

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd accountusecases.RegisterCommand) (*accountusecases.RegisterResult, error)
}

type VerifyEmailExecutor interface {
	Execute(ctx context.Context, cmd accountusecases.VerifyEmailCommand) (*accountusecases.VerifyEmailResult, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd accountusecases.LoginCommand) (*accountusecases.LoginResult, error)
}

type UnverifiedStatsExecutor interface {
	Execute(ctx context.Context) (*accountusecases.UnverifiedStatsResult, error)
}

type ListUnverifiedExecutor interface {
	Execute(ctx context.Context, query accountusecases.ListUnverifiedQuery) ([]accountusecases.UnverifiedAccountDTO, error)
}

type ManualCleanupExecutor interface {
	Manual(ctx context.Context, actor authorization.Actor) (*accountusecases.CleanupResult, error)
}

type SendRemindersExecutor interface {
	Execute(ctx context.Context, cmd accountusecases.SendRemindersCommand) (*accountusecases.SendRemindersResult, error)
}

type DeleteAccountExecutor interface {
	Execute(ctx context.Context, cmd accountusecases.DeleteAccountCommand) (*accountusecases.DeleteAccountResult, error)
}

type OpenConversationExecutor interface {
	Execute(ctx context.Context, cmd ticketusecases.OpenConversationCommand) (*ticketusecases.OpenConversationResult, error)
}

type PostMessageExecutor interface {
	Execute(ctx context.Context, cmd ticketusecases.PostMessageCommand) (*ticketdto.MessageDTO, error)
}

type FindCandidatesExecutor interface {
	Execute(ctx context.Context, anonymousOnly bool) ([]ticketdto.CandidateDTO, error)
}

type AutoCloseExecutor interface {
	Execute(ctx context.Context, cmd ticketusecases.AutoCloseCommand) (*ticketusecases.AutoCloseResult, error)
}

type ListAuditLogsExecutor interface {
	Execute(ctx context.Context, query auditusecases.ListAuditLogsQuery) ([]auditusecases.AuditRecordDTO, error)
}

type JobRunner interface {
	Run(ctx context.Context, job string, opts maintenance.Options) *maintenance.JobReport
}
