package usecases

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// AuditRecorder is the write port the lifecycle use cases depend on.
type AuditRecorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, description string, metadata map[string]any) error
}

// Recorder appends audit records stamped with the actor and the clock.
type Recorder struct {
	repo   audit.Repository
	clock  biztime.Clock
	logger logger.Interface
}

// NewRecorder creates the audit log writer.
func NewRecorder(repo audit.Repository, clock biztime.Clock, logger logger.Interface) *Recorder {
	return &Recorder{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// Record writes one record. Failures are logged here and returned; batch
// callers decide whether to carry on.
func (r *Recorder) Record(ctx context.Context, actor authorization.Actor, action, description string, metadata map[string]any) error {
	rec, err := audit.NewRecord(actor.UserID, action, description, r.clock.Now())
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	rec.IPAddress = actor.IPAddress
	rec.UserAgent = truncate(actor.UserAgent, 255)
	rec.Metadata = metadata

	if err := r.repo.Append(ctx, rec); err != nil {
		r.logger.Errorw("failed to write audit record",
			"action", action,
			"actor", actor.Label(),
			"error", err,
		)
		return err
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
