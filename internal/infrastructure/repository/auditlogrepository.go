package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/mappers"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/constants"
	db "github.com/inkwell-print/inkwell/internal/shared/db"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

type AuditLogRepository struct {
	db     *gorm.DB
	mapper mappers.AuditMapper
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		mapper: mappers.NewAuditMapper(),
	}
}

// Append inserts one record.
func (r *AuditLogRepository) Append(ctx context.Context, record *audit.Record) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return errors.NewStoreUnavailableError("failed to write audit record", err)
	}
	record.ID = model.ID
	return nil
}

// List returns records newest first.
func (r *AuditLogRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Record, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	var rows []*models.AuditLogModel
	query := db.GetTxFromContext(ctx, r.db)
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list audit records", err)
	}
	return r.mapper.ToEntities(rows)
}

// CountBefore counts records created before cutoff.
func (r *AuditLogRepository) CountBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.AuditLogModel{}).
		Scopes(db.CreatedBefore(cutoff.UTC())).
		Count(&count).Error; err != nil {
		return 0, errors.NewStoreUnavailableError("failed to count audit records", err)
	}
	return count, nil
}

// DeleteBefore deletes records created before cutoff and returns how many
// were removed.
func (r *AuditLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Scopes(db.CreatedBefore(cutoff.UTC())).
		Delete(&models.AuditLogModel{})
	if result.Error != nil {
		return 0, errors.NewStoreUnavailableError("failed to prune audit records", result.Error)
	}
	return result.RowsAffected, nil
}
