package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type AuditMapper interface {
	ToEntity(model *models.AuditLogModel) (*audit.Record, error)
	ToModel(entity *audit.Record) (*models.AuditLogModel, error)
	ToEntities(rows []*models.AuditLogModel) ([]*audit.Record, error)
}

type AuditMapperImpl struct{}

// NewAuditMapper creates a new audit mapper.
func NewAuditMapper() AuditMapper {
	return &AuditMapperImpl{}
}

// ToEntity converts a persistence model to a domain record.
func (m *AuditMapperImpl) ToEntity(model *models.AuditLogModel) (*audit.Record, error) {
	if model == nil {
		return nil, nil
	}

	rec := &audit.Record{
		ID:          model.ID,
		UserID:      model.UserID,
		Action:      model.Action,
		Description: model.Description,
		IPAddress:   model.IPAddress,
		UserAgent:   model.UserAgent,
		CreatedAt:   model.CreatedAt.UTC(),
	}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode audit metadata: %w", err)
		}
	}
	return rec, nil
}

// ToModel converts a domain record to a persistence model.
func (m *AuditMapperImpl) ToModel(entity *audit.Record) (*models.AuditLogModel, error) {
	model := &models.AuditLogModel{
		ID:          entity.ID,
		UserID:      entity.UserID,
		Action:      entity.Action,
		Description: entity.Description,
		IPAddress:   entity.IPAddress,
		UserAgent:   entity.UserAgent,
		CreatedAt:   entity.CreatedAt,
	}
	if len(entity.Metadata) > 0 {
		raw, err := json.Marshal(entity.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode audit metadata: %w", err)
		}
		model.Metadata = datatypes.JSON(raw)
	}
	return model, nil
}

func (m *AuditMapperImpl) ToEntities(rows []*models.AuditLogModel) ([]*audit.Record, error) {
	return mapper.MapSlicePtrWithID(rows, m.ToEntity, func(r *models.AuditLogModel) uint { return r.ID })
}
