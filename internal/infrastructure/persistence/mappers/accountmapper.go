package mappers

import (
	"fmt"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type AccountMapper interface {
	ToEntity(model *models.AccountModel) (*account.Account, error)
	ToModel(entity *account.Account) *models.AccountModel
	ToEntities(models []*models.AccountModel) ([]*account.Account, error)
}

type AccountMapperImpl struct{}

// NewAccountMapper creates a new account mapper.
func NewAccountMapper() AccountMapper {
	return &AccountMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *AccountMapperImpl) ToEntity(model *models.AccountModel) (*account.Account, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := account.ReconstructAccount(
		model.ID,
		model.Username,
		model.Email,
		model.PasswordHash,
		authorization.ParseUserRole(model.Role),
		model.IsVerified,
		model.VerificationToken,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct account entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *AccountMapperImpl) ToModel(entity *account.Account) *models.AccountModel {
	if entity == nil {
		return nil
	}
	return &models.AccountModel{
		ID:                entity.ID(),
		Username:          entity.Username(),
		Email:             entity.Email(),
		PasswordHash:      entity.PasswordHash(),
		Role:              entity.Role().String(),
		IsVerified:        entity.IsVerified(),
		VerificationToken: entity.VerificationToken(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func (m *AccountMapperImpl) ToEntities(rows []*models.AccountModel) ([]*account.Account, error) {
	return mapper.MapSlicePtrWithID(rows, m.ToEntity, func(r *models.AccountModel) uint { return r.ID })
}
