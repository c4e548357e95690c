package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/mappers"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	db "github.com/inkwell-print/inkwell/internal/shared/db"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

type AccountRepository struct {
	db     *gorm.DB
	mapper mappers.AccountMapper
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{
		db:     db,
		mapper: mappers.NewAccountMapper(),
	}
}

// unprotected excludes roles that cleanup must never touch.
func unprotected() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("role <> ?", authorization.RoleDeveloper.String())
	}
}

// expired matches unverified, unprotected accounts created before cutoff.
func expired(cutoff time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return unprotected()(db.CreatedBefore(cutoff)(db.Unverified()(tx)))
	}
}

// Create inserts the account and assigns its ID.
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return errors.NewStoreUnavailableError("failed to create account", err)
	}
	return a.SetID(model.ID)
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*account.Account, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByVerificationToken retrieves the account holding token.
func (r *AccountRepository) GetByVerificationToken(ctx context.Context, token string) (*account.Account, error) {
	return r.first(ctx, "verification_token = ?", token)
}

// GetByLogin retrieves an account by username or email.
func (r *AccountRepository) GetByLogin(ctx context.Context, login string) (*account.Account, error) {
	login = strings.TrimSpace(login)
	return r.first(ctx, "username = ? OR email = ?", login, strings.ToLower(login))
}

func (r *AccountRepository) first(ctx context.Context, query string, args ...interface{}) (*account.Account, error) {
	var model models.AccountModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("account not found")
		}
		return nil, errors.NewStoreUnavailableError("failed to find account", err)
	}
	return r.mapper.ToEntity(&model)
}

// ExistsByUsernameOrEmail reports whether either value is already taken.
// Both are compared in their stored form.
func (r *AccountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.AccountModel{}).
		Where("username = ? OR email = ?", account.NormalizeUsername(username), account.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, errors.NewStoreUnavailableError("failed to check account existence", err)
	}
	return count > 0, nil
}

// Update saves the mutable fields of an account.
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.AccountModel{}).
		Where("id = ?", a.ID()).
		Updates(map[string]interface{}{
			"email":              a.Email(),
			"password_hash":      a.PasswordHash(),
			"role":               a.Role().String(),
			"is_verified":        a.IsVerified(),
			"verification_token": a.VerificationToken(),
			"updated_at":         a.UpdatedAt(),
		})
	if result.Error != nil {
		return errors.NewStoreUnavailableError("failed to update account", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("account %d not found", a.ID()))
	}
	return nil
}

// CountUnverified counts unverified accounts in total and those created
// before cutoff.
func (r *AccountRepository) CountUnverified(ctx context.Context, cutoff time.Time) (account.UnverifiedCounts, error) {
	var counts account.UnverifiedCounts
	tx := db.GetTxFromContext(ctx, r.db)
	base := func() *gorm.DB { return tx.Model(&models.AccountModel{}) }

	if err := base().Scopes(db.Unverified()).Count(&counts.Total).Error; err != nil {
		return counts, errors.NewStoreUnavailableError("failed to count unverified accounts", err)
	}
	if err := base().Scopes(expired(cutoff)).Count(&counts.Expired).Error; err != nil {
		return counts, errors.NewStoreUnavailableError("failed to count expired accounts", err)
	}
	if err := base().Scopes(db.Unverified(), db.CreatedAtOrAfter(cutoff)).Count(&counts.Recent).Error; err != nil {
		return counts, errors.NewStoreUnavailableError("failed to count recent accounts", err)
	}
	return counts, nil
}

// ListUnverified lists unverified accounts, oldest first. A nil
// createdBefore lists all of them.
func (r *AccountRepository) ListUnverified(ctx context.Context, createdBefore *time.Time) ([]*account.Account, error) {
	var rows []*models.AccountModel
	query := db.GetTxFromContext(ctx, r.db).Scopes(db.Unverified())
	if createdBefore != nil {
		query = query.Scopes(db.CreatedBefore(*createdBefore))
	}

	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list unverified accounts", err)
	}
	return r.mapper.ToEntities(rows)
}

// ListReminderCandidates lists unprotected unverified accounts created in
// (after, atOrBefore].
func (r *AccountRepository) ListReminderCandidates(ctx context.Context, after, atOrBefore time.Time) ([]*account.Account, error) {
	var rows []*models.AccountModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Scopes(db.Unverified(), unprotected()).
		Where("created_at > ? AND created_at <= ?", after, atOrBefore).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list reminder candidates", err)
	}
	return r.mapper.ToEntities(rows)
}

// DeleteExpired snapshots the expired rows under a row lock and deletes
// them by id and the same predicate, so a concurrent run sees nothing left.
// sqlite has no FOR UPDATE; its single writer serializes the transaction.
func (r *AccountRepository) DeleteExpired(ctx context.Context, cutoff time.Time) ([]*account.Account, error) {
	var rows []*models.AccountModel

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		snapshot := tx.Scopes(expired(cutoff))
		if tx.Dialector.Name() != "sqlite" {
			snapshot = snapshot.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := snapshot.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		return tx.Scopes(expired(cutoff)).Where("id IN ?", ids).Delete(&models.AccountModel{}).Error
	})
	if err != nil {
		return nil, errors.NewStoreUnavailableError("failed to delete expired accounts", err)
	}
	return r.mapper.ToEntities(rows)
}

// DeleteUnverified deletes one account only while it is still unverified.
// It reports whether a row was removed.
func (r *AccountRepository) DeleteUnverified(ctx context.Context, id uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Where("id = ? AND is_verified = ?", id, false).Delete(&models.AccountModel{})
	if result.Error != nil {
		return false, errors.NewStoreUnavailableError("failed to delete account", result.Error)
	}
	return result.RowsAffected > 0, nil
}
