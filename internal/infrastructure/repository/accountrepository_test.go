package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()

	acc, token, err := account.NewAccount("ana", "ana@example.com", "hash", authorization.RoleCustomer, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))
	assert.NotZero(t, acc.ID())

	found, err := repo.GetByVerificationToken(ctx, token.Value())
	require.NoError(t, err)
	assert.Equal(t, acc.ID(), found.ID())
	assert.True(t, testNow.Equal(found.CreatedAt()))

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "Ana@Example.COM")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, " ana ", "other@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestAccountRepository_UpdateClearsToken(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()

	acc, token, err := account.NewAccount("ben", "ben@example.com", "hash", authorization.RoleCustomer, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))

	require.NoError(t, acc.Verify(token.Value(), account.NewWindow(24*time.Hour), testNow.Add(time.Hour)))
	require.NoError(t, repo.Update(ctx, acc))

	var row models.AccountModel
	require.NoError(t, gdb.First(&row, acc.ID()).Error)
	assert.True(t, row.IsVerified)
	assert.Nil(t, row.VerificationToken)
}

func TestAccountRepository_CountUnverified(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	cutoff := testNow.Add(-24 * time.Hour)

	seedAccount(t, gdb, "old", "customer", false, testNow.Add(-30*time.Hour))
	seedAccount(t, gdb, "olddev", "developer", false, testNow.Add(-30*time.Hour))
	seedAccount(t, gdb, "fresh", "customer", false, testNow.Add(-1*time.Hour))
	seedAccount(t, gdb, "verified", "customer", true, testNow.Add(-90*time.Hour))

	counts, err := repo.CountUnverified(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(1), counts.Expired)
	assert.Equal(t, int64(1), counts.Recent)
}

func TestAccountRepository_ListUnverified(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()
	cutoff := testNow.Add(-24 * time.Hour)

	seedAccount(t, gdb, "old", "customer", false, testNow.Add(-30*time.Hour))
	seedAccount(t, gdb, "fresh", "customer", false, testNow.Add(-1*time.Hour))
	seedAccount(t, gdb, "verified", "customer", true, testNow.Add(-90*time.Hour))

	all, err := repo.ListUnverified(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "old", all[0].Username())

	expiredOnly, err := repo.ListUnverified(ctx, &cutoff)
	require.NoError(t, err)
	require.Len(t, expiredOnly, 1)
	assert.Equal(t, "old", expiredOnly[0].Username())
}

func TestAccountRepository_ListReminderCandidates(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	window := account.NewWindow(24 * time.Hour)

	seedAccount(t, gdb, "edge", "customer", false, testNow.Add(-22*time.Hour))
	seedAccount(t, gdb, "young", "customer", false, testNow.Add(-22*time.Hour+time.Second))
	seedAccount(t, gdb, "dev", "developer", false, testNow.Add(-23*time.Hour))
	seedAccount(t, gdb, "gone", "customer", false, testNow.Add(-24*time.Hour))

	after, atOrBefore := window.ReminderRange(testNow, 2*time.Hour)
	got, err := repo.ListReminderCandidates(context.Background(), after, atOrBefore)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "edge", got[0].Username())
}

func TestAccountRepository_DeleteExpired(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()
	cutoff := testNow.Add(-24 * time.Hour)

	seedAccount(t, gdb, "justexpired", "customer", false, cutoff.Add(-time.Second))
	seedAccount(t, gdb, "dev", "developer", false, testNow.Add(-100*time.Hour))
	seedAccount(t, gdb, "verified", "customer", true, testNow.Add(-100*time.Hour))
	seedAccount(t, gdb, "fresh", "customer", false, testNow.Add(-time.Hour))

	deleted, err := repo.DeleteExpired(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "justexpired", deleted[0].Username())

	var remaining int64
	require.NoError(t, gdb.Model(&models.AccountModel{}).Count(&remaining).Error)
	assert.Equal(t, int64(3), remaining)

	again, err := repo.DeleteExpired(ctx, cutoff)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestAccountRepository_DeleteUnverified(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()

	pending := seedAccount(t, gdb, "pending", "customer", false, testNow)
	verified := seedAccount(t, gdb, "verified", "customer", true, testNow)

	ok, err := repo.DeleteUnverified(ctx, verified.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteUnverified(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteUnverified(ctx, pending.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
