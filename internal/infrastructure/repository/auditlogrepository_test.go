package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
)

func appendRecord(t *testing.T, repo *AuditLogRepository, action string, at time.Time) *audit.Record {
	t.Helper()
	rec, err := audit.NewRecord(nil, action, "test entry", at)
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), rec))
	return rec
}

func TestAuditLogRepository_AppendAndList(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAuditLogRepository(gdb)
	ctx := context.Background()

	userID := uint(7)
	rec, err := audit.NewRecord(&userID, audit.ActionUnverifiedManualDelete, "Deleted unverified account bob", testNow)
	require.NoError(t, err)
	rec.IPAddress = "10.0.0.1"
	rec.Metadata = map[string]any{"usernames": []any{"bob"}}
	require.NoError(t, repo.Append(ctx, rec))
	appendRecord(t, repo, audit.ActionAuditLogPrune, testNow.Add(time.Minute))

	list, err := repo.List(ctx, audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, audit.ActionAuditLogPrune, list[0].Action)
	require.NotNil(t, list[1].UserID)
	assert.Equal(t, uint(7), *list[1].UserID)
	assert.Equal(t, []any{"bob"}, list[1].Metadata["usernames"])

	filtered, err := repo.List(ctx, audit.ListFilter{Action: audit.ActionUnverifiedManualDelete, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestAuditLogRepository_Prune(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAuditLogRepository(gdb)
	ctx := context.Background()
	cutoff := testNow.AddDate(0, 0, -60)

	appendRecord(t, repo, "old", testNow.AddDate(0, 0, -61))
	appendRecord(t, repo, "kept", testNow.AddDate(0, 0, -59))

	count, err := repo.CountBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	deleted, err := repo.DeleteBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	left, err := repo.List(ctx, audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "kept", left[0].Action)
}
