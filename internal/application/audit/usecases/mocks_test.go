package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
)

type memoryAuditRepository struct {
	mu        sync.Mutex
	records   []*audit.Record
	nextID    uint
	AppendErr error
	CountErr  error
	DeleteErr error
}

func (m *memoryAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, record)
	return nil
}

func (m *memoryAuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*audit.Record{}
	for i := len(m.records) - 1; i >= 0; i-- {
		if filter.Action == "" || m.records[i].Action == filter.Action {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *memoryAuditRepository) CountBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	var n int64
	for _, r := range m.records {
		if r.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (m *memoryAuditRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	kept := m.records[:0]
	var n int64
	for _, r := range m.records {
		if r.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return n, nil
}

func (m *memoryAuditRepository) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Action)
	}
	return out
}

type mockRunGuard struct {
	claimed  map[string]bool
	ClaimErr error
	released []string
}

func newMockRunGuard() *mockRunGuard {
	return &mockRunGuard{claimed: map[string]bool{}}
}

func (g *mockRunGuard) Claim(ctx context.Context, job, day string) (bool, error) {
	if g.ClaimErr != nil {
		return false, g.ClaimErr
	}
	key := job + ":" + day
	if g.claimed[key] {
		return false, nil
	}
	g.claimed[key] = true
	return true, nil
}

func (g *mockRunGuard) Release(ctx context.Context, job, day string) error {
	key := job + ":" + day
	delete(g.claimed, key)
	g.released = append(g.released, key)
	return nil
}
