package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// memoryAccountRepository applies the same predicates as the gorm repository.
type memoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[uint]*account.Account
	nextID   uint
	ListErr  error
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: map[uint]*account.Account{}}
}

func (m *memoryAccountRepository) seed(username string, role authorization.UserRole, verified bool, createdAt time.Time) *account.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	var token *string
	if !verified {
		v := fmt.Sprintf("%064d", m.nextID)
		token = &v
	}
	acc, err := account.ReconstructAccount(m.nextID, username, username+"@example.com", "hash", role, verified, token, createdAt, createdAt)
	if err != nil {
		panic(err)
	}
	m.accounts[acc.ID()] = acc
	return acc
}

func (m *memoryAccountRepository) sorted(keep func(*account.Account) bool) []*account.Account {
	out := []*account.Account{}
	for _, a := range m.accounts {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (m *memoryAccountRepository) Create(ctx context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := a.SetID(m.nextID); err != nil {
		return err
	}
	m.accounts[a.ID()] = a
	return nil
}

func (m *memoryAccountRepository) GetByID(ctx context.Context, id uint) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, errors.NewNotFoundError("account not found")
}

func (m *memoryAccountRepository) GetByVerificationToken(ctx context.Context, token string) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.VerificationToken() != nil && *a.VerificationToken() == token {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("account not found")
}

func (m *memoryAccountRepository) GetByLogin(ctx context.Context, login string) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username() == login || a.Email() == strings.ToLower(login) {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("account not found")
}

func (m *memoryAccountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username() == username || a.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryAccountRepository) Update(ctx context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID()] = a
	return nil
}

func unverified(a *account.Account) bool {
	return !a.IsVerified() && a.VerificationToken() != nil
}

func (m *memoryAccountRepository) CountUnverified(ctx context.Context, cutoff time.Time) (account.UnverifiedCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c account.UnverifiedCounts
	for _, a := range m.accounts {
		if !unverified(a) {
			continue
		}
		c.Total++
		if a.CreatedAt().Before(cutoff) {
			if !a.IsProtected() {
				c.Expired++
			}
		} else {
			c.Recent++
		}
	}
	return c, nil
}

func (m *memoryAccountRepository) ListUnverified(ctx context.Context, createdBefore *time.Time) ([]*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.sorted(func(a *account.Account) bool {
		return unverified(a) && (createdBefore == nil || a.CreatedAt().Before(*createdBefore))
	}), nil
}

func (m *memoryAccountRepository) ListReminderCandidates(ctx context.Context, after, atOrBefore time.Time) ([]*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.sorted(func(a *account.Account) bool {
		return unverified(a) && !a.IsProtected() && a.CreatedAt().After(after) && !a.CreatedAt().After(atOrBefore)
	}), nil
}

func (m *memoryAccountRepository) DeleteExpired(ctx context.Context, cutoff time.Time) ([]*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	gone := m.sorted(func(a *account.Account) bool {
		return unverified(a) && !a.IsProtected() && a.CreatedAt().Before(cutoff)
	})
	for _, a := range gone {
		delete(m.accounts, a.ID())
	}
	return gone, nil
}

func (m *memoryAccountRepository) DeleteUnverified(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.IsVerified() {
		return false, nil
	}
	delete(m.accounts, id)
	return true, nil
}

type recordedAudit struct {
	Actor       authorization.Actor
	Action      string
	Description string
}

type mockRecorder struct {
	records []recordedAudit
	Err     error
}

func (r *mockRecorder) Record(ctx context.Context, actor authorization.Actor, action, description string, metadata map[string]any) error {
	if r.Err != nil {
		return r.Err
	}
	r.records = append(r.records, recordedAudit{Actor: actor, Action: action, Description: description})
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type mockSender struct {
	sent    []sentMail
	FailFor map[string]bool
}

func (s *mockSender) Send(ctx context.Context, to, subject, body string) error {
	if s.FailFor[to] {
		return fmt.Errorf("smtp: 450 mailbox unavailable")
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type stubTemplates struct{}

func (stubTemplates) VerificationReminder(username, verifyURL string, hoursLeft int) (notification.Mail, error) {
	return notification.Mail{
		Subject:  fmt.Sprintf("%d hours left", hoursLeft),
		HTMLBody: username + " " + verifyURL,
	}, nil
}

func (stubTemplates) Verification(username, verifyURL string, ttlHours int) (notification.Mail, error) {
	return notification.Mail{Subject: "Verify", HTMLBody: verifyURL}, nil
}

func (stubTemplates) TicketAutoClosed(customerName, subject string) (notification.Mail, error) {
	return notification.Mail{Subject: "Closed", HTMLBody: subject}, nil
}

type memoryDedup struct {
	held       map[string]bool
	ReserveErr error
}

func newMemoryDedup() *memoryDedup {
	return &memoryDedup{held: map[string]bool{}}
}

func (d *memoryDedup) Reserve(ctx context.Context, key string) (bool, error) {
	if d.ReserveErr != nil {
		return false, d.ReserveErr
	}
	if d.held[key] {
		return false, nil
	}
	d.held[key] = true
	return true, nil
}

func (d *memoryDedup) Release(ctx context.Context, key string) error {
	delete(d.held, key)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// costHasher writes "v2:" hashes and still accepts plainHasher's older ones.
type costHasher struct{}

func (costHasher) Hash(password string) (string, error) {
	return "v2:" + password, nil
}

func (costHasher) Verify(password, hash string) error {
	if hash != "v2:"+password && hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

func (costHasher) NeedsRehash(hash string) bool {
	return !strings.HasPrefix(hash, "v2:")
}

type stubIssuer struct{}

func (stubIssuer) Generate(userID uint, username string, role authorization.UserRole) (string, int64, error) {
	return fmt.Sprintf("token-%d-%s-%s", userID, username, role), 3600, nil
}

// inlineTx runs fn directly and counts calls.
type inlineTx struct {
	calls int
	err   error
}

func (tx *inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if tx.err != nil {
		return tx.err
	}
	return fn(ctx)
}
