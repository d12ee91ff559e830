package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
	"github.com/anyulbade/merchant-dashboard-api/internal/session"
)

type fakeSource struct {
	stores []model.Store
	err    error
	calls  int
}

func (f *fakeSource) FetchStores(context.Context) ([]model.Store, error) {
	f.calls++
	return f.stores, f.err
}

func sampleTx(id, terminal, status string, amount int64, datetime string) model.Transaction {
	at, _ := time.Parse("2006-01-02T15:04:05", datetime)
	return model.Transaction{
		TransactionID: id,
		Amount:        decimal.NewFromInt(amount),
		Status:        status,
		PaymentMethod: "QR",
		TerminalID:    terminal,
		Datetime:      datetime,
		OccurredAt:    at,
	}
}

// sampleStores: B1 has two terminals (one online) and three transactions,
// B2 has one online terminal and one transaction.
func sampleStores() []model.Store {
	return []model.Store{
		{
			ID: "B1", Name: "Central", MerchantID: "M1",
			Terminals: []model.Terminal{
				{TerminalID: "T1", Status: model.TerminalOnline, Model: "PAX A920", Serial: "SN-1"},
				{TerminalID: "T2", Status: model.TerminalOffline},
			},
			Transactions: []model.Transaction{
				sampleTx("TX-1", "T1", model.TxStatusSuccess, 100, "2025-12-01T09:15:00"),
				sampleTx("TX-2", "T2", model.TxStatusFailed, 40, "2025-12-01T09:45:00"),
				sampleTx("TX-3", "T1", model.TxStatusSuccess, 60, "2025-12-02T14:00:00"),
			},
		},
		{
			ID: "B2", Name: "North", MerchantID: "M1",
			Terminals: []model.Terminal{
				{TerminalID: "T3", Status: model.TerminalOnline},
			},
			Transactions: []model.Transaction{
				sampleTx("TX-4", "T3", model.TxStatusSuccess, 200, "2025-12-01T10:05:00"),
			},
		},
	}
}

var (
	owner   = model.User{ID: uuid.NewString(), Role: model.RoleAdmin, Status: model.UserActive, MerchantID: "M1"}
	manager = model.User{ID: uuid.NewString(), Role: model.RoleManager, Status: model.UserActive, StoreBranches: []string{"B1", "B2"}}
	viewer  = model.User{ID: uuid.NewString(), Role: model.RoleViewer, Status: model.UserActive, StoreBranches: []string{"B1"}}
	nobody  = model.User{ID: uuid.NewString(), Role: model.RoleViewer, Status: model.UserActive}
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUsers(users ...model.User) *memUsers {
	m := &memUsers{users: make(map[string]model.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) Update(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	u.UpdatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

func newSessions() *session.Manager {
	return session.NewManager("test-secret", time.Hour, session.NewMemoryStore(time.Minute))
}
