package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
	"github.com/anyulbade/merchant-dashboard-api/internal/repository"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
	"github.com/anyulbade/merchant-dashboard-api/internal/session"
)

const testPassword = "correct-horse"

const upstreamStores = `[
  {
    "id": "B1", "name": "Central", "merchant_id": "M1",
    "terminals": [
      {"terminal_id": "T1", "status": "online", "model": "PAX A920", "serial": "SN-1"},
      {"terminal_id": "T2", "status": "offline"}
    ],
    "transactions": [
      {"transaction_id": "TX-1", "amount": 100, "status": "success", "paymentMethod": "QR", "terminal_id": "T1", "datetime": "2025-12-01T09:15:00"},
      {"transaction_id": "TX-2", "amount": "40", "status": "failed", "paymentMethod": "Card", "terminal_id": "T2", "datetime": "2025-12-01T09:45:00"},
      {"transaction_id": "TX-3", "amount": 60, "status": "success", "paymentMethod": "QR", "terminal_id": "T1", "datetime": "2025-12-02T14:00:00"}
    ]
  },
  {
    "id": "B2", "name": "North", "merchant_id": "M1",
    "terminals": [{"terminal_id": "T3", "status": "online"}],
    "transactions": [
      {"transaction_id": "TX-4", "amount": 200, "status": "success", "paymentMethod": "QR", "terminal_id": "T3", "datetime": "2025-12-01T10:05:00"}
    ]
  }
]`

type testEnv struct {
	router   *gin.Engine
	users    *memUsers
	failing  atomic.Bool
	owner    model.User
	manager  model.User
	viewer   model.User
	orphan   model.User
	upstream *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{}
	env.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env.failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstreamStores))
	}))
	t.Cleanup(env.upstream.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	env.owner = testUser(model.RoleAdmin, "owner@example.com", string(hash))
	env.owner.MerchantID = "M1"
	env.manager = testUser(model.RoleManager, "manager@example.com", string(hash), "B1", "B2")
	env.viewer = testUser(model.RoleViewer, "viewer@example.com", string(hash), "B1")
	env.orphan = testUser(model.RoleViewer, "orphan@example.com", string(hash))
	env.users = newMemUsers(env.owner, env.manager, env.viewer, env.orphan)

	stores := repository.NewStoreRepository(env.upstream.URL, 2*time.Second)
	sessionStore := session.NewMemoryStore(time.Minute)
	sessions := session.NewManager("test-secret", time.Hour, sessionStore)
	dashboard := service.NewDashboardService(stores)

	env.router = gin.New()
	env.router.Use(middleware.Logger())
	env.router.Use(middleware.ErrorHandler())
	RegisterRoutes(env.router, Services{
		Auth:          service.NewAuthService(env.users, sessions),
		Users:         service.NewUserService(env.users, sessions),
		Stores:        service.NewStoreService(stores),
		Dashboard:     dashboard,
		Transactions:  service.NewTransactionService(stores),
		Terminals:     service.NewTerminalService(stores),
		Reports:       service.NewReportService(dashboard),
		Notifications: service.NewNotificationService(stores),
		Health: service.NewHealthService(map[string]service.Pinger{
			"data_source": stores,
			"sessions":    sessionStore,
		}, time.Second),
	})
	return env
}

func testUser(role model.Role, email, hash string, branches ...string) model.User {
	return model.User{
		ID:            uuid.NewString(),
		FirstName:     "Test",
		LastName:      string(role),
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		Status:        model.UserActive,
		StoreBranches: branches,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, user model.User) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": user.Email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

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
