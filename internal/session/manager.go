package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const issuer = "merchant-dashboard"

var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	jwtlib.RegisteredClaims
	Role string `json:"role"`
}

// Manager issues signed tokens whose id is a stored session, so a token
// stops working as soon as its session is removed.
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, store Store) *Manager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, store: store, now: time.Now}
}

// Issue starts a session for user and returns its bearer token.
func (m *Manager) Issue(ctx context.Context, user model.User) (string, model.Session, error) {
	now := m.now().UTC()
	sess := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        sess.ID,
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwtlib.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwtlib.NewNumericDate(sess.ExpiresAt),
		},
		Role: string(user.Role),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", model.Session{}, fmt.Errorf("sign token: %w", err)
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return "", model.Session{}, err
	}
	return signed, sess, nil
}

// Authenticate verifies the token and returns its live session.
func (m *Manager) Authenticate(ctx context.Context, tokenStr string) (*model.Session, error) {
	c := &claims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, c, func(t *jwtlib.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || c.ID == "" {
		return nil, ErrInvalidToken
	}

	sess, err := m.store.Get(ctx, c.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if sess.UserID != c.Subject {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionID)
}

func (m *Manager) RevokeUser(ctx context.Context, userID string) error {
	return m.store.DeleteUser(ctx, userID)
}
