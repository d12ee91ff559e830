package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

// MemoryStore is the single-instance fallback used when Redis is not configured.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (m *MemoryStore) Save(_ context.Context, sess model.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Set(sessionKey(sess.ID), sess, ttl)

	ids := m.userSessions(sess.UserID)
	ids = append(ids, sess.ID)
	m.cache.Set(userSessionsKey(sess.UserID), ids, ttl)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	v, ok := m.cache.Get(sessionKey(id))
	if !ok {
		return nil, ErrNotFound
	}
	sess := v.(model.Session)
	return &sess, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.cache.Get(sessionKey(id))
	if !ok {
		return nil
	}
	sess := v.(model.Session)
	m.cache.Delete(sessionKey(id))

	ids := m.userSessions(sess.UserID)
	kept := ids[:0]
	for _, other := range ids {
		if other != id {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		m.cache.Delete(userSessionsKey(sess.UserID))
		return nil
	}

	ttl := cache.DefaultExpiration
	if _, exp, ok := m.cache.GetWithExpiration(userSessionsKey(sess.UserID)); ok && !exp.IsZero() {
		ttl = time.Until(exp)
	}
	m.cache.Set(userSessionsKey(sess.UserID), kept, ttl)
	return nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.userSessions(userID) {
		m.cache.Delete(sessionKey(id))
	}
	m.cache.Delete(userSessionsKey(userID))
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// userSessions returns a copy of the user's session ids. Callers hold mu.
func (m *MemoryStore) userSessions(userID string) []string {
	v, ok := m.cache.Get(userSessionsKey(userID))
	if !ok {
		return nil
	}
	return append([]string(nil), v.([]string)...)
}
