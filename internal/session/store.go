// Package session keeps signed-in sessions. A session is created at login,
// looked up on every request and removed at logout or when an admin revokes
// a user's access.
package session

import (
	"context"
	"errors"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Save(ctx context.Context, s model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteUser removes every session belonging to userID.
	DeleteUser(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
}
