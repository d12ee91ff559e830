package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
	"github.com/anyulbade/merchant-dashboard-api/internal/session"
)

type AuthService struct {
	users    UserStore
	sessions *session.Manager
}

func NewAuthService(users UserStore, sessions *session.Manager) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, needsUpgrade := checkPassword(user.PasswordHash, req.Password)
	if !ok {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	if !user.Active() {
		return nil, fmt.Errorf("account is inactive: %w", ErrForbidden)
	}

	if needsUpgrade {
		if hash, err := hashPassword(req.Password); err == nil {
			if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
				log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade plain-text password")
			} else {
				user.PasswordHash = hash
			}
		}
	}

	token, sess, err := s.sessions.Issue(ctx, *user)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, User: *user}, nil
}

// Authenticate resolves a bearer token to its live session and current user
// record. Tokens of deleted or deactivated users are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error) {
	sess, err := s.sessions.Authenticate(ctx, token)
	if errors.Is(err, session.ErrInvalidToken) {
		return nil, nil, fmt.Errorf("%v: %w", err, ErrUnauthorized)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	user, err := findUser(ctx, s.users, sess.UserID)
	if errors.Is(err, ErrNotFound) {
		_ = s.sessions.RevokeUser(ctx, sess.UserID)
		return nil, nil, fmt.Errorf("account no longer exists: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.Active() {
		_ = s.sessions.RevokeUser(ctx, user.ID)
		return nil, nil, fmt.Errorf("account is inactive: %w", ErrUnauthorized)
	}
	return user, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return findUser(ctx, s.users, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, fmt.Errorf("first name is required: %w", ErrInvalidInput)
		}
		user.FirstName = name
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Avatar != nil {
		user.Avatar = strings.TrimSpace(*req.Avatar)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password and signs the user out everywhere.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return err
	}
	if ok, _ := checkPassword(user.PasswordHash, req.CurrentPassword); !ok {
		return fmt.Errorf("current password is incorrect: %w", ErrInvalidInput)
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}
	if req.NewPassword == req.CurrentPassword {
		return fmt.Errorf("new password must differ from the current one: %w", ErrInvalidInput)
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.sessions.RevokeUser(ctx, user.ID)
}
