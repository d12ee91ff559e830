package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
	"github.com/anyulbade/merchant-dashboard-api/internal/session"
)

// UserService is the owner's account administration. The /users routes are
// gated on access.CanManageUsers.
type UserService struct {
	users    UserStore
	sessions *session.Manager
}

func NewUserService(users UserStore, sessions *session.Manager) *UserService {
	return &UserService{users: users, sessions: sessions}
}

type UserPage struct {
	Users      []model.User
	Stats      filter.UserStats
	Page       int
	PageSize   int
	TotalCount int
}

func (s *UserService) List(ctx context.Context, f filter.UserFilter, page, pageSize int) (*UserPage, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size %d: %w", pageSize, ErrInvalidInput)
	}

	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filter.Users(all, f)
	p := filter.Paginate(filtered, page, pageSize)
	return &UserPage{
		Users:      p.Items,
		Stats:      filter.CountUsers(filtered, all),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
	}, nil
}

// Create adds an account under the actor's merchant. The returned password is
// non-empty only when it was generated.
func (s *UserService) Create(ctx context.Context, actor model.User, req *dto.CreateUserRequest) (*model.User, string, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, "", fmt.Errorf("role %q: %w", req.Role, ErrInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", fmt.Errorf("email %s: %w", email, ErrConflict)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	password, generated := req.Password, ""
	if password == "" {
		if password, err = temporaryPassword(); err != nil {
			return nil, "", err
		}
		generated = password
	} else if err := validatePassword(password); err != nil {
		return nil, "", err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         email,
		PasswordHash:  hash,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Role:          role,
		Status:        model.UserActive,
		StoreBranches: normalizeBranches(role, req.StoreBranches),
		MerchantID:    actor.MerchantID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("actor_id", actor.ID).Str("user_id", user.ID).Str("role", string(role)).Msg("user created")
	return user, generated, nil
}

func (s *UserService) Update(ctx context.Context, actor model.User, id string, req *dto.UpdateUserRequest) (*model.User, error) {
	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("role %q: %w", *req.Role, ErrInvalidInput)
		}
		if user.ID == actor.ID && role != model.RoleAdmin {
			return nil, fmt.Errorf("cannot remove your own owner role: %w", ErrInvalidInput)
		}
		user.Role = role
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
	if req.StoreBranches != nil {
		user.StoreBranches = *req.StoreBranches
	}
	user.StoreBranches = normalizeBranches(user.Role, user.StoreBranches)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// SetStatus activates or deactivates an account. Deactivation ends every
// session of that user.
func (s *UserService) SetStatus(ctx context.Context, actor model.User, id, status string) (*model.User, error) {
	if status != model.UserActive && status != model.UserInactive {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidInput)
	}
	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.ID && status == model.UserInactive {
		return nil, fmt.Errorf("cannot deactivate your own account: %w", ErrInvalidInput)
	}

	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if status == model.UserInactive {
		if err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
	}
	return user, nil
}

// ResetPassword sets a new password, generating one when password is empty,
// and signs the user out everywhere.
func (s *UserService) ResetPassword(ctx context.Context, id, password string) (string, error) {
	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return "", err
	}

	generated := ""
	if password == "" {
		if password, err = temporaryPassword(); err != nil {
			return "", err
		}
		generated = password
	} else if err := validatePassword(password); err != nil {
		return "", err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}
	if err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
		return "", fmt.Errorf("revoke sessions: %w", err)
	}
	return generated, nil
}

func (s *UserService) RevokeSessions(ctx context.Context, id string) error {
	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return err
	}
	if err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	log.Info().Str("user_id", user.ID).Msg("sessions revoked")
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor model.User, id string) error {
	if id == actor.ID {
		return fmt.Errorf("cannot delete your own account: %w", ErrInvalidInput)
	}
	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return err
	}

	err = s.users.Delete(ctx, user.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return s.sessions.RevokeUser(ctx, user.ID)
}

// normalizeBranches trims and de-duplicates branch ids. Owners see every
// store, so their list is cleared.
func normalizeBranches(role model.Role, branches []string) []string {
	out := []string{}
	if role == model.RoleAdmin {
		return out
	}
	seen := make(map[string]bool)
	for _, b := range branches {
		b = strings.TrimSpace(b)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
