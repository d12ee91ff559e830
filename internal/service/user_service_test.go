package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func account(role model.Role, email, password string, branches ...string) model.User {
	return model.User{
		ID:            uuid.NewString(),
		FirstName:     "Test",
		LastName:      string(role),
		Email:         email,
		PasswordHash:  password,
		Role:          role,
		Status:        model.UserActive,
		StoreBranches: branches,
	}
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("login then authenticate", func(t *testing.T) {
		u := account(model.RoleManager, "mgr@example.com", mustHash(t, "correct-horse"), "B1")
		svc := NewAuthService(newMemUsers(u), newSessions())

		res, err := svc.Login(ctx, &dto.LoginRequest{Email: "MGR@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, u.ID, res.User.ID)

		got, sess, err := svc.Authenticate(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.ID, sess.UserID)

		require.NoError(t, svc.Logout(ctx, sess.ID))
		_, _, err = svc.Authenticate(ctx, res.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		u := account(model.RoleViewer, "v@example.com", mustHash(t, "correct-horse"))
		svc := NewAuthService(newMemUsers(u), newSessions())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "v@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrUnauthorized)
		_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("inactive account is rejected", func(t *testing.T) {
		u := account(model.RoleViewer, "off@example.com", mustHash(t, "correct-horse"))
		u.Status = model.UserInactive
		svc := NewAuthService(newMemUsers(u), newSessions())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "off@example.com", Password: "correct-horse"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("plain-text password is upgraded on login", func(t *testing.T) {
		u := account(model.RoleViewer, "legacy@example.com", "legacy-pass")
		users := newMemUsers(u)
		svc := NewAuthService(users, newSessions())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "legacy@example.com", Password: "legacy-pass"})
		require.NoError(t, err)

		stored, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, isPasswordHash(stored.PasswordHash), "expected password to be upgraded from plain-text")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("legacy-pass")))
	})

	t.Run("deactivated user loses existing tokens", func(t *testing.T) {
		u := account(model.RoleViewer, "later@example.com", mustHash(t, "correct-horse"))
		users := newMemUsers(u)
		svc := NewAuthService(users, newSessions())

		res, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correct-horse"})
		require.NoError(t, err)

		u.Status = model.UserInactive
		require.NoError(t, users.Update(ctx, &u))
		_, _, err = svc.Authenticate(ctx, res.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("profile update and password change", func(t *testing.T) {
		u := account(model.RoleViewer, "me@example.com", mustHash(t, "correct-horse"))
		users := newMemUsers(u)
		svc := NewAuthService(users, newSessions())

		phone := " +66 81 000 0000 "
		got, err := svc.UpdateProfile(ctx, u.ID, &dto.UpdateProfileRequest{PhoneNumber: &phone})
		require.NoError(t, err)
		assert.Equal(t, "+66 81 000 0000", got.PhoneNumber)
		assert.Equal(t, "Test", got.FirstName)

		blank := "  "
		_, err = svc.UpdateProfile(ctx, u.ID, &dto.UpdateProfileRequest{FirstName: &blank})
		assert.ErrorIs(t, err, ErrInvalidInput)

		err = svc.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "brand-new-pass"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		res, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correct-horse"})
		require.NoError(t, err)
		require.NoError(t, svc.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "brand-new-pass"}))

		_, _, err = svc.Authenticate(ctx, res.Token)
		assert.ErrorIs(t, err, ErrUnauthorized, "password change ends existing sessions")
		_, err = svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "brand-new-pass"})
		assert.NoError(t, err)
	})

	t.Run("profile of a malformed id", func(t *testing.T) {
		svc := NewAuthService(newMemUsers(), newSessions())
		_, err := svc.Profile(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	admin := account(model.RoleAdmin, "owner@example.com", "x")
	admin.MerchantID = "M1"

	t.Run("create with generated password", func(t *testing.T) {
		users := newMemUsers(admin)
		svc := NewUserService(users, newSessions())

		u, temp, err := svc.Create(ctx, admin, &dto.CreateUserRequest{
			FirstName:     " Nok ",
			Email:         "Nok@Example.com",
			Role:          "viewer",
			StoreBranches: []string{"B1", " B1 ", "", "B2"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, temp)
		assert.Equal(t, "nok@example.com", u.Email)
		assert.Equal(t, "Nok", u.FirstName)
		assert.Equal(t, "M1", u.MerchantID)
		assert.Equal(t, []string{"B1", "B2"}, u.StoreBranches)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(temp)))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := NewUserService(newMemUsers(admin), newSessions())
		_, _, err := svc.Create(ctx, admin, &dto.CreateUserRequest{FirstName: "X", Email: "OWNER@example.com", Role: "viewer"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("owners carry no branch list", func(t *testing.T) {
		svc := NewUserService(newMemUsers(admin), newSessions())
		u, temp, err := svc.Create(ctx, admin, &dto.CreateUserRequest{
			FirstName: "Co", Email: "co@example.com", Role: "admin", Password: "long-enough", StoreBranches: []string{"B1"},
		})
		require.NoError(t, err)
		assert.Empty(t, temp)
		assert.Empty(t, u.StoreBranches)
	})

	t.Run("cannot demote, deactivate or delete yourself", func(t *testing.T) {
		svc := NewUserService(newMemUsers(admin), newSessions())
		role := "viewer"

		_, err := svc.Update(ctx, admin, admin.ID, &dto.UpdateUserRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.SetStatus(ctx, admin, admin.ID, model.UserInactive)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, svc.Delete(ctx, admin, admin.ID), ErrInvalidInput)
	})

	t.Run("deactivation and reset revoke sessions", func(t *testing.T) {
		staff := account(model.RoleManager, "staff@example.com", mustHash(t, "correct-horse"), "B1")
		users := newMemUsers(admin, staff)
		sessions := newSessions()
		svc := NewUserService(users, sessions)

		token, _, err := sessions.Issue(ctx, staff)
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, admin, staff.ID, model.UserInactive)
		require.NoError(t, err)
		_, err = sessions.Authenticate(ctx, token)
		assert.Error(t, err)

		token, _, err = sessions.Issue(ctx, staff)
		require.NoError(t, err)
		temp, err := svc.ResetPassword(ctx, staff.ID, "")
		require.NoError(t, err)
		assert.NotEmpty(t, temp)
		_, err = sessions.Authenticate(ctx, token)
		assert.Error(t, err)

		_, err = svc.ResetPassword(ctx, staff.ID, "short")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("revoke sessions", func(t *testing.T) {
		staff := account(model.RoleViewer, "v@example.com", "x", "B1")
		sessions := newSessions()
		svc := NewUserService(newMemUsers(admin, staff), sessions)

		token, _, err := sessions.Issue(ctx, staff)
		require.NoError(t, err)
		require.NoError(t, svc.RevokeSessions(ctx, staff.ID))
		_, err = sessions.Authenticate(ctx, token)
		assert.Error(t, err)

		assert.ErrorIs(t, svc.RevokeSessions(ctx, uuid.NewString()), ErrNotFound)
	})

	t.Run("update branches and delete", func(t *testing.T) {
		staff := account(model.RoleViewer, "v@example.com", "x", "B1")
		users := newMemUsers(admin, staff)
		svc := NewUserService(users, newSessions())

		branches := []string{"B2", "B3"}
		got, err := svc.Update(ctx, admin, staff.ID, &dto.UpdateUserRequest{StoreBranches: &branches})
		require.NoError(t, err)
		assert.Equal(t, []string{"B2", "B3"}, got.StoreBranches)

		require.NoError(t, svc.Delete(ctx, admin, staff.ID))
		assert.ErrorIs(t, svc.Delete(ctx, admin, staff.ID), ErrNotFound)
	})

	t.Run("list filters, counts and pages", func(t *testing.T) {
		users := newMemUsers(
			admin,
			account(model.RoleManager, "m1@example.com", "x", "B1"),
			account(model.RoleManager, "m2@example.com", "x", "B2"),
			account(model.RoleViewer, "v1@example.com", "x", "B1"),
		)
		svc := NewUserService(users, newSessions())

		got, err := svc.List(ctx, filter.UserFilter{Store: "B1"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, got.TotalCount)
		assert.Equal(t, 1, got.Stats.Managers)
		assert.Equal(t, 1, got.Stats.Viewers)
		assert.ElementsMatch(t, []string{"B1", "B2"}, got.Stats.Branches)

		got, err = svc.List(ctx, filter.UserFilter{Search: "merchant owner"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, got.TotalCount)
	})
}
