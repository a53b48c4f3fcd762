package services

import (
	"testing"

	"resolvenow_backend/internal/auth"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, AuthService) {
	t.Helper()
	setTestConfig()

	users := newFakeUserRepo()
	svc := NewAuthService(users, testMailer(), "http://localhost:3000")
	return users, svc
}

func TestRegisterUser(t *testing.T) {
	users, svc := newAuthFixture(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		FullName: "Rita User",
		Email:    "Rita@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.UserRoleUser, resp.User.Role)
	assert.True(t, resp.User.IsApproved)
	assert.False(t, resp.User.IsVerified)

	// Emails are normalized to lower case.
	stored, err := users.FindByEmail("rita@example.com")
	require.NoError(t, err)
	assert.Equal(t, "rita@example.com", stored.Email)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterAgentStartsUnapproved(t *testing.T) {
	_, svc := newAuthFixture(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		FullName: "Andy Agent",
		Email:    "agent@example.com",
		Password: "secret123",
		Role:     "agent",
	})
	require.NoError(t, err)
	assert.False(t, resp.User.IsApproved)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	req := &dto.RegisterRequest{FullName: "Rita", Email: "rita@example.com", Password: "secret123"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "Rita", Email: "rita@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "rita@example.com", Password: "secret123", Role: "user"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		claims, err := auth.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "rita@example.com", Password: "nope", Role: "user"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "secret123", Role: "user"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("role mismatch", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "rita@example.com", Password: "secret123", Role: "admin"})
		require.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	})
}

func TestLoginUnapprovedAgentBlocked(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "Andy", Email: "agent@example.com", Password: "secret123", Role: "agent"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "agent@example.com", Password: "secret123", Role: "agent"})
	require.ErrorIs(t, err, apperrors.ErrPendingApproval)
}

func TestVerifyEmail(t *testing.T) {
	users, svc := newAuthFixture(t)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "Rita", Email: "rita@example.com", Password: "secret123"})
	require.NoError(t, err)

	stored, err := users.FindByEmail("rita@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.VerificationToken)

	require.NoError(t, svc.VerifyEmail(stored.VerificationToken))

	stored, err = users.FindByEmail("rita@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerificationToken)

	// Garbage tokens are rejected.
	require.ErrorIs(t, svc.VerifyEmail("not-a-token"), apperrors.ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	_, svc := newAuthFixture(t)

	reg, err := svc.Register(&dto.RegisterRequest{FullName: "Rita", Email: "rita@example.com", Password: "secret123"})
	require.NoError(t, err)

	newName := "Rita Renamed"
	newPhone := "+1 555 0100"
	resp, err := svc.UpdateProfile(reg.User.ID, &dto.UpdateProfileRequest{FullName: &newName, Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, "Rita Renamed", resp.FullName)
	assert.Equal(t, "+1 555 0100", resp.Phone)
}
