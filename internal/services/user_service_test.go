package services

import (
	"testing"

	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAgent(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &stubAnalyticsRepo{})

	resp, err := svc.CreateAgent(&dto.CreateAgentRequest{
		FullName: "Andy Agent",
		Email:    "andy@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleAgent, resp.Role)
	assert.True(t, resp.IsApproved, "admin-created agents skip the approval queue")
	assert.True(t, resp.IsVerified)

	_, err = svc.CreateAgent(&dto.CreateAgentRequest{FullName: "Dup", Email: "andy@example.com", Password: "secret123"})
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestApproveAgent(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &stubAnalyticsRepo{})

	agent := users.add(&models.User{FullName: "Andy", Email: "andy@example.com", Role: models.UserRoleAgent, IsApproved: false})
	user := users.add(&models.User{FullName: "Rita", Email: "rita@example.com", Role: models.UserRoleUser, IsApproved: true})

	resp, err := svc.ApproveAgent(agent.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)

	// Approving twice is harmless.
	resp, err = svc.ApproveAgent(agent.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)

	// Only agents go through approval.
	_, err = svc.ApproveAgent(user.ID)
	require.ErrorIs(t, err, apperrors.ErrInvalidAgent)

	_, err = svc.ApproveAgent("missing")
	require.Error(t, err)
}

func TestListUsersExcludesCaller(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &stubAnalyticsRepo{})

	admin := users.add(&models.User{FullName: "Ada", Email: "ada@example.com", Role: models.UserRoleAdmin})
	users.add(&models.User{FullName: "Rita", Email: "rita@example.com", Role: models.UserRoleUser})

	list, err := svc.ListUsers(admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rita", list[0].FullName)
}

func TestListAgents(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &stubAnalyticsRepo{})

	users.add(&models.User{FullName: "Andy", Email: "andy@example.com", Role: models.UserRoleAgent})
	users.add(&models.User{FullName: "Rita", Email: "rita@example.com", Role: models.UserRoleUser})

	agents, err := svc.ListAgents()
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, models.UserRoleAgent, agents[0].Role)
}
