package validator

import (
	"testing"

	"resolvenow_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsUnknownRole(t *testing.T) {
	v := New()

	err := v.Validate(&dto.LoginRequest{
		Email:    "rita@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "must be one of: user, agent, admin", vErr.Errors["role"])
}

func TestValidateAcceptsKnownRoles(t *testing.T) {
	v := New()

	for _, role := range []string{"user", "agent", "admin"} {
		err := v.Validate(&dto.LoginRequest{
			Email:    "rita@example.com",
			Password: "secret123",
			Role:     role,
		})
		assert.NoError(t, err, "role %q should validate", role)
	}

	// An absent optional role is left to the binding layer.
	assert.NoError(t, v.Validate(&dto.RegisterRequest{
		FullName: "Rita",
		Email:    "rita@example.com",
		Password: "secret123",
	}))
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	v := New()

	err := v.Validate(&dto.UpdateStatusRequest{Status: "escalated"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Field names come from the json tag, not the Go field.
	assert.Contains(t, vErr.Errors, "status")
	assert.Equal(t, "must be a valid complaint status", vErr.Errors["status"])

	assert.NoError(t, v.Validate(&dto.UpdateStatusRequest{Status: "in_progress"}))
}
