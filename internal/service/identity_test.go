package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-notebook/backend/internal/service"
)

func TestIdentityService_IssueAndValidate(t *testing.T) {
	svc := service.NewIdentityService("test-secret")

	identity, err := svc.Issue()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(identity.UserID, "device_"))
	assert.NotEmpty(t, identity.Token)

	userID, err := svc.ValidateToken(identity.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, userID)
}

func TestIdentityService_IssuedIdentitiesAreUnique(t *testing.T) {
	svc := service.NewIdentityService("test-secret")

	a, err := svc.Issue()
	require.NoError(t, err)
	b, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, a.UserID, b.UserID)
}

func TestIdentityService_RejectsInvalidTokens(t *testing.T) {
	svc := service.NewIdentityService("test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	other := service.NewIdentityService("other-secret")
	identity, err := other.Issue()
	require.NoError(t, err)

	_, err = svc.ValidateToken(identity.Token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
