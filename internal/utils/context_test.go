package utils

import (
	"context"
	"testing"

	"github.com/dkomarov/go-auth-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContextRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Username: "alice"}
	ctx := SetUserToContext(context.Background(), user)

	got, ok := GetUserFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, user, got)
}

func TestGetUserFromContext_Missing(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetUserFromContext_NilUser(t *testing.T) {
	ctx := SetUserToContext(context.Background(), nil)
	_, ok := GetUserFromContext(ctx)
	assert.False(t, ok)
}

func TestAccessTokenContextRoundTrip(t *testing.T) {
	token := &models.AccessToken{ID: 7, UserID: 42, Name: "ci"}
	ctx := SetAccessTokenToContext(context.Background(), token)

	got, ok := GetAccessTokenFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, token, got)
}

func TestGetAccessTokenFromContext_Missing(t *testing.T) {
	_, ok := GetAccessTokenFromContext(context.Background())
	assert.False(t, ok)
}
