package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/crypto"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/mock"
	"github.com/dkomarov/go-auth-keeper/internal/store"
	"github.com/dkomarov/go-auth-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testValidFields = []string{"username", "email"}

func timeNowPtr() *time.Time {
	now := time.Now()
	return &now
}

func newVerifierMocks(t *testing.T) (CredentialVerifier, *mock.MockUserRepository, *mock.MockIdentityRepository, crypto.Hasher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	identities := mock.NewMockIdentityRepository(ctrl)
	hasher := crypto.NewHasher(4)
	verifier := NewCredentialVerifier(users, identities, hasher, testValidFields, logger.Nop())
	return verifier, users, identities, hasher
}

func mustHash(t *testing.T, hasher crypto.Hasher, plaintext string) string {
	t.Helper()
	hash, err := hasher.HashPassword(plaintext)
	require.NoError(t, err)
	return hash
}

func TestAttempt_Success(t *testing.T) {
	verifier, users, identities, hasher := newVerifierMocks(t)
	ctx := context.Background()

	users.EXPECT().FindByFields(ctx, map[string]string{"username": "alice"}).
		Return(models.User{ID: 1, Username: "alice", Active: true}, nil)
	identities.EXPECT().FindByType(ctx, int64(1), models.IdentityPassword).
		Return(models.Identity{ID: 10, UserID: 1, Type: models.IdentityPassword, Secret: mustHash(t, hasher, "s3cret")}, nil)
	identities.EXPECT().TouchLastUsed(ctx, int64(10)).Return(nil)

	result, err := verifier.Attempt(ctx, map[string]string{"username": "alice", "password": "s3cret"}, true)
	require.NoError(t, err)

	assert.True(t, result.OK)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)
	assert.True(t, result.Remember)
}

func TestAttempt_WrongPassword(t *testing.T) {
	verifier, users, identities, hasher := newVerifierMocks(t)
	ctx := context.Background()

	users.EXPECT().FindByFields(ctx, map[string]string{"username": "alice"}).
		Return(models.User{ID: 1, Username: "alice", Active: true}, nil)
	identities.EXPECT().FindByType(ctx, int64(1), models.IdentityPassword).
		Return(models.Identity{ID: 10, UserID: 1, Type: models.IdentityPassword, Secret: mustHash(t, hasher, "s3cret")}, nil)

	result, err := verifier.Attempt(ctx, map[string]string{"username": "alice", "password": "wrong"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonInvalidCredentials, result.Reason)
}

func TestAttempt_UnknownUserSharesReasonWithWrongPassword(t *testing.T) {
	verifier, users, _, _ := newVerifierMocks(t)
	ctx := context.Background()

	users.EXPECT().FindByFields(ctx, map[string]string{"username": "nouser"}).
		Return(models.User{}, store.ErrNoUserWasFound)

	result, err := verifier.Attempt(ctx, map[string]string{"username": "nouser", "password": "x"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonInvalidCredentials, result.Reason,
		"an unknown account must be indistinguishable from a wrong password")
}

func TestAttempt_InactiveUserWithCorrectPassword(t *testing.T) {
	verifier, users, identities, hasher := newVerifierMocks(t)
	ctx := context.Background()

	users.EXPECT().FindByFields(ctx, map[string]string{"username": "bob"}).
		Return(models.User{ID: 2, Username: "bob", Active: false}, nil)
	identities.EXPECT().FindByType(ctx, int64(2), models.IdentityPassword).
		Return(models.Identity{ID: 20, UserID: 2, Type: models.IdentityPassword, Secret: mustHash(t, hasher, "s3cret")}, nil)

	result, err := verifier.Attempt(ctx, map[string]string{"username": "bob", "password": "s3cret"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonAccountInactive, result.Reason)
}

func TestAttempt_SoftDeletedUserWithCorrectPassword(t *testing.T) {
	verifier, users, identities, hasher := newVerifierMocks(t)
	ctx := context.Background()

	deleted := timeNowPtr()
	users.EXPECT().FindByFields(ctx, map[string]string{"username": "carol"}).
		Return(models.User{ID: 3, Username: "carol", Active: true, DeletedAt: deleted}, nil)
	identities.EXPECT().FindByType(ctx, int64(3), models.IdentityPassword).
		Return(models.Identity{ID: 30, UserID: 3, Type: models.IdentityPassword, Secret: mustHash(t, hasher, "s3cret")}, nil)

	result, err := verifier.Attempt(ctx, map[string]string{"username": "carol", "password": "s3cret"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonAccountInactive, result.Reason)
}

func TestAttempt_UnknownFieldsAreDiscarded(t *testing.T) {
	verifier, _, _, _ := newVerifierMocks(t)
	ctx := context.Background()

	// "role" is not a configured identifying field, so the filtered set is
	// empty and no store call is made.
	result, err := verifier.Attempt(ctx, map[string]string{"role": "admin", "password": "x"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonInvalidCredentials, result.Reason)
}

func TestAttempt_EmptyPassword(t *testing.T) {
	verifier, _, _, _ := newVerifierMocks(t)
	ctx := context.Background()

	result, err := verifier.Attempt(ctx, map[string]string{"username": "alice"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonInvalidCredentials, result.Reason)
}

func TestAttempt_NoPasswordIdentity(t *testing.T) {
	verifier, users, identities, _ := newVerifierMocks(t)
	ctx := context.Background()

	users.EXPECT().FindByFields(ctx, map[string]string{"username": "dave"}).
		Return(models.User{ID: 4, Username: "dave", Active: true}, nil)
	identities.EXPECT().FindByType(ctx, int64(4), models.IdentityPassword).
		Return(models.Identity{}, store.ErrIdentityNotFound)

	result, err := verifier.Attempt(ctx, map[string]string{"username": "dave", "password": "x"}, false)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, models.ReasonInvalidCredentials, result.Reason)
}

func TestAttempt_StorageFaultPropagates(t *testing.T) {
	verifier, users, _, _ := newVerifierMocks(t)
	ctx := context.Background()

	users.EXPECT().FindByFields(ctx, gomock.Any()).
		Return(models.User{}, errors.New("db is down"))

	_, err := verifier.Attempt(ctx, map[string]string{"username": "alice", "password": "x"}, false)
	assert.Error(t, err, "outages must never be masked as invalid credentials")
}
