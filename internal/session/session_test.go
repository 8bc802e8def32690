package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/loopp-client/internal/crypto"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/mock"
	"github.com/MKhiriev/loopp-client/internal/store"
	"github.com/MKhiriev/loopp-client/models"
)

const ttl = 30 * 24 * time.Hour

func newMemorySession(t *testing.T) (*Session, store.CredentialStore) {
	t.Helper()
	creds := store.NewCredentialStore(store.NewMemoryStateRepository(), crypto.NewSealer(""))
	return New(creds, ttl, logger.Nop()), creds
}

func jwtWithExpiry(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend"))
	require.NoError(t, err)
	return token
}

func TestSession_EmptyByDefault(t *testing.T) {
	s, _ := newMemorySession(t)

	_, ok := s.Get(context.Background())
	assert.False(t, ok)
	assert.Empty(t, s.Token(context.Background()))
}

func TestSession_SetUsesTTL(t *testing.T) {
	s, _ := newMemorySession(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	cred, err := s.Set(context.Background(), "opaque-token")
	require.NoError(t, err)

	assert.Equal(t, now.Add(ttl), cred.ExpiresAt)
	assert.Equal(t, "opaque-token", s.Token(context.Background()))
}

func TestSession_SetCapsExpiryByJWT(t *testing.T) {
	s, _ := newMemorySession(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	cred, err := s.Set(context.Background(), jwtWithExpiry(t, exp))
	require.NoError(t, err)

	assert.True(t, exp.Equal(cred.ExpiresAt))
}

func TestSession_SetKeepsTTLWhenJWTOutlivesIt(t *testing.T) {
	s, _ := newMemorySession(t)
	now := time.Now()
	s.now = func() time.Time { return now }

	cred, err := s.Set(context.Background(), jwtWithExpiry(t, now.Add(365*24*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, now.Add(ttl), cred.ExpiresAt)
}

func TestSession_SetOverwrites(t *testing.T) {
	s, creds := newMemorySession(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "first")
	require.NoError(t, err)
	_, err = s.Set(ctx, "second")
	require.NoError(t, err)

	assert.Equal(t, "second", s.Token(ctx))

	stored, err := creds.GetCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", stored.Token)
}

func TestSession_SetRejectsEmpty(t *testing.T) {
	s, _ := newMemorySession(t)

	_, err := s.Set(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestSession_Clear(t *testing.T) {
	s, creds := newMemorySession(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "token")
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.Get(ctx)
	assert.False(t, ok)

	_, err = creds.GetCredential(ctx)
	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestSession_ExpiredIsDeleted(t *testing.T) {
	s, creds := newMemorySession(t)
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	_, err := s.Set(ctx, "token")
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(ttl) }
	_, ok := s.Get(ctx)
	assert.False(t, ok)

	_, err = creds.GetCredential(ctx)
	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

// TestSession_RestoresFromStore checks that a new Session picks up a
// credential saved by an earlier one.
func TestSession_RestoresFromStore(t *testing.T) {
	ctx := context.Background()
	creds := store.NewCredentialStore(store.NewMemoryStateRepository(), crypto.NewSealer("secret"))

	first := New(creds, ttl, logger.Nop())
	_, err := first.Set(ctx, "persisted")
	require.NoError(t, err)

	second := New(creds, ttl, logger.Nop())
	assert.Equal(t, "persisted", second.Token(ctx))
}

func TestSession_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	creds := mock.NewMockCredentialStore(ctrl)
	s := New(creds, ttl, logger.Nop())

	creds.EXPECT().GetCredential(ctx).Return(models.Credential{}, errors.New("disk"))
	_, ok := s.Get(ctx)
	assert.False(t, ok, "read failure degrades to unauthenticated")

	creds.EXPECT().SetCredential(ctx, gomock.Any()).Return(errors.New("disk"))
	_, err := s.Set(ctx, "token")
	assert.Error(t, err)

	creds.EXPECT().DeleteCredential(ctx).Return(errors.New("disk"))
	assert.Error(t, s.Clear(ctx))
}
