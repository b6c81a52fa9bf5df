package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/imeiwatch/internal/db"
)

const (
	testPassword   = "correct horse battery staple"
	testSigningKey = "test-signing-key"
)

func newTestAuthority(t *testing.T) (*Authority, *SQLStore) {
	t.Helper()
	st := NewSQLStore(db.NewTestDB(t))
	a := NewAuthority(st, Options{AdminPassword: testPassword, SigningKey: testSigningKey})
	return a, st
}

func TestLoginLogout(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Login(ctx, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, a.IsAdmin(ctx, token))
	assert.NoError(t, a.RequireAdmin(ctx, token))

	a.Logout(ctx, token)
	assert.False(t, a.IsAdmin(ctx, token))
	assert.ErrorIs(t, a.RequireAdmin(ctx, token), ErrUnauthorized)

	// Logging out twice, or without a session, is harmless.
	a.Logout(ctx, token)
	a.Logout(ctx, "")
	a.Logout(ctx, "garbage")
}

func TestLoginWrongSecretLeavesSessionUntouched(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Login(ctx, testPassword)
	require.NoError(t, err)

	for _, wrong := range []string{"", "wrong", testPassword + " ", testPassword[:5]} {
		_, err := a.Login(ctx, wrong)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "secret %q", wrong)
	}
	assert.True(t, a.IsAdmin(ctx, token), "failed logins must not affect an existing session")
	assert.False(t, a.IsAdmin(ctx, ""), "failed logins must not grant a session")
}

func TestLoginNotConfigured(t *testing.T) {
	a := NewAuthority(NewSQLStore(db.NewTestDB(t)), Options{SigningKey: testSigningKey})
	ctx := context.Background()

	assert.False(t, a.Configured())
	for _, supplied := range []string{"", "anything"} {
		_, err := a.Login(ctx, supplied)
		assert.ErrorIs(t, err, ErrNotConfigured)
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	a := NewAuthority(NewSQLStore(db.NewTestDB(t)), Options{
		AdminPassword:     "ignored when a hash is set",
		AdminPasswordHash: string(hash),
		SigningKey:        testSigningKey,
	})
	ctx := context.Background()

	_, err = a.Login(ctx, "ignored when a hash is set")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := a.Login(ctx, testPassword)
	require.NoError(t, err)
	assert.True(t, a.IsAdmin(ctx, token))
}

func TestIsAdminRejectsForeignTokens(t *testing.T) {
	a, _ := newTestAuthority(t)
	other := NewAuthority(NewSQLStore(db.NewTestDB(t)), Options{AdminPassword: testPassword, SigningKey: "other-key"})
	ctx := context.Background()

	token, err := other.Login(ctx, testPassword)
	require.NoError(t, err)
	assert.False(t, a.IsAdmin(ctx, token))
	assert.False(t, a.IsAdmin(ctx, "not-a-token"))
}

func TestSessionExpires(t *testing.T) {
	a, st := newTestAuthority(t)
	ctx := context.Background()

	start := time.Now()
	a.now = func() time.Time { return start }
	st.Now = a.now

	token, err := a.Login(ctx, testPassword)
	require.NoError(t, err)
	assert.True(t, a.IsAdmin(ctx, token))
	assert.Equal(t, DefaultTTL, a.TTL())

	later := start.Add(DefaultTTL + time.Minute)
	a.now = func() time.Time { return later }
	st.Now = a.now
	assert.False(t, a.IsAdmin(ctx, token))
}

type failingStore struct{}

func (failingStore) Create(context.Context, *Session) error       { return errors.New("down") }
func (failingStore) Get(context.Context, string) (*Session, error) { return nil, errors.New("down") }
func (failingStore) Delete(context.Context, string) error          { return errors.New("down") }

func TestStoreFailures(t *testing.T) {
	a := NewAuthority(failingStore{}, Options{AdminPassword: testPassword, SigningKey: testSigningKey})
	ctx := context.Background()

	_, err := a.Login(ctx, testPassword)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	token, err := NewAuthority(NewSQLStore(db.NewTestDB(t)), Options{AdminPassword: testPassword, SigningKey: testSigningKey}).Login(ctx, testPassword)
	require.NoError(t, err)
	assert.False(t, a.IsAdmin(ctx, token), "store errors must fail closed")
	a.Logout(ctx, token)
}
