package auth

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingrelay/apperr"
	"pingrelay/blacklist"
	"pingrelay/models"
	"pingrelay/session"
)

const (
	userSecret  = "user-secret"
	adminSecret = "admin-secret"
)

type memStore struct{ names []string }

func (m *memStore) Load() ([]string, error) { return m.names, nil }

func (m *memStore) Save(names []string) error { m.names = names; return nil }

func newTestAuth(t *testing.T) *Authenticator {
	t.Helper()
	bl, err := blacklist.New(&memStore{})
	require.NoError(t, err)
	return New(session.NewStore(), bl, userSecret, adminSecret)
}

func TestLoginRoles(t *testing.T) {
	a := newTestAuth(t)

	user, err := a.Login(gofakeit.Username(), userSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	admin, err := a.Login(gofakeit.Username(), adminSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAuth(t)

	_, err := a.Login(gofakeit.Username(), "wrong")
	assert.Equal(t, apperr.InvalidCredentials, apperr.KindOf(err))

	_, err = a.Login("", userSecret)
	assert.Equal(t, apperr.MissingCredentials, apperr.KindOf(err))

	_, err = a.Login(gofakeit.Username(), "")
	assert.Equal(t, apperr.MissingCredentials, apperr.KindOf(err))
}

func TestLoginRejectsBlacklistedBeforeSecretCheck(t *testing.T) {
	a := newTestAuth(t)
	a.Blacklist.Add("griefer42")

	// Even the right secret yields Blacklisted, not InvalidCredentials.
	_, err := a.Login("griefer42", userSecret)
	assert.Equal(t, apperr.Blacklisted, apperr.KindOf(err))

	_, err = a.Login("griefer42", "wrong")
	assert.Equal(t, apperr.Blacklisted, apperr.KindOf(err))
}

func TestResolve(t *testing.T) {
	a := newTestAuth(t)
	sess, err := a.Login(gofakeit.Username(), userSecret)
	require.NoError(t, err)

	got, err := a.Resolve(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Username, got.Username)

	_, err = a.Resolve("")
	assert.Equal(t, apperr.MissingToken, apperr.KindOf(err))

	_, err = a.Resolve("no-such-token")
	assert.Equal(t, apperr.InvalidToken, apperr.KindOf(err))
}

func TestResolveCutsOffUserBannedAfterLogin(t *testing.T) {
	a := newTestAuth(t)
	sess, err := a.Login("griefer42", userSecret)
	require.NoError(t, err)

	a.Blacklist.Add("griefer42")

	_, err = a.Resolve(sess.Token)
	assert.Equal(t, apperr.Blacklisted, apperr.KindOf(err))

	// The stale session was dropped eagerly: even after an unban the old
	// token no longer resolves.
	a.Blacklist.Remove("griefer42")
	_, err = a.Resolve(sess.Token)
	assert.Equal(t, apperr.InvalidToken, apperr.KindOf(err))
}

func TestReloginInvalidatesFirstToken(t *testing.T) {
	a := newTestAuth(t)
	name := gofakeit.Username()

	first, err := a.Login(name, userSecret)
	require.NoError(t, err)
	second, err := a.Login(name, userSecret)
	require.NoError(t, err)

	_, err = a.Resolve(first.Token)
	assert.Equal(t, apperr.InvalidToken, apperr.KindOf(err))

	_, err = a.Resolve(second.Token)
	assert.NoError(t, err)
}
