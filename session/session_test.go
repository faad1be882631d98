package session

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingrelay/models"
)

func TestCreateAndLookup(t *testing.T) {
	s := NewStore()
	name := gofakeit.Username()

	sess := s.Create(name, models.RoleUser)
	assert.NotEmpty(t, sess.Token)

	got, found := s.Lookup(sess.Token)
	require.True(t, found)
	assert.Equal(t, name, got.Username)
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestReloginInvalidatesOldToken(t *testing.T) {
	s := NewStore()
	name := gofakeit.Username()

	first := s.Create(name, models.RoleUser)
	second := s.Create(name, models.RoleAdmin)
	assert.NotEqual(t, first.Token, second.Token)

	_, found := s.Lookup(first.Token)
	assert.False(t, found, "old token must stop resolving after re-login")

	got, found := s.Lookup(second.Token)
	require.True(t, found)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestRevoke(t *testing.T) {
	s := NewStore()
	name := gofakeit.Username()
	sess := s.Create(name, models.RoleUser)

	assert.True(t, s.Revoke(name))
	_, found := s.Lookup(sess.Token)
	assert.False(t, found)

	assert.False(t, s.Revoke(name), "revoking twice finds nothing")
	assert.False(t, s.Revoke(gofakeit.Username()))
}

func TestTouchDoesNotResurrectDeadToken(t *testing.T) {
	s := NewStore()
	name := gofakeit.Username()

	first := s.Create(name, models.RoleUser)
	second := s.Create(name, models.RoleUser)

	s.Touch(first.Token)
	_, found := s.Lookup(first.Token)
	assert.False(t, found, "touching a replaced token must not bring it back")

	s.Revoke(name)
	s.Touch(second.Token)
	_, found = s.Lookup(second.Token)
	assert.False(t, found, "touching a revoked token must not bring it back")
}

func TestConcurrentCreateAndTouchKeepsOneSession(t *testing.T) {
	s := NewStore()
	name := gofakeit.Username()
	sess := s.Create(name, models.RoleUser)

	var wg sync.WaitGroup
	tokens := make(chan string, 64)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 64; i++ {
			tokens <- s.Create(name, models.RoleUser).Token
		}
		close(tokens)
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			s.Touch(sess.Token)
		}
	}()
	wg.Wait()

	var last string
	for tok := range tokens {
		last = tok
	}

	// Only the newest token may resolve; everything it replaced is dead.
	_, found := s.Lookup(sess.Token)
	assert.False(t, found)
	_, found = s.Lookup(last)
	assert.True(t, found)
}

func TestTouchUpdatesLastActivity(t *testing.T) {
	s := NewStore()
	sess := s.Create(gofakeit.Username(), models.RoleUser)

	s.Touch(sess.Token)
	got, found := s.Lookup(sess.Token)
	require.True(t, found)
	assert.False(t, got.LastActivity.Before(sess.LastActivity))
}
