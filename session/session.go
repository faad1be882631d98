package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"pingrelay/models"
)

// Store keeps live sessions in memory. Sessions never expire on their
// own; they end when the same user logs in again or is blacklisted.
// Two indexes are kept so that login can replace by username and every
// other call can resolve by token. The mutex keeps the two indexes in
// step; go-cache only guards its own individual calls.
type Store struct {
	mu      sync.Mutex
	byToken *cache.Cache // token -> models.Session
	byUser  *cache.Cache // username -> token
}

func NewStore() *Store {
	return &Store{
		byToken: cache.New(cache.NoExpiration, 0),
		byUser:  cache.New(cache.NoExpiration, 0),
	}
}

// Create issues a fresh session for username, invalidating any token
// previously issued to the same username.
func (s *Store) Create(username, role string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, found := s.byUser.Get(username); found {
		s.byToken.Delete(old.(string))
	}
	sess := models.Session{
		Username:     username,
		Role:         role,
		Token:        uuid.New().String(),
		LastActivity: time.Now(),
	}
	s.byToken.Set(sess.Token, sess, cache.NoExpiration)
	s.byUser.Set(username, sess.Token, cache.NoExpiration)
	return sess
}

// Lookup resolves a token to a copy of its session.
func (s *Store) Lookup(token string) (models.Session, bool) {
	v, found := s.byToken.Get(token)
	if !found {
		return models.Session{}, false
	}
	return v.(models.Session), true
}

// Touch refreshes the session's last-activity time. The get-then-set
// pair must run under the store mutex: unguarded, a concurrent Create
// or Revoke could delete the token between the two calls and Touch
// would write the dead session back.
func (s *Store) Touch(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.byToken.Get(token)
	if !found {
		return
	}
	sess := v.(models.Session)
	sess.LastActivity = time.Now()
	s.byToken.Set(token, sess, cache.NoExpiration)
}

// Revoke drops the session belonging to username, if any. Reports
// whether a session was actually removed.
func (s *Store) Revoke(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.byUser.Get(username)
	if !found {
		return false
	}
	s.byToken.Delete(v.(string))
	s.byUser.Delete(username)
	return true
}
