package auth

import (
	"crypto/subtle"
	"log"

	"pingrelay/apperr"
	"pingrelay/blacklist"
	"pingrelay/models"
	"pingrelay/session"
)

// Authenticator turns credentials into sessions and tokens back into
// sessions. Resolve is the sole gate in front of every authenticated
// operation.
type Authenticator struct {
	Sessions      *session.Store
	Blacklist     *blacklist.Blacklist
	userPassword  string
	adminPassword string
}

func New(sessions *session.Store, bl *blacklist.Blacklist, userPassword, adminPassword string) *Authenticator {
	return &Authenticator{
		Sessions:      sessions,
		Blacklist:     bl,
		userPassword:  userPassword,
		adminPassword: adminPassword,
	}
}

// Login checks the blacklist before the secret, so a banned name learns
// nothing about whether its password would have been accepted. Success
// replaces any session the same username already held.
func (a *Authenticator) Login(username, password string) (models.Session, error) {
	if username == "" || password == "" {
		return models.Session{}, apperr.New(apperr.MissingCredentials, "username and password are required")
	}
	if a.Blacklist.Contains(username) {
		return models.Session{}, apperr.New(apperr.Blacklisted, "user is blacklisted")
	}
	role, ok := a.matchSecret(password)
	if !ok {
		return models.Session{}, apperr.New(apperr.InvalidCredentials, "invalid credentials")
	}
	sess := a.Sessions.Create(username, role)
	log.Printf("User %s logged in with role %s", username, role)
	return sess, nil
}

func (a *Authenticator) matchSecret(password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPassword)) == 1 {
		return models.RoleAdmin, true
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.userPassword)) == 1 {
		return models.RoleUser, true
	}
	return "", false
}

// Resolve maps a token to its session. The blacklist is re-checked on
// every call, not only at login: a user banned after logging in is cut
// off on their very next request, and their stale session is dropped
// eagerly so the token cannot resolve again.
func (a *Authenticator) Resolve(token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, apperr.New(apperr.MissingToken, "missing session token")
	}
	sess, found := a.Sessions.Lookup(token)
	if !found {
		return models.Session{}, apperr.New(apperr.InvalidToken, "invalid session token")
	}
	if a.Blacklist.Contains(sess.Username) {
		if a.Sessions.Revoke(sess.Username) {
			log.Printf("Revoked stale session for blacklisted user %s", sess.Username)
		}
		return models.Session{}, apperr.New(apperr.Blacklisted, "user is blacklisted")
	}
	a.Sessions.Touch(token)
	return sess, nil
}
