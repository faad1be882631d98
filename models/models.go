package models

import "time"

// Roles assigned at login, derived from which shared secret the client
// presented.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Ping types. A location ping is limited to one live instance per
// author; coord pings are admin-only and unlimited.
const (
	PingLocation = "location"
	PingCoord    = "coord"
)

// Session ties an opaque token to a username and role. It lives until
// the same user logs in again or the user is blacklisted.
type Session struct {
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	LastActivity time.Time `json:"lastActivity"`
}

// Ping is a spatial marker posted by a participant. ExpiresAt is epoch
// milliseconds.
type Ping struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Label     string  `json:"label"`
	Dimension string  `json:"dimension"`
	Type      string  `json:"type"`
	Author    string  `json:"author"`
	ExpiresAt int64   `json:"expiresAt"`
}
