package pings

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"pingrelay/apperr"
	"pingrelay/models"
	"pingrelay/utils"
)

// PostRequest carries the client-supplied fields of a new ping.
type PostRequest struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Label     string  `json:"label"`
	Dimension string  `json:"dimension"`
	Duration  string  `json:"duration"`
	Type      string  `json:"type"`
}

// Registry owns every live ping. All access is serialized by its
// mutex, shared by request handlers and the sweeper. Expired pings are
// removed only by the sweep, so a ping stays visible for at most one
// sweep interval past its expiry.
type Registry struct {
	mu    sync.Mutex
	pings []models.Ping
}

func NewRegistry() *Registry {
	return &Registry{}
}

// List returns the live pings in insertion order.
func (r *Registry) List() []models.Ping {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Ping, len(r.pings))
	copy(out, r.pings)
	return out
}

// Post validates the request, applies the one-location-ping rule and
// appends the new ping.
func (r *Registry) Post(author, role string, req PostRequest, now time.Time) (models.Ping, error) {
	switch req.Type {
	case models.PingCoord:
		if role != models.RoleAdmin {
			return models.Ping{}, apperr.New(apperr.Forbidden, "only admins may post coord pings")
		}
	case models.PingLocation:
	default:
		return models.Ping{}, apperr.New(apperr.InvalidType, "invalid ping type")
	}

	p := models.Ping{
		ID:        uuid.New().String(),
		X:         req.X,
		Y:         req.Y,
		Z:         req.Z,
		Label:     req.Label,
		Dimension: req.Dimension,
		Type:      req.Type,
		Author:    author,
		ExpiresAt: now.Add(utils.ParseDuration(req.Duration)).UnixMilli(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Type == models.PingLocation {
		r.dropLocationLocked(author)
	}
	r.pings = append(r.pings, p)
	return p, nil
}

// dropLocationLocked removes the author's existing location ping, if
// any. At most one location ping per author may be live.
func (r *Registry) dropLocationLocked(author string) {
	kept := r.pings[:0]
	for _, p := range r.pings {
		if p.Type == models.PingLocation && p.Author == author {
			continue
		}
		kept = append(kept, p)
	}
	r.pings = kept
}

// Delete removes a ping by id. Admins may delete anything; everyone
// else only their own pings.
func (r *Registry) Delete(id string, requester models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pings {
		if p.ID != id {
			continue
		}
		if requester.Role != models.RoleAdmin && p.Author != requester.Username {
			return apperr.New(apperr.Forbidden, "you may only delete your own pings")
		}
		r.pings = append(r.pings[:i], r.pings[i+1:]...)
		return nil
	}
	return apperr.New(apperr.NotFound, "ping not found")
}

// Sweep drops every ping whose expiry is at or before now, and reports
// how many were removed. A ping is live only while ExpiresAt > now.
func (r *Registry) Sweep(now time.Time) int {
	nowMs := now.UnixMilli()
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.pings[:0]
	removed := 0
	for _, p := range r.pings {
		if p.ExpiresAt > nowMs {
			kept = append(kept, p)
		} else {
			removed++
		}
	}
	r.pings = kept
	return removed
}

// StartSweeper runs Sweep on a fixed period until the returned stop
// function is called.
func (r *Registry) StartSweeper(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if n := r.Sweep(time.Now()); n > 0 {
					log.Printf("Sweeper removed %d expired pings", n)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
