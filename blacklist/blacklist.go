package blacklist

import (
	"log"
	"sort"
	"sync"
)

// Store persists the exclusion set. The running process treats its own
// in-memory copy as authoritative; Save failures are best-effort.
type Store interface {
	Load() ([]string, error)
	Save(names []string) error
}

// Blacklist is the in-memory exclusion set backed by a Store.
type Blacklist struct {
	mu    sync.Mutex
	names map[string]struct{}
	store Store
}

// New loads the persisted set. A load failure is fatal to startup so
// the service never runs with a silently empty blacklist.
func New(store Store) (*Blacklist, error) {
	names, err := store.Load()
	if err != nil {
		return nil, err
	}
	b := &Blacklist{
		names: make(map[string]struct{}, len(names)),
		store: store,
	}
	for _, n := range names {
		b.names[n] = struct{}{}
	}
	return b, nil
}

// Add puts username on the blacklist. Adding a name that is already
// listed is a no-op and is not re-persisted.
func (b *Blacklist) Add(username string) {
	b.mu.Lock()
	if _, ok := b.names[username]; ok {
		b.mu.Unlock()
		return
	}
	b.names[username] = struct{}{}
	snapshot := b.snapshotLocked()
	b.mu.Unlock()

	log.Printf("Blacklisted %s", username)
	b.persist(snapshot)
}

// Remove takes username off the blacklist. Removing an absent name is
// a no-op and is not re-persisted.
func (b *Blacklist) Remove(username string) {
	b.mu.Lock()
	if _, ok := b.names[username]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.names, username)
	snapshot := b.snapshotLocked()
	b.mu.Unlock()

	log.Printf("Unblacklisted %s", username)
	b.persist(snapshot)
}

// Contains reports whether username is currently excluded.
func (b *Blacklist) Contains(username string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.names[username]
	return ok
}

// List returns the excluded names, sorted for stable output.
func (b *Blacklist) List() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Blacklist) snapshotLocked() []string {
	names := make([]string, 0, len(b.names))
	for n := range b.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// persist runs outside the set lock so a slow store never blocks
// readers. A failed write is logged and otherwise ignored: the change
// only risks being lost across a restart.
func (b *Blacklist) persist(names []string) {
	if err := b.store.Save(names); err != nil {
		log.Printf("Error persisting blacklist: %v", err)
	}
}
