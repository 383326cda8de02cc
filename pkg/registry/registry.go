package registry

import (
	"sync"

	gametypes "github.com/calexi/crossfire/pkg/game/types"
)

// Registry owns the mapping of connection identity to player state.
// Entries are created on connect and removed on disconnect; nothing
// survives a disconnect. Reads return copies so callers never hold a
// live reference across operations.
type Registry struct {
	lock    sync.RWMutex
	players map[string]*gametypes.Player
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*gametypes.Player),
	}
}

// Add registers a player under its ID, replacing any existing entry.
func (r *Registry) Add(player *gametypes.Player) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.players[player.ID] = player
}

// Remove deletes a player from the registry.
// Returns false if the player was not registered.
func (r *Registry) Remove(id string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	return true
}

// Get returns a copy of the player record.
func (r *Registry) Get(id string) (*gametypes.Player, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	player, ok := r.players[id]
	if !ok {
		return nil, false
	}
	return player.Copy(), true
}

// Mutate looks the player up by ID and applies fn to it under the
// write lock. Returns false if the player is not registered, in which
// case fn is not called.
func (r *Registry) Mutate(id string, fn func(player *gametypes.Player)) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	player, ok := r.players[id]
	if !ok {
		return false
	}
	fn(player)
	return true
}

// Snapshot returns a copy of all player records keyed by ID.
func (r *Registry) Snapshot() map[string]*gametypes.Player {
	r.lock.RLock()
	defer r.lock.RUnlock()
	snapshot := make(map[string]*gametypes.Player, len(r.players))
	for id, player := range r.players {
		snapshot[id] = player.Copy()
	}
	return snapshot
}

// Len returns the number of registered players.
func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.players)
}
