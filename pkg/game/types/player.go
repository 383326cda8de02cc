package types

// Player is the server's record for one connected client's game state.
// The ID is the connection identity and is never reused.
type Player struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Position   Vector3 `json:"position"`
	Rotation   Vector3 `json:"rotation"`
	Health     int     `json:"health"`
	Alive      bool    `json:"alive"`
	Score      int     `json:"score"`
	Deaths     int     `json:"deaths"`
	LastUpdate int64   `json:"lastUpdate"`
}

// NewPlayer creates a player at the spawn position with full health.
func NewPlayer(id string, spawn Vector3, maxHealth int) *Player {
	return &Player{
		ID:       id,
		Username: DefaultUsername(id),
		Position: spawn,
		Health:   maxHealth,
		Alive:    true,
	}
}

// DefaultUsername derives a display name from the trailing characters
// of the connection identity.
func DefaultUsername(id string) string {
	suffix := id
	if len(id) > 4 {
		suffix = id[len(id)-4:]
	}
	return "Player-" + suffix
}

// Copy returns a copy of the player record.
func (p *Player) Copy() *Player {
	copy := *p
	return &copy
}
