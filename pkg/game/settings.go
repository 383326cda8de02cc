package game

import (
	"time"

	"github.com/calexi/crossfire/pkg/game/constants"
	gametypes "github.com/calexi/crossfire/pkg/game/types"
)

// Settings is the process-wide game configuration. It is fixed at
// startup and shared by all components without synchronization.
type Settings struct {
	MaxHealth    int
	RespawnDelay time.Duration
	WorldBounds  gametypes.Bounds
}

// DefaultSettings returns the default game configuration.
func DefaultSettings() Settings {
	return Settings{
		MaxHealth:    constants.MaxHealth,
		RespawnDelay: constants.RespawnDelay,
		WorldBounds: gametypes.Bounds{
			Min: gametypes.Vector3{X: -constants.WorldBoundXZ, Y: 0, Z: -constants.WorldBoundXZ},
			Max: gametypes.Vector3{X: constants.WorldBoundXZ, Y: constants.WorldBoundY, Z: constants.WorldBoundXZ},
		},
	}
}

// SpawnPosition returns the fixed default spawn point.
func SpawnPosition() gametypes.Vector3 {
	return gametypes.Vector3{X: constants.SpawnX, Y: constants.SpawnY, Z: constants.SpawnZ}
}
