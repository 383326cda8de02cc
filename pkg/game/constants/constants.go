package constants

import "time"

const (
	// MaxHealth is the default maximum player health
	MaxHealth int = 100
	// RespawnDelay is the default delay between death and automatic respawn
	RespawnDelay = 3 * time.Second

	// SpawnX is the default spawn position x component
	SpawnX float64 = 0.0
	// SpawnY is the default spawn position y component
	SpawnY float64 = 2.0
	// SpawnZ is the default spawn position z component
	SpawnZ float64 = 0.0

	// WorldBoundXZ is the default world half-extent on the x and z axes
	WorldBoundXZ float64 = 100.0
	// WorldBoundY is the default world height
	WorldBoundY float64 = 100.0

	// MaxUsernameLength is the maximum stored username length
	MaxUsernameLength = 16
	// DefaultWeaponType is used when a shoot announcement omits the weapon
	DefaultWeaponType = "rifle"
)
