package messages

import (
	"encoding/json"

	gametypes "github.com/calexi/crossfire/pkg/game/types"
)

const (
	// MessageBufferSize represents the maximum size of a message
	MessageBufferSize = 4096
	// ServerID is the client ID used for server-originated messages
	ServerID = ""
)

type MessageType string

// Client message types
const (
	MessageTypeClientPing      MessageType = "ping"
	MessageTypeClientMove      MessageType = "move"
	MessageTypeClientShoot     MessageType = "shoot"
	MessageTypeClientDamage    MessageType = "damage"
	MessageTypeClientRespawn   MessageType = "respawn"
	MessageTypeClientUsername  MessageType = "username"
	MessageTypeClientBotSpawn  MessageType = "botSpawn"
	MessageTypeClientBotUpdate MessageType = "botUpdate"
	MessageTypeClientBotRemove MessageType = "botRemove"
	MessageTypeClientBotKill   MessageType = "botKill"
)

// Server message types
const (
	MessageTypeServerPong             MessageType = "pong"
	MessageTypeServerInit             MessageType = "init"
	MessageTypeServerPlayerConnect    MessageType = "playerConnect"
	MessageTypeServerPlayerMove       MessageType = "playerMove"
	MessageTypeServerPlayerShoot      MessageType = "playerShoot"
	MessageTypeServerPlayerDamage     MessageType = "playerDamage"
	MessageTypeServerPlayerHealth     MessageType = "playerHealth"
	MessageTypeServerPlayerKill       MessageType = "playerKill"
	MessageTypeServerPlayerRespawn    MessageType = "playerRespawn"
	MessageTypeServerPlayerUsername   MessageType = "playerUsername"
	MessageTypeServerPlayerDisconnect MessageType = "playerDisconnect"
)

// Message represents a generic message for serialization/deserialization.
// The server stamps ClientID from the connection; clients cannot spoof it.
type Message struct {
	ClientID string          `json:"clientID"`
	Type     MessageType     `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// ClientPing is a latency probe answered with a ServerPong
type ClientPing struct {
	Timestamp int64 `json:"timestamp"`
}

type ServerPong struct {
	Timestamp int64 `json:"timestamp"`
}

// ClientMove reports the sender's position and rotation
type ClientMove struct {
	Position gametypes.Vector3 `json:"position"`
	Rotation gametypes.Vector3 `json:"rotation"`
}

// ClientShoot announces a fired shot for client-side projectile simulation
type ClientShoot struct {
	Origin     gametypes.Vector3 `json:"origin"`
	Direction  gametypes.Vector3 `json:"direction"`
	WeaponType string            `json:"weaponType,omitempty"`
}

// ClientDamage reports a hit against another player
type ClientDamage struct {
	BulletID  string `json:"bulletId"`
	TargetID  string `json:"targetId"`
	Damage    int    `json:"damage"`
	ShooterID string `json:"shooterId"`
}

// ClientUsername requests a display name change
type ClientUsername struct {
	Username string `json:"username"`
}

// GameSettings is the immutable configuration shared with clients on join
type GameSettings struct {
	MaxHealth      int              `json:"maxHealth"`
	RespawnDelayMs int64            `json:"respawnDelayMs"`
	WorldBounds    gametypes.Bounds `json:"worldBounds"`
}

// ServerInit is the join snapshot sent to a newly connected client only
type ServerInit struct {
	ClientID string                       `json:"clientID"`
	Player   *gametypes.Player            `json:"player"`
	Players  map[string]*gametypes.Player `json:"players"`
	Settings GameSettings                 `json:"settings"`
}

type ServerPlayerConnect struct {
	Player *gametypes.Player `json:"player"`
}

type ServerPlayerMove struct {
	PlayerID string            `json:"playerId"`
	Position gametypes.Vector3 `json:"position"`
	Rotation gametypes.Vector3 `json:"rotation"`
}

type ServerPlayerShoot struct {
	PlayerID   string            `json:"playerId"`
	Origin     gametypes.Vector3 `json:"origin"`
	Direction  gametypes.Vector3 `json:"direction"`
	WeaponType string            `json:"weaponType"`
}

// ServerPlayerDamage is the private damage cue sent to the target only
type ServerPlayerDamage struct {
	Damage    int    `json:"damage"`
	Health    int    `json:"health"`
	ShooterID string `json:"shooterId"`
}

// ServerPlayerHealth is the state sync sent to everyone except the shooter
type ServerPlayerHealth struct {
	PlayerID  string `json:"playerId"`
	Health    int    `json:"health"`
	Damage    int    `json:"damage"`
	ShooterID string `json:"shooterId"`
}

type ServerPlayerKill struct {
	KillerID     string `json:"killerId"`
	VictimID     string `json:"victimId"`
	KillerScore  int    `json:"killerScore"`
	VictimDeaths int    `json:"victimDeaths"`
}

type ServerPlayerRespawn struct {
	PlayerID string            `json:"playerId"`
	Player   *gametypes.Player `json:"player"`
}

type ServerPlayerUsername struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
}

type ServerPlayerDisconnect struct {
	PlayerID string `json:"playerId"`
}
