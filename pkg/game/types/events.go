package types

// ConnectPlayerEvent is queued when a client connection is established.
type ConnectPlayerEvent struct {
	ClientID string
}

// DisconnectPlayerEvent is queued when a client connection goes away.
type DisconnectPlayerEvent struct {
	ClientID string
}

// RespawnPlayerEvent is queued when a player's respawn timer fires.
type RespawnPlayerEvent struct {
	ClientID string
}
