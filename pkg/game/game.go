package game

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/calexi/crossfire/pkg/clock"
	"github.com/calexi/crossfire/pkg/game/constants"
	gametypes "github.com/calexi/crossfire/pkg/game/types"
	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/messages"
	"github.com/calexi/crossfire/pkg/queue"
	"github.com/calexi/crossfire/pkg/registry"
	"github.com/calexi/crossfire/pkg/respawn"
)

// Broadcaster is the capability the game loop needs from the transport
// layer: broadcast-to-all, broadcast-to-others and unicast. Writes are
// fire-and-forget.
type Broadcaster interface {
	Broadcast(msg *messages.Message)
	BroadcastExcept(clientID string, msg *messages.Message)
	SendTo(clientID string, msg *messages.Message)
}

// GameManager runs the game loop. It is the only mutator of the player
// registry: network goroutines enqueue messages and connection events,
// and the loop drains both queues one event at a time.
type GameManager struct {
	broadcaster          Broadcaster
	clientMessageQueue   queue.Queue
	connectionEventQueue queue.Queue
	registry             *registry.Registry
	respawner            *respawn.Scheduler
	clock                clock.Clock
	settings             Settings
	gameLoopInterval     time.Duration
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Broadcaster          Broadcaster
	ClientMessageQueue   queue.Queue
	ConnectionEventQueue queue.Queue
	Registry             *registry.Registry
	Respawner            *respawn.Scheduler
	Clock                clock.Clock
	Settings             Settings
	GameLoopInterval     time.Duration
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	return &GameManager{
		broadcaster:          opts.Broadcaster,
		clientMessageQueue:   opts.ClientMessageQueue,
		connectionEventQueue: opts.ConnectionEventQueue,
		registry:             opts.Registry,
		respawner:            opts.Respawner,
		clock:                opts.Clock,
		settings:             opts.Settings,
		gameLoopInterval:     opts.GameLoopInterval,
	}
}

// Start starts the game loop.
func (gm *GameManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			gm.gameTick()
		}
	}
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick() {
	gm.processConnectionEvents()
	gm.processClientMessages()
}

// processConnectionEvents processes all pending connection events in
// the queue: player joins, leaves, and fired respawn timers.
func (gm *GameManager) processConnectionEvents() {
	pendingEvents, err := gm.connectionEventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read connection events: %v", err)
		return
	}
	for _, item := range pendingEvents {
		switch event := item.(type) {
		case *gametypes.ConnectPlayerEvent:
			gm.handlePlayerConnect(event.ClientID)
		case *gametypes.DisconnectPlayerEvent:
			gm.handlePlayerDisconnect(event.ClientID)
		case *gametypes.RespawnPlayerEvent:
			gm.respawnPlayer(event.ClientID)
		default:
			log.Error("Unhandled connection event type: %T", event)
		}
	}
}

// processClientMessages processes all pending client messages in the
// queue and updates the registry accordingly.
func (gm *GameManager) processClientMessages() {
	pendingMessages, err := gm.clientMessageQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read client messages: %v", err)
		return
	}
	for _, item := range pendingMessages {
		message, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}

		switch message.Type {
		case messages.MessageTypeClientMove:
			gm.handleMove(message)
		case messages.MessageTypeClientShoot:
			gm.handleShoot(message)
		case messages.MessageTypeClientDamage:
			gm.handleDamage(message)
		case messages.MessageTypeClientRespawn:
			gm.handleRespawnRequest(message)
		case messages.MessageTypeClientUsername:
			gm.handleUsername(message)
		case messages.MessageTypeClientBotSpawn,
			messages.MessageTypeClientBotUpdate,
			messages.MessageTypeClientBotRemove,
			messages.MessageTypeClientBotKill:
			gm.handleBotPassthrough(message)
		default:
			log.Warn("Unhandled message type: %s", message.Type)
		}
	}
}

// handlePlayerConnect creates the player, unicasts the join snapshot to
// the new connection and announces the join to everyone else.
func (gm *GameManager) handlePlayerConnect(clientID string) {
	player := gametypes.NewPlayer(clientID, SpawnPosition(), gm.settings.MaxHealth)
	gm.registry.Add(player)
	log.Info("Player %s joined as %s", player.ID, player.Username)

	init := &messages.ServerInit{
		ClientID: clientID,
		Player:   player.Copy(),
		Players:  gm.registry.Snapshot(),
		Settings: messages.GameSettings{
			MaxHealth:      gm.settings.MaxHealth,
			RespawnDelayMs: gm.settings.RespawnDelay.Milliseconds(),
			WorldBounds:    gm.settings.WorldBounds,
		},
	}
	gm.sendTo(clientID, messages.MessageTypeServerInit, init)

	gm.broadcastExcept(clientID, messages.MessageTypeServerPlayerConnect, &messages.ServerPlayerConnect{
		Player: player.Copy(),
	})
}

// handlePlayerDisconnect removes the player and notifies the remaining
// connections. Any still-pending respawn timer is cancelled so it
// cannot fire for an id that no longer exists.
func (gm *GameManager) handlePlayerDisconnect(clientID string) {
	gm.respawner.Cancel(clientID)
	if !gm.registry.Remove(clientID) {
		log.Debug("Disconnect for unknown player %s", clientID)
		return
	}
	log.Info("Player %s left", clientID)

	gm.broadcastExcept(clientID, messages.MessageTypeServerPlayerDisconnect, &messages.ServerPlayerDisconnect{
		PlayerID: clientID,
	})
}

// handleMove applies a movement update and forwards it to the other
// connections. Updates from dead or unknown senders are dropped.
func (gm *GameManager) handleMove(message *messages.Message) {
	clientMove := &messages.ClientMove{}
	if err := json.Unmarshal(message.Payload, clientMove); err != nil {
		log.Warn("Failed to unmarshal move from %s: %v", message.ClientID, err)
		return
	}

	player, ok := gm.registry.Get(message.ClientID)
	if !ok || !player.Alive {
		log.Debug("Dropping move from %s", message.ClientID)
		return
	}

	now := gm.clock.Now().UnixMilli()
	gm.registry.Mutate(message.ClientID, func(p *gametypes.Player) {
		p.Position = clientMove.Position
		p.Rotation = clientMove.Rotation
		p.LastUpdate = now
	})

	gm.broadcastExcept(message.ClientID, messages.MessageTypeServerPlayerMove, &messages.ServerPlayerMove{
		PlayerID: message.ClientID,
		Position: clientMove.Position,
		Rotation: clientMove.Rotation,
	})
}

// handleShoot forwards a shoot announcement to the other connections.
// Shots change no server-side state; they only drive client-side
// projectile simulation.
func (gm *GameManager) handleShoot(message *messages.Message) {
	clientShoot := &messages.ClientShoot{}
	if err := json.Unmarshal(message.Payload, clientShoot); err != nil {
		log.Warn("Failed to unmarshal shoot from %s: %v", message.ClientID, err)
		return
	}

	player, ok := gm.registry.Get(message.ClientID)
	if !ok || !player.Alive {
		log.Debug("Dropping shoot from %s", message.ClientID)
		return
	}

	weaponType := clientShoot.WeaponType
	if weaponType == "" {
		weaponType = constants.DefaultWeaponType
	}

	gm.broadcastExcept(message.ClientID, messages.MessageTypeServerPlayerShoot, &messages.ServerPlayerShoot{
		PlayerID:   message.ClientID,
		Origin:     clientShoot.Origin,
		Direction:  clientShoot.Direction,
		WeaponType: weaponType,
	})
}

// handleDamage validates and applies a damage report. The first report
// that drives a target's health to zero wins the kill; later reports
// against the dead target fail the alive check and are dropped.
func (gm *GameManager) handleDamage(message *messages.Message) {
	clientDamage := &messages.ClientDamage{}
	if err := json.Unmarshal(message.Payload, clientDamage); err != nil {
		log.Warn("Failed to unmarshal damage from %s: %v", message.ClientID, err)
		return
	}

	if clientDamage.Damage <= 0 {
		log.Warn("Dropping damage report with non-positive damage from %s", message.ClientID)
		return
	}
	if _, ok := gm.registry.Get(clientDamage.ShooterID); !ok {
		log.Debug("Dropping damage report with unknown shooter %s", clientDamage.ShooterID)
		return
	}
	target, ok := gm.registry.Get(clientDamage.TargetID)
	if !ok {
		log.Debug("Dropping damage report with unknown target %s", clientDamage.TargetID)
		return
	}
	if !target.Alive {
		log.Debug("Dropping damage report against dead target %s", clientDamage.TargetID)
		return
	}
	if clientDamage.ShooterID == clientDamage.TargetID {
		log.Debug("Dropping self-damage report from %s", clientDamage.ShooterID)
		return
	}

	newHealth := target.Health - clientDamage.Damage
	if newHealth < 0 {
		newHealth = 0
	}

	if newHealth > 0 {
		gm.registry.Mutate(clientDamage.TargetID, func(p *gametypes.Player) {
			p.Health = newHealth
		})

		// the target gets a private damage cue; everyone else except
		// the shooter gets the general state sync
		gm.sendTo(clientDamage.TargetID, messages.MessageTypeServerPlayerDamage, &messages.ServerPlayerDamage{
			Damage:    clientDamage.Damage,
			Health:    newHealth,
			ShooterID: clientDamage.ShooterID,
		})
		gm.broadcastExcept(clientDamage.ShooterID, messages.MessageTypeServerPlayerHealth, &messages.ServerPlayerHealth{
			PlayerID:  clientDamage.TargetID,
			Health:    newHealth,
			Damage:    clientDamage.Damage,
			ShooterID: clientDamage.ShooterID,
		})
		return
	}

	var victimDeaths int
	gm.registry.Mutate(clientDamage.TargetID, func(p *gametypes.Player) {
		p.Health = 0
		p.Alive = false
		p.Deaths++
		victimDeaths = p.Deaths
	})
	var killerScore int
	gm.registry.Mutate(clientDamage.ShooterID, func(p *gametypes.Player) {
		p.Score++
		killerScore = p.Score
	})
	log.Info("Player %s killed %s", clientDamage.ShooterID, clientDamage.TargetID)

	gm.broadcast(messages.MessageTypeServerPlayerKill, &messages.ServerPlayerKill{
		KillerID:     clientDamage.ShooterID,
		VictimID:     clientDamage.TargetID,
		KillerScore:  killerScore,
		VictimDeaths: victimDeaths,
	})

	gm.respawner.Schedule(clientDamage.TargetID)
}

// handleRespawnRequest respawns a dead player on demand, cancelling
// the pending automatic respawn so only one broadcast fires per death.
func (gm *GameManager) handleRespawnRequest(message *messages.Message) {
	player, ok := gm.registry.Get(message.ClientID)
	if !ok || player.Alive {
		log.Debug("Dropping respawn request from %s", message.ClientID)
		return
	}
	gm.respawner.Cancel(message.ClientID)
	gm.respawnPlayer(message.ClientID)
}

// respawnPlayer restores a dead player to alive state at the spawn
// point. Unknown or already-alive players are no-ops, which makes a
// late timer fire harmless.
func (gm *GameManager) respawnPlayer(clientID string) {
	alreadyAlive := false
	ok := gm.registry.Mutate(clientID, func(p *gametypes.Player) {
		if p.Alive {
			alreadyAlive = true
			return
		}
		p.Position = SpawnPosition()
		p.Health = gm.settings.MaxHealth
		p.Alive = true
	})
	if !ok {
		log.Debug("Respawn for unknown player %s", clientID)
		return
	}
	if alreadyAlive {
		log.Debug("Respawn for already-alive player %s", clientID)
		return
	}

	player, _ := gm.registry.Get(clientID)
	log.Info("Player %s respawned", clientID)
	gm.broadcast(messages.MessageTypeServerPlayerRespawn, &messages.ServerPlayerRespawn{
		PlayerID: clientID,
		Player:   player,
	})
}

// handleUsername stores a sanitized display name and announces it to
// the other connections. Uniqueness is not enforced.
func (gm *GameManager) handleUsername(message *messages.Message) {
	clientUsername := &messages.ClientUsername{}
	if err := json.Unmarshal(message.Payload, clientUsername); err != nil {
		log.Warn("Failed to unmarshal username from %s: %v", message.ClientID, err)
		return
	}

	username := strings.TrimSpace(clientUsername.Username)
	if username == "" {
		log.Debug("Dropping empty username from %s", message.ClientID)
		return
	}
	if len(username) > constants.MaxUsernameLength {
		username = username[:constants.MaxUsernameLength]
	}

	if !gm.registry.Mutate(message.ClientID, func(p *gametypes.Player) {
		p.Username = username
	}) {
		log.Debug("Dropping username from unknown player %s", message.ClientID)
		return
	}

	gm.broadcastExcept(message.ClientID, messages.MessageTypeServerPlayerUsername, &messages.ServerPlayerUsername{
		PlayerID: message.ClientID,
		Username: username,
	})
}

// handleBotPassthrough forwards bot activity to the other connections
// unchanged. Bots are a client-local simulation detail the server does
// not track.
func (gm *GameManager) handleBotPassthrough(message *messages.Message) {
	gm.broadcaster.BroadcastExcept(message.ClientID, &messages.Message{
		ClientID: message.ClientID,
		Type:     message.Type,
		Payload:  message.Payload,
	})
}

func (gm *GameManager) broadcast(messageType messages.MessageType, payload interface{}) {
	msg, err := serverMessage(messageType, payload)
	if err != nil {
		log.Error("Failed to marshal %s message: %v", messageType, err)
		return
	}
	gm.broadcaster.Broadcast(msg)
}

func (gm *GameManager) broadcastExcept(clientID string, messageType messages.MessageType, payload interface{}) {
	msg, err := serverMessage(messageType, payload)
	if err != nil {
		log.Error("Failed to marshal %s message: %v", messageType, err)
		return
	}
	gm.broadcaster.BroadcastExcept(clientID, msg)
}

func (gm *GameManager) sendTo(clientID string, messageType messages.MessageType, payload interface{}) {
	msg, err := serverMessage(messageType, payload)
	if err != nil {
		log.Error("Failed to marshal %s message: %v", messageType, err)
		return
	}
	gm.broadcaster.SendTo(clientID, msg)
}

func serverMessage(messageType messages.MessageType, payload interface{}) (*messages.Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &messages.Message{
		ClientID: messages.ServerID,
		Type:     messageType,
		Payload:  b,
	}, nil
}
