package network

import (
	"sync"

	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/messages"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// ClientEventChannelSize represents the size of the client event channel
	ClientEventChannelSize = 1024
)

// Client represents a connected client
type Client struct {
	ID   string
	conn *websocket.Conn
	// writeLock serializes frames; gorilla connections support one
	// concurrent writer
	writeLock sync.Mutex
}

// Send writes a message to the client connection. Writes are
// fire-and-forget: errors are returned for logging only.
func (c *Client) Send(msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return err
	}
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	return c.conn.WriteMessage(websocket.BinaryMessage, b)
}

// ClientEventType represents the type of a client event
type ClientEventType int

const (
	ClientEventTypeConnect ClientEventType = iota
	ClientEventTypeDisconnect
)

// ClientEvent represents an event that happened to a client
type ClientEvent struct {
	ClientID string
	Type     ClientEventType
}

// ClientManager manages connected clients and implements the broadcast
// primitives the game loop relies on.
type ClientManager struct {
	clients         map[string]*Client
	clientsLock     sync.RWMutex
	clientEventChan chan ClientEvent
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:         make(map[string]*Client),
		clientEventChan: make(chan ClientEvent, ClientEventChannelSize),
	}
}

// GetClientEventChan returns a one-way channel for receiving client events
func (cm *ClientManager) GetClientEventChan() <-chan ClientEvent {
	return cm.clientEventChan
}

// ConnectClient adds a new client to the manager and returns its ID
func (cm *ClientManager) ConnectClient(conn *websocket.Conn) string {
	cm.clientsLock.Lock()
	clientID := uuid.NewString()
	cm.clients[clientID] = &Client{
		ID:   clientID,
		conn: conn,
	}
	cm.clientsLock.Unlock()

	cm.clientEventChan <- ClientEvent{
		ClientID: clientID,
		Type:     ClientEventTypeConnect,
	}

	return clientID
}

// DisconnectClient removes a client from the manager
func (cm *ClientManager) DisconnectClient(clientID string) {
	cm.clientsLock.Lock()
	_, ok := cm.clients[clientID]
	if ok {
		delete(cm.clients, clientID)
	}
	cm.clientsLock.Unlock()

	if !ok {
		return
	}

	cm.clientEventChan <- ClientEvent{
		ClientID: clientID,
		Type:     ClientEventTypeDisconnect,
	}
}

// Exists reports whether a client is connected
func (cm *ClientManager) Exists(clientID string) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// Len returns the number of connected clients
func (cm *ClientManager) Len() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}

// getClients returns a snapshot of the connected clients
func (cm *ClientManager) getClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	return clients
}

// Broadcast sends a message to all connected clients
func (cm *ClientManager) Broadcast(msg *messages.Message) {
	for _, client := range cm.getClients() {
		if err := client.Send(msg); err != nil {
			log.Error("Failed to write %s message to client %s: %v", msg.Type, client.ID, err)
		}
	}
}

// BroadcastExcept sends a message to all connected clients except one
func (cm *ClientManager) BroadcastExcept(clientID string, msg *messages.Message) {
	for _, client := range cm.getClients() {
		if client.ID == clientID {
			continue
		}
		if err := client.Send(msg); err != nil {
			log.Error("Failed to write %s message to client %s: %v", msg.Type, client.ID, err)
		}
	}
}

// SendTo sends a message to a single client
func (cm *ClientManager) SendTo(clientID string, msg *messages.Message) {
	cm.clientsLock.RLock()
	client, ok := cm.clients[clientID]
	cm.clientsLock.RUnlock()
	if !ok {
		log.Debug("Dropping %s message for unknown client %s", msg.Type, clientID)
		return
	}
	if err := client.Send(msg); err != nil {
		log.Error("Failed to write %s message to client %s: %v", msg.Type, clientID, err)
	}
}
