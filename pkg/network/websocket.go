package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/messages"
	"github.com/calexi/crossfire/pkg/queue"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// WSServer accepts WebSocket connections and feeds inbound messages
// into the client message queue for the game loop.
type WSServer struct {
	port          int
	clientManager *ClientManager
	messageQueue  queue.Queue
	tls           *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port          int
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	TLS           *TLSConfig
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:          opts.Port,
		clientManager: opts.ClientManager,
		messageQueue:  opts.MessageQueue,
		tls:           opts.TLS,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  messages.MessageBufferSize,
	WriteBufferSize: messages.MessageBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Start starts the WebSocket server.
func (s *WSServer) Start(ctx context.Context) {
	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		log.Debug("New WebSocket connection from %s", conn.RemoteAddr().String())
		go s.handleWSConnection(conn)
	})

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection reads messages from one connection for its whole
// lifetime. Messages are stamped with the server-assigned client ID
// before being enqueued, so FIFO per connection is inherited from the
// read loop and the queue.
func (s *WSServer) handleWSConnection(conn *websocket.Conn) {
	clientID := s.clientManager.ConnectClient(conn)

	defer func() {
		s.clientManager.DisconnectClient(clientID)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error("Error reading WebSocket message from client %s: %v", clientID, err)
			}
			log.Trace("Connection closed for client %s", clientID)
			return
		}

		message, err := messages.DeserializeMessage(data)
		if err != nil {
			// malformed frames are dropped, not fatal to the connection
			log.Warn("Failed to deserialize message from client %s: %v", clientID, err)
			continue
		}
		message.ClientID = clientID

		if message.Type == messages.MessageTypeClientPing {
			s.handlePing(message)
			continue
		}

		if err := s.messageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue %s message from client %s: %v", message.Type, clientID, err)
		}
	}
}

// handlePing answers a latency probe directly from the read path; it
// touches no game state, so it skips the game loop.
func (s *WSServer) handlePing(message *messages.Message) {
	pong := &messages.Message{
		ClientID: messages.ServerID,
		Type:     messages.MessageTypeServerPong,
		Payload:  message.Payload,
	}
	s.clientManager.SendTo(message.ClientID, pong)
}
