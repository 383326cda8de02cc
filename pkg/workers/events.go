package workers

import (
	"github.com/calexi/crossfire/pkg/game/types"
	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/network"
	"github.com/calexi/crossfire/pkg/queue"
)

// ClientEventWorker translates transport-level connect and disconnect
// events into connection events for the game loop to process.
type ClientEventWorker struct {
	clientManager        *network.ClientManager
	connectionEventQueue queue.Queue
}

type NewClientEventWorkerOptions struct {
	ClientManager        *network.ClientManager
	ConnectionEventQueue queue.Queue
}

func NewClientEventWorker(opts NewClientEventWorkerOptions) *ClientEventWorker {
	return &ClientEventWorker{
		clientManager:        opts.ClientManager,
		connectionEventQueue: opts.ConnectionEventQueue,
	}
}

func (w *ClientEventWorker) Start() {
	for event := range w.clientManager.GetClientEventChan() {
		switch event.Type {
		case network.ClientEventTypeConnect:
			w.enqueue(&types.ConnectPlayerEvent{ClientID: event.ClientID})
		case network.ClientEventTypeDisconnect:
			w.enqueue(&types.DisconnectPlayerEvent{ClientID: event.ClientID})
		default:
			log.Error("Unknown client event type: %v", event.Type)
		}
	}
}

func (w *ClientEventWorker) enqueue(event interface{}) {
	if err := w.connectionEventQueue.Enqueue(event); err != nil {
		log.Error("Failed to enqueue connection event: %v", err)
	}
}
