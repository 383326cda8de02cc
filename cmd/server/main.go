package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calexi/crossfire/pkg/api"
	"github.com/calexi/crossfire/pkg/clock"
	"github.com/calexi/crossfire/pkg/game"
	gametypes "github.com/calexi/crossfire/pkg/game/types"
	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/network"
	"github.com/calexi/crossfire/pkg/queue"
	"github.com/calexi/crossfire/pkg/registry"
	"github.com/calexi/crossfire/pkg/respawn"
	"github.com/calexi/crossfire/pkg/workers"
)

func main() {
	wsPort := flag.Int("ws-port", 8080, "WebSocket port to listen on")
	apiPort := flag.Int("api-port", 8081, "HTTP API port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	maxHealth := flag.Int("max-health", game.DefaultSettings().MaxHealth, "Maximum player health")
	respawnDelay := flag.Duration("respawn-delay", game.DefaultSettings().RespawnDelay, "Delay between death and automatic respawn")
	tickInterval := flag.Duration("tick-interval", 50*time.Millisecond, "Game loop interval")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := game.DefaultSettings()
	settings.MaxHealth = *maxHealth
	settings.RespawnDelay = *respawnDelay

	clientManager := network.NewClientManager()
	clientMessageQueue := queue.NewInMemoryQueue(10000)
	connectionEventQueue := queue.NewInMemoryQueue(1000)

	wsServer := network.NewWSServer(network.NewWSServerOptions{
		Port:          *wsPort,
		ClientManager: clientManager,
		MessageQueue:  clientMessageQueue,
	})
	go wsServer.Start(ctx)

	clientEventWorker := workers.NewClientEventWorker(workers.NewClientEventWorkerOptions{
		ClientManager:        clientManager,
		ConnectionEventQueue: connectionEventQueue,
	})
	go clientEventWorker.Start()

	playerRegistry := registry.NewRegistry()

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:     *apiPort,
		Registry: playerRegistry,
	})
	go apiServer.Start()
	defer apiServer.Stop(context.Background())

	gameClock := clock.New()
	respawner := respawn.NewScheduler(respawn.NewSchedulerOptions{
		Clock: gameClock,
		Delay: settings.RespawnDelay,
		Notify: func(playerID string) {
			if err := connectionEventQueue.Enqueue(&gametypes.RespawnPlayerEvent{ClientID: playerID}); err != nil {
				log.Error("Failed to enqueue respawn event for player %s: %v", playerID, err)
			}
		},
	})

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Broadcaster:          clientManager,
		ClientMessageQueue:   clientMessageQueue,
		ConnectionEventQueue: connectionEventQueue,
		Registry:             playerRegistry,
		Respawner:            respawner,
		Clock:                gameClock,
		Settings:             settings,
		GameLoopInterval:     *tickInterval,
	})

	log.Info("Starting game manager")
	if err := gameManager.Start(ctx); err != nil {
		log.Error("Game manager stopped: %v", err)
	}
}
