package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/beka-birhanu/pacmon-arena/api"
	"github.com/beka-birhanu/pacmon-arena/config"
	"github.com/beka-birhanu/pacmon-arena/game"
	"github.com/beka-birhanu/pacmon-arena/registry"
	"github.com/beka-birhanu/pacmon-arena/remote"
	"github.com/beka-birhanu/pacmon-arena/render"
	"github.com/beka-birhanu/pacmon-arena/service"
	"github.com/beka-birhanu/pacmon-arena/service/i"
	"github.com/beka-birhanu/pacmon-arena/telemetry"
)

// Global variables for dependencies
var (
	syncServer         *http.Server
	syncClient         *remote.Client
	playerRegistry     *registry.Memory
	gameSessionManager i.GameSessionManager
	appLogger          general_i.Logger
)

func initTelemetry(ctx context.Context) func(context.Context) error {
	shutdown, err := telemetry.Setup(ctx, "pacmon-arena", config.Envs.OtelEndpoint)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Setting up telemetry: %v", err))
		os.Exit(1)
	}
	if config.Envs.OtelEndpoint != "" {
		appLogger.Info(fmt.Sprintf("Exporting traces to: %s", config.Envs.OtelEndpoint))
	}
	return shutdown
}

// initSyncServer starts the local sync server when an address is configured
// and points the client at it.
func initSyncServer() string {
	if config.Envs.DevServer == "" {
		return config.Envs.SyncURL
	}

	serverLogger, err := logger.New("SYNC-SERVER", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sync server logger: %v", err))
		os.Exit(1)
	}
	server, err := api.NewServer(&api.Config{
		APIKey:  config.Envs.APIKey,
		ChainID: config.Envs.ChainID,
		Logger:  serverLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sync server: %v", err))
		os.Exit(1)
	}

	listener, err := net.Listen("tcp", config.Envs.DevServer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Listening tcp: %v", err))
		os.Exit(1)
	}
	syncServer = &http.Server{Handler: server.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := syncServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(fmt.Sprintf("Serving sync server: %v", err))
		}
	}()

	appLogger.Info(fmt.Sprintf("Serving sync server at: %s", listener.Addr()))
	return "http://" + listener.Addr().String()
}

func initSyncClient(baseURL string) {
	client, err := remote.NewClient(&remote.Config{
		BaseURL: baseURL,
		APIKey:  config.Envs.APIKey,
		ChainID: config.Envs.ChainID,
		Timeout: config.Envs.RequestTimeout,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sync client: %v", err))
		os.Exit(1)
	}
	syncClient = client
	appLogger.Info(fmt.Sprintf("Sync client initialized for: %s", baseURL))
}

func initRegistry(ctx context.Context) {
	registryLogger, err := logger.New("REGISTRY", config.ColorYellow, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating registry logger: %v", err))
		os.Exit(1)
	}
	playerRegistry = registry.NewMemory(config.Envs.RegistrationFee)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-playerRegistry.Notifications():
				registryLogger.Info(fmt.Sprintf("%s: %s %q at %s", n.Kind, n.Address, n.Username, n.Timestamp.Format(time.RFC3339)))
			}
		}
	}()
	appLogger.Info("Registry initialized")
}

func initGameSessionManager() {
	gameLogger, err := logger.New("GAME-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game session manager logger: %v", err))
		os.Exit(1)
	}
	sessionLogger, err := logger.New("SESSION", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session logger: %v", err))
		os.Exit(1)
	}

	manager, err := service.NewGameSessionManager(
		&service.Config{
			Registry:        playerRegistry,
			Remote:          syncClient,
			Events:          &service.LogEvents{Logger: sessionLogger},
			Logger:          gameLogger,
			SessionLogger:   sessionLogger,
			PlayerColor:     config.Envs.PlayerColor,
			Seed:            config.Envs.Seed,
			RegistrationFee: config.Envs.RegistrationFee,
			PullInterval:    config.Envs.PullInterval,
			PushInterval:    config.Envs.PushInterval,
			FrameInterval:   time.Second / time.Duration(config.Envs.FrameRate),
		},
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game session manager: %v", err))
		os.Exit(1)
	}
	gameSessionManager = manager
	appLogger.Info("Game Session Manager initialized")
}

func startSession(ctx context.Context) i.Session {
	playerID := cmp.Or(config.Envs.PlayerID, uuid.NewString())
	desired := cmp.Or(config.Envs.DesiredUsername, config.Envs.Username)

	identity, err := gameSessionManager.Enroll(ctx, playerID, desired)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Enrolling player %s: %v", playerID, err))
		os.Exit(1)
	}
	session, err := gameSessionManager.NewSession(ctx, identity)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Starting session: %v", err))
		os.Exit(1)
	}
	return session
}

func run(ctx context.Context, session i.Session) error {
	if config.Envs.Headless {
		appLogger.Info("Running headless")
		session.Run(ctx, func() game.KeySet { return 0 })
		return nil
	}

	g, err := render.NewGame(ctx, &render.Config{Session: session})
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(game.CanvasWidth, game.CanvasHeight)
	ebiten.SetWindowTitle("pacmon arena")
	ebiten.SetTPS(config.Envs.FrameRate)
	return ebiten.RunGame(g)
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := initTelemetry(ctx)
	initSyncClient(initSyncServer())
	initRegistry(ctx)
	initGameSessionManager()

	defer func() {
		gameSessionManager.StopAll()
		if syncServer != nil {
			_ = syncServer.Close()
		}
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			appLogger.Warning(fmt.Sprintf("Flushing traces: %v", err))
		}
	}()

	session := startSession(ctx)
	if err := run(ctx, session); err != nil {
		appLogger.Error(fmt.Sprintf("Running game: %v", err))
	}
	appLogger.Info("Shutting down")
}
