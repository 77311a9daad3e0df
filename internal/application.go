package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/mastermind/internal/config"
	"github.com/rocketscienceinc/mastermind/internal/game"
	"github.com/rocketscienceinc/mastermind/internal/mastermind"
	"github.com/rocketscienceinc/mastermind/internal/repository"
	"github.com/rocketscienceinc/mastermind/internal/repository/storage"
	"github.com/rocketscienceinc/mastermind/internal/service"
	"github.com/rocketscienceinc/mastermind/transport/rest"
	"github.com/rocketscienceinc/mastermind/transport/restclient"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// Console is where a game session reads guesses and writes feedback.
type Console struct {
	In  io.Reader
	Out io.Writer
}

func StdConsole() Console {
	return Console{In: os.Stdin, Out: os.Stdout}
}

// RunLocal plays one session with the secret kept in this process.
func RunLocal(ctx context.Context, logger *slog.Logger, conf *config.Config, console Console) error {
	rules, err := conf.Rules()
	if err != nil {
		return fmt.Errorf("invalid game rules: %w", err)
	}

	authority := game.NewLocalAuthority(rules, mastermind.NewGenerator())

	return runLoop(ctx, logger, conf, authority, console)
}

// RunRemote plays one session against the authority service at baseURL.
// An empty baseURL falls back to the configured one.
func RunRemote(ctx context.Context, logger *slog.Logger, conf *config.Config, baseURL string, console Console) error {
	if baseURL == "" {
		baseURL = conf.Remote.BaseURL
	}

	client, err := restclient.New(logger, baseURL, conf.Remote.Timeout)
	if err != nil {
		return fmt.Errorf("could not create remote client: %w", err)
	}

	return runLoop(ctx, logger, conf, restclient.NewAuthority(client), console)
}

func runLoop(ctx context.Context, logger *slog.Logger, conf *config.Config, authority game.Authority, console Console) error {
	rules, err := conf.Rules()
	if err != nil {
		return fmt.Errorf("invalid game rules: %w", err)
	}

	loop := game.NewLoop(logger, rules, authority, game.NewRenderer(console.Out, conf.Colored()))

	if err = loop.Run(ctx, console.In); err != nil {
		return err
	}

	logger.Info("session ended", "state", loop.State().String(), "attempts", loop.Attempts())

	return nil
}

// RunServer - runs the authority service until SIGINT or SIGTERM.
func RunServer(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	rules, err := conf.Rules()
	if err != nil {
		return fmt.Errorf("invalid game rules: %w", err)
	}

	sessionRepo, closeRepo, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameService := service.NewGameService(logger, rules, mastermind.NewGenerator(), sessionRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)

	if err = rest.New(logger, gameService, registry).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newSessionRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeRepo := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSessionRepository(redisStorage, conf.SessionTTL), closeRepo, nil
}
