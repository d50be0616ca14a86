package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/config"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/render"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/repository"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/tui"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-canvas/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunServe - serves the game in the browser until a signal arrives.
func RunServe(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	surface, err := canvas.Setup(conf.Canvas.Viewport, conf.Canvas.Viewport, canvas.PixelAspect)
	if err != nil {
		return fmt.Errorf("could not set up the board: %w", err)
	}

	session, closeStorage, err := newSession(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	server := rest.New(logger, session, render.NewCanvas(conf.Canvas.LineWidth), surface)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "board", fmt.Sprintf("%dx%d", surface.Width, surface.Height))
		if httpErr := server.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunPlay - runs the game in the terminal.
func RunPlay(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	session, closeStorage, err := newSession(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	program := tea.NewProgram(
		tui.NewGameModel(ctx, logger, session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err = program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal game failed: %w", err)
	}

	return nil
}

// RunWatch - follows the board broadcast in the terminal.
func RunWatch(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	client, err := connectRedis(ctx, conf)
	if err != nil {
		return err
	}
	defer closeRedis(log, client)

	boardRepo := repository.NewBoardRepository(logger, client, conf.Redis.Channel)

	boards, err := boardRepo.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("could not subscribe to boards: %w", err)
	}

	var latest *entity.Snapshot

	board, err := boardRepo.Latest(ctx)
	switch {
	case errors.Is(err, apperror.ErrBoardNotFound):
		log.Info("no game published yet")
	case err != nil:
		return fmt.Errorf("could not read the latest board: %w", err)
	default:
		latest = &board
	}

	program := tea.NewProgram(
		tui.NewSpectatorModel(boards, latest),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err = program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("spectator failed: %w", err)
	}

	return nil
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}

		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// newSession - creates the session, broadcasting its boards when redis is enabled.
// The returned func releases the redis connection.
func newSession(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.Session, func(), error) {
	if !conf.Redis.Enabled {
		return usecase.NewSession(ctx, logger, nil), func() {}, nil
	}

	client, err := connectRedis(ctx, conf)
	if err != nil {
		return nil, nil, err
	}

	boardRepo := repository.NewBoardRepository(logger, client, conf.Redis.Channel)
	session := usecase.NewSession(ctx, logger, boardRepo)

	return session, func() { closeRedis(logger, client) }, nil
}

func connectRedis(ctx context.Context, conf *config.Config) (*redis.Client, error) {
	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	client, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return client, nil
}

func closeRedis(log *slog.Logger, client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Error("could not close redis storage", "error", err)
	}
}
