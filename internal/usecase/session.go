package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/observability"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/tictactoe"
)

type boardPublisher interface {
	Publish(ctx context.Context, snapshot entity.Snapshot) error
}

// Session owns the one game of a front end and the phase it is in.
// It is not safe for concurrent use; the front end serializes its events.
type Session struct {
	logger    *slog.Logger
	publisher boardPublisher

	id     string
	state  *entity.GameState
	status string
	winner entity.Player
}

// NewSession - starts a session with a fresh game. publisher may be nil.
func NewSession(ctx context.Context, logger *slog.Logger, publisher boardPublisher) *Session {
	session := &Session{
		logger:    logger.With("component", "session"),
		publisher: publisher,
		state:     entity.NewGameState(),
	}

	session.start(ctx)

	return session
}

// Move - handles one move event from the front end.
// A move onto an occupied cell is not an error; the game simply waits for another move.
func (that *Session) Move(ctx context.Context, row, col int) error {
	log := that.logger.With("method", "Move", "sessionID", that.id, "row", row, "col", col)

	if that.IsFinished() {
		observability.MovesTotal.WithLabelValues(observability.MoveRejected).Inc()
		return apperror.ErrGameFinished
	}

	player := that.state.CurrentPlayer
	before := that.state.Field

	if err := tictactoe.MakeTurn(that.state, row, col); err != nil {
		observability.MovesTotal.WithLabelValues(observability.MoveRejected).Inc()
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if before == that.state.Field {
		observability.MovesTotal.WithLabelValues(observability.MoveIgnored).Inc()
		log.Debug("cell is already occupied, move ignored")

		return nil
	}

	observability.MovesTotal.WithLabelValues(observability.MoveAccepted).Inc()

	that.status, that.winner = tictactoe.Evaluate(that.state)

	log.Debug("move applied", "player", player.Mark(), "status", that.status)

	switch that.status {
	case entity.StatusWon:
		observability.GamesTotal.WithLabelValues("won_" + strings.ToLower(that.winner.Mark())).Inc()
		log.Info("game won", "winner", that.winner.Mark())
	case entity.StatusDraw:
		observability.GamesTotal.WithLabelValues("draw").Inc()
		log.Info("game ended in a draw")
	}

	that.publish(ctx)

	return nil
}

// Reset - discards the current game and starts a new one.
func (that *Session) Reset(ctx context.Context) {
	that.state.Reset()
	that.start(ctx)
}

func (that *Session) start(ctx context.Context) {
	that.id = uuid.NewString()
	that.status = entity.StatusAwaitingMove
	that.winner = entity.NoPlayer

	observability.SessionsTotal.Inc()
	that.logger.Info("new game", "sessionID", that.id)

	that.publish(ctx)
}

// publish - hands the new board to the publisher. Spectators are best effort, so failures are only logged.
func (that *Session) publish(ctx context.Context) {
	if that.publisher == nil {
		return
	}

	if err := that.publisher.Publish(ctx, that.Snapshot()); err != nil && !errors.Is(err, context.Canceled) {
		that.logger.Error("failed to publish board", "sessionID", that.id, "error", err)
	}
}

func (that *Session) ID() string {
	return that.id
}

// State - returns the live state for renderers. Callers must not modify it.
func (that *Session) State() *entity.GameState {
	return that.state
}

func (that *Session) Status() string {
	return that.status
}

// Winner - returns the winning player, NoPlayer unless the status is won.
func (that *Session) Winner() entity.Player {
	return that.winner
}

func (that *Session) IsFinished() bool {
	return that.status != entity.StatusAwaitingMove
}

func (that *Session) Snapshot() entity.Snapshot {
	return entity.NewSnapshot(that.id, that.state, that.status, that.winner)
}
