package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

const (
	latestBoardKey = "board:latest"
	latestBoardTTL = time.Hour
)

// BoardRepository broadcasts the live board to spectators. Only the latest board is stored.
type BoardRepository struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewBoardRepository(logger *slog.Logger, client *redis.Client, channel string) *BoardRepository {
	return &BoardRepository{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "board-repository"),
	}
}

// Publish - stores the snapshot as the latest board and announces it on the channel.
func (that *BoardRepository) Publish(ctx context.Context, snapshot entity.Snapshot) error {
	boardJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, latestBoardKey, boardJSON, latestBoardTTL)
		pipe.Publish(ctx, that.channel, boardJSON)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish board: %w", err)
	}

	return nil
}

// Latest - returns the most recently published board.
func (that *BoardRepository) Latest(ctx context.Context) (entity.Snapshot, error) {
	response, err := that.client.Get(ctx, latestBoardKey).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Snapshot{}, apperror.ErrBoardNotFound
	}

	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get latest board: %w", err)
	}

	return decodeSnapshot(response)
}

// Subscribe - streams published boards until ctx is done. The returned channel is closed afterwards.
func (that *BoardRepository) Subscribe(ctx context.Context) (<-chan entity.Snapshot, error) {
	log := that.logger.With("method", "Subscribe", "channel", that.channel)

	pubsub := that.client.Subscribe(ctx, that.channel)

	// wait for the subscription confirmation so no board published after return is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	boards := make(chan entity.Snapshot)

	go func() {
		defer close(boards)
		defer pubsub.Close()

		messages := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case message, ok := <-messages:
				if !ok {
					return
				}

				snapshot, err := decodeSnapshot(message.Payload)
				if err != nil {
					log.Warn("skipping malformed board", "error", err)
					continue
				}

				select {
				case boards <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return boards, nil
}

func decodeSnapshot(payload string) (entity.Snapshot, error) {
	var snapshot entity.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return snapshot, nil
}
