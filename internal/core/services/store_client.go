package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

const (
	// storeAttempts bounds every store call: the first try plus one retry.
	storeAttempts = 2

	DefaultRetryInterval = time.Second
)

type storeClient struct {
	store         ports.ParticipantStore
	retryInterval time.Duration
	logger        *slog.Logger
}

type StoreClientOption func(*storeClient)

func WithRetryInterval(d time.Duration) StoreClientOption {
	return func(c *storeClient) {
		c.retryInterval = d
	}
}

func WithStoreLogger(logger *slog.Logger) StoreClientOption {
	return func(c *storeClient) {
		c.logger = logger
	}
}

// NewStoreClient wraps store so that each operation is attempted at most
// twice with a fixed pause in between.
func NewStoreClient(store ports.ParticipantStore, opts ...StoreClientOption) ports.RegistrationStore {
	c := &storeClient{
		store:         store,
		retryInterval: DefaultRetryInterval,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *storeClient) ReadCurrentPollID(ctx context.Context) (int64, error) {
	return retry(ctx, c, "read current poll", func() (int64, error) {
		return c.store.GetCurrentPollID(ctx)
	})
}

func (c *storeClient) ReadPollCapacity(ctx context.Context, pollID int64) (int, error) {
	return retry(ctx, c, "read poll capacity", func() (int, error) {
		poll, err := c.store.GetPoll(ctx, pollID)
		if err != nil {
			return 0, err
		}
		return poll.Max, nil
	})
}

// ListParticipants follows continuation tokens until the store reports no
// more pages and returns the pages concatenated in store order. Each page
// fetch gets its own retry budget.
func (c *storeClient) ListParticipants(ctx context.Context, pollID int64) ([]domain.Participant, error) {
	var participants []domain.Participant
	token := ""

	for {
		page, err := retry(ctx, c, "query participants", func() (*ports.ParticipantPage, error) {
			return c.store.QueryParticipants(ctx, pollID, token)
		})
		if err != nil {
			return nil, err
		}

		participants = append(participants, page.Participants...)

		if page.NextPageToken == "" {
			return participants, nil
		}
		if page.NextPageToken == token {
			return nil, fmt.Errorf("%w: query participants: continuation token did not advance", domain.ErrStoreUnavailable)
		}
		token = page.NextPageToken
	}
}

func (c *storeClient) AppendParticipant(ctx context.Context, participant *domain.Participant) error {
	_, err := retry(ctx, c, "put participant", func() (struct{}, error) {
		return struct{}{}, c.store.PutParticipant(ctx, participant)
	})
	return err
}

func retry[T any](ctx context.Context, c *storeClient, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	result, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := fn()
		if errors.Is(err, domain.ErrPollNotFound) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryInterval)),
		backoff.WithMaxTries(storeAttempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("store operation failed, retrying",
				"operation", op,
				"attempt", attempt,
				"retry_in", next,
				"error", err,
			)
		}),
	)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
	}
	return result, nil
}
