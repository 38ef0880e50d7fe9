// Package storetest holds behaviour shared by every ports.ParticipantStore
// implementation.
package storetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

// Seeder writes the records this service only ever reads.
type Seeder interface {
	SetCurrentPoll(t *testing.T, pollID int64)
	CreatePoll(t *testing.T, pollID int64, max int)
}

// Factory returns an empty store built with the given page size.
type Factory func(t *testing.T, pageSize int) (ports.ParticipantStore, Seeder)

func Run(t *testing.T, newStore Factory) {
	t.Run("missing current poll", func(t *testing.T) {
		store, _ := newStore(t, 10)
		_, err := store.GetCurrentPollID(context.Background())
		assert.ErrorIs(t, err, domain.ErrPollNotFound)
	})

	t.Run("current poll and capacity", func(t *testing.T) {
		store, seed := newStore(t, 10)
		seed.CreatePoll(t, 12, 40)
		seed.SetCurrentPoll(t, 12)

		pollID, err := store.GetCurrentPollID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(12), pollID)

		poll, err := store.GetPoll(context.Background(), pollID)
		require.NoError(t, err)
		assert.Equal(t, &domain.Poll{ID: 12, Max: 40}, poll)

		_, err = store.GetPoll(context.Background(), 13)
		assert.ErrorIs(t, err, domain.ErrPollNotFound)
	})

	t.Run("put and query round trip", func(t *testing.T) {
		store, seed := newStore(t, 10)
		seed.CreatePoll(t, 1, 10)
		ctx := context.Background()

		self := domain.Participant{Poll: 1, Added: 100, Person: "ана", Friend: domain.NoFriend()}
		nominated := domain.Participant{Poll: 1, Added: 200, Person: "ана", Friend: domain.FriendNamed("marko + petar")}
		other := domain.Participant{Poll: 2, Added: 150, Person: "bojan", Friend: domain.NoFriend()}
		for _, p := range []domain.Participant{nominated, self, other} {
			require.NoError(t, store.PutParticipant(ctx, &p))
		}

		page, err := store.QueryParticipants(ctx, 1, "")
		require.NoError(t, err)
		assert.Empty(t, page.NextPageToken)
		assert.Equal(t, []domain.Participant{self, nominated}, page.Participants)
	})

	t.Run("repeated put is idempotent", func(t *testing.T) {
		store, _ := newStore(t, 10)
		ctx := context.Background()

		p := domain.Participant{Poll: 1, Added: 100, Person: "ana", Friend: domain.NoFriend()}
		require.NoError(t, store.PutParticipant(ctx, &p))
		require.NoError(t, store.PutParticipant(ctx, &p))

		sameMillisecond := domain.Participant{Poll: 1, Added: 100, Person: "bojan", Friend: domain.NoFriend()}
		require.NoError(t, store.PutParticipant(ctx, &sameMillisecond))

		page, err := store.QueryParticipants(ctx, 1, "")
		require.NoError(t, err)
		assert.Len(t, page.Participants, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		store, _ := newStore(t, 3)
		ctx := context.Background()

		var want []domain.Participant
		for i := 0; i < 8; i++ {
			p := domain.Participant{Poll: 5, Added: int64(1000 + i/2), Person: fmt.Sprintf("person %d", i), Friend: domain.NoFriend()}
			require.NoError(t, store.PutParticipant(ctx, &p))
			want = append(want, p)
		}

		var got []domain.Participant
		var pageSizes []int
		token := ""
		for {
			page, err := store.QueryParticipants(ctx, 5, token)
			require.NoError(t, err)
			got = append(got, page.Participants...)
			pageSizes = append(pageSizes, len(page.Participants))
			if page.NextPageToken == "" {
				break
			}
			token = page.NextPageToken
		}

		assert.Equal(t, []int{3, 3, 2}, pageSizes)
		assert.Equal(t, want, got)
	})

	t.Run("exact page boundary has no extra page", func(t *testing.T) {
		store, _ := newStore(t, 2)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			p := domain.Participant{Poll: 5, Added: int64(i), Person: "ana", Friend: domain.FriendNamed(fmt.Sprintf("f%d", i))}
			require.NoError(t, store.PutParticipant(ctx, &p))
		}

		page, err := store.QueryParticipants(ctx, 5, "")
		require.NoError(t, err)
		assert.Len(t, page.Participants, 2)
		assert.Empty(t, page.NextPageToken)
	})

	t.Run("invalid page token", func(t *testing.T) {
		store, _ := newStore(t, 2)
		_, err := store.QueryParticipants(context.Background(), 5, "not a token!")
		assert.Error(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		store, _ := newStore(t, 2)
		assert.NoError(t, store.Ping(context.Background()))
	})
}
