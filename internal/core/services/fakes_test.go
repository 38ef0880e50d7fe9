package services

import (
	"context"
	"errors"
	"sync"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

var errStoreDown = errors.New("connection reset by peer")

// fakeStore serves pages keyed by token and fails the next N calls of each
// operation as scripted.
type fakeStore struct {
	mu sync.Mutex

	currentPollID int64
	polls         map[int64]*domain.Poll
	pages         map[string]*ports.ParticipantPage
	puts          []domain.Participant

	failures map[string]int
	calls    map[string]int
	tokens   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		polls:    map[int64]*domain.Poll{},
		pages:    map[string]*ports.ParticipantPage{"": {}},
		failures: map[string]int{},
		calls:    map[string]int{},
	}
}

func (f *fakeStore) failNext(op string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = n
}

func (f *fakeStore) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if f.failures[op] > 0 {
		f.failures[op]--
		return errStoreDown
	}
	return nil
}

func (f *fakeStore) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) GetCurrentPollID(ctx context.Context) (int64, error) {
	if err := f.record("current"); err != nil {
		return 0, err
	}
	if f.currentPollID == 0 {
		return 0, domain.ErrPollNotFound
	}
	return f.currentPollID, nil
}

func (f *fakeStore) GetPoll(ctx context.Context, id int64) (*domain.Poll, error) {
	if err := f.record("poll"); err != nil {
		return nil, err
	}
	poll, ok := f.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return poll, nil
}

func (f *fakeStore) QueryParticipants(ctx context.Context, pollID int64, pageToken string) (*ports.ParticipantPage, error) {
	if err := f.record("query"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.tokens = append(f.tokens, pageToken)
	f.mu.Unlock()
	page, ok := f.pages[pageToken]
	if !ok {
		return nil, errors.New("unknown page token")
	}
	return page, nil
}

func (f *fakeStore) PutParticipant(ctx context.Context, participant *domain.Participant) error {
	if err := f.record("put"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, *participant)
	return nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.record("ping")
}

func selfEntry(poll int64, added int64, person string) domain.Participant {
	return domain.Participant{Poll: poll, Added: added, Person: person, Friend: domain.NoFriend()}
}

func nomination(poll int64, added int64, person, friend string) domain.Participant {
	return domain.Participant{Poll: poll, Added: added, Person: person, Friend: domain.FriendNamed(friend)}
}

func ptr(s string) *string {
	return &s
}
