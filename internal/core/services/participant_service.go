package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

type participantService struct {
	store  ports.RegistrationStore
	now    func() time.Time
	logger *slog.Logger
}

type ParticipantServiceOption func(*participantService)

func WithClock(now func() time.Time) ParticipantServiceOption {
	return func(s *participantService) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) ParticipantServiceOption {
	return func(s *participantService) {
		s.logger = logger
	}
}

func NewParticipantService(store ports.RegistrationStore, opts ...ParticipantServiceOption) ports.ParticipantService {
	s := &participantService{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register enters a participant into the current poll.
//
// The capacity and duplicate checks read the store and then write without a
// transaction, so concurrent registrations can overshoot the poll capacity
// or store the same self-entry twice. The poll audit reports both cases.
func (s *participantService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Participant, error) {
	logger := s.logger.With("invocation", uuid.NewString())

	person, friend, err := ValidateNames(input.Person, input.Friend)
	if err != nil {
		logger.Info("registration rejected", "error", err)
		return nil, err
	}

	pollID, err := s.store.ReadCurrentPollID(ctx)
	if err != nil {
		logger.Error("failed to resolve current poll", "error", err)
		return nil, err
	}
	logger = logger.With("poll", pollID)

	capacity, err := s.store.ReadPollCapacity(ctx, pollID)
	if err != nil {
		logger.Error("failed to resolve poll capacity", "error", err)
		return nil, err
	}

	existing, err := s.store.ListParticipants(ctx, pollID)
	if err != nil {
		logger.Error("failed to list participants", "error", err)
		return nil, err
	}

	if len(existing) > capacity {
		logger.Warn("poll holds more participants than its capacity", "participants", len(existing), "capacity", capacity)
	}
	if len(existing) == capacity {
		logger.Info("registration rejected", "error", domain.ErrCapacityExceeded, "capacity", capacity)
		return nil, domain.ErrCapacityExceeded
	}

	if friend.IsSelfEntry() {
		for _, p := range existing {
			if p.SameSelfEntry(person) {
				err := &domain.DuplicateParticipantError{Person: person}
				logger.Info("registration rejected", "error", err)
				return nil, err
			}
		}
	}

	participant := &domain.Participant{
		Poll:   pollID,
		Added:  s.now().UnixMilli(),
		Person: person,
		Friend: friend,
	}

	if err := s.store.AppendParticipant(ctx, participant); err != nil {
		logger.Error("failed to store participant", "error", err)
		return nil, err
	}

	logger.Info("participant registered", "person", person, "friend", friend.String(), "added", participant.Added)
	return participant, nil
}
