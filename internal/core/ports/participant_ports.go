package ports

import (
	"context"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
)

type ParticipantPage struct {
	Participants []domain.Participant
	// NextPageToken is empty on the last page.
	NextPageToken string
}

// ParticipantStore is the raw storage backend. Implementations make a single
// attempt per call and return domain.ErrPollNotFound for missing records.
type ParticipantStore interface {
	GetCurrentPollID(ctx context.Context) (int64, error)
	GetPoll(ctx context.Context, id int64) (*domain.Poll, error)
	QueryParticipants(ctx context.Context, pollID int64, pageToken string) (*ParticipantPage, error)
	PutParticipant(ctx context.Context, participant *domain.Participant) error
	Ping(ctx context.Context) error
}

// RegistrationStore is the retrying view of the store used by the registrar.
// Every failure it returns wraps domain.ErrStoreUnavailable.
type RegistrationStore interface {
	ReadCurrentPollID(ctx context.Context) (int64, error)
	ReadPollCapacity(ctx context.Context, pollID int64) (int, error)
	ListParticipants(ctx context.Context, pollID int64) ([]domain.Participant, error)
	AppendParticipant(ctx context.Context, participant *domain.Participant) error
}

// RegisterInput holds the raw request fields. A nil field was absent.
type RegisterInput struct {
	Person *string
	Friend *string
}

type ParticipantService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Participant, error)
}
