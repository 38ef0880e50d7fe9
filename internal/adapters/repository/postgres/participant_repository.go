package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/raffle/internal/adapters/repository/pagetoken"
	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

const DefaultPageSize = 100

type participantRepository struct {
	db       *sql.DB
	pageSize int
}

func NewParticipantRepository(db *sql.DB, pageSize int) ports.ParticipantStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &participantRepository{
		db:       db,
		pageSize: pageSize,
	}
}

func (r *participantRepository) GetCurrentPollID(ctx context.Context) (int64, error) {
	query := `SELECT value FROM config WHERE id = $1`

	var pollID int64
	err := r.db.QueryRowContext(ctx, query, domain.CurrentPollKey).Scan(&pollID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("current poll pointer: %w", domain.ErrPollNotFound)
		}
		return 0, fmt.Errorf("failed to get current poll: %w", err)
	}
	return pollID, nil
}

func (r *participantRepository) GetPoll(ctx context.Context, id int64) (*domain.Poll, error) {
	query := `SELECT id, max FROM polls WHERE id = $1`

	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, query, id).Scan(&poll.ID, &poll.Max)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("poll %d: %w", id, domain.ErrPollNotFound)
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return &poll, nil
}

func (r *participantRepository) QueryParticipants(ctx context.Context, pollID int64, pageToken string) (*ports.ParticipantPage, error) {
	cursor, err := pagetoken.Decode(pageToken)
	if err != nil {
		return nil, err
	}

	// One extra row tells whether another page follows.
	limit := r.pageSize + 1

	var rows *sql.Rows
	if cursor == nil {
		query := `
			SELECT poll, added, person, friend
			FROM participants
			WHERE poll = $1
			ORDER BY added, person, friend
			LIMIT $2
		`
		rows, err = r.db.QueryContext(ctx, query, pollID, limit)
	} else {
		query := `
			SELECT poll, added, person, friend
			FROM participants
			WHERE poll = $1 AND (added, person, friend) > ($2, $3, $4)
			ORDER BY added, person, friend
			LIMIT $5
		`
		rows, err = r.db.QueryContext(ctx, query, pollID, cursor.Added, cursor.Person, cursor.Friend, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		var friend string
		if err := rows.Scan(&p.Poll, &p.Added, &p.Person, &friend); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Friend = domain.ParseFriend(friend)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	page := &ports.ParticipantPage{Participants: participants}
	if len(participants) > r.pageSize {
		page.Participants = participants[:r.pageSize]
		page.NextPageToken = pagetoken.Encode(pagetoken.CursorAfter(page.Participants[r.pageSize-1]))
	}
	return page, nil
}

func (r *participantRepository) PutParticipant(ctx context.Context, participant *domain.Participant) error {
	query := `
		INSERT INTO participants (poll, added, person, friend)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (poll, added, person, friend) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, participant.Poll, participant.Added, participant.Person, participant.Friend.String())
	if err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}
	return nil
}

func (r *participantRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
