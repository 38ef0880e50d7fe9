package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

type auditService struct {
	store ports.RegistrationStore
}

func NewAuditService(store ports.RegistrationStore) ports.AuditService {
	return &auditService{
		store: store,
	}
}

func (s *auditService) AuditCurrentPoll(ctx context.Context) (*domain.PollAudit, error) {
	pollID, err := s.store.ReadCurrentPollID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current poll: %w", err)
	}
	return s.auditPoll(ctx, pollID)
}

// AuditPolls audits every poll concurrently. Results keep the order of
// pollIDs.
func (s *auditService) AuditPolls(ctx context.Context, pollIDs []int64) ([]*domain.PollAudit, error) {
	audits := make([]*domain.PollAudit, len(pollIDs))

	var wg sync.WaitGroup
	errChan := make(chan error, len(pollIDs))

	for i, pollID := range pollIDs {
		wg.Add(1)
		go func(i int, pollID int64) {
			defer wg.Done()
			audit, err := s.auditPoll(ctx, pollID)
			if err != nil {
				errChan <- err
				return
			}
			audits[i] = audit
		}(i, pollID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return audits, nil
}

func (s *auditService) auditPoll(ctx context.Context, pollID int64) (*domain.PollAudit, error) {
	capacity, err := s.store.ReadPollCapacity(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to audit poll %d: %w", pollID, err)
	}

	participants, err := s.store.ListParticipants(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to audit poll %d: %w", pollID, err)
	}

	return buildAudit(pollID, capacity, participants), nil
}

func buildAudit(pollID int64, capacity int, participants []domain.Participant) *domain.PollAudit {
	audit := &domain.PollAudit{
		PollID:       pollID,
		Capacity:     capacity,
		Participants: len(participants),
	}

	if overflow := len(participants) - capacity; overflow > 0 {
		audit.Overflow = overflow
	}

	selfEntries := make(map[string]int)
	for _, p := range participants {
		if p.Friend.IsSelfEntry() {
			audit.SelfEntries++
			selfEntries[p.Person]++
			if selfEntries[p.Person] == 2 {
				audit.DuplicateSelfEntries = append(audit.DuplicateSelfEntries, p.Person)
			}
			continue
		}
		audit.Nominations++
	}

	return audit
}
