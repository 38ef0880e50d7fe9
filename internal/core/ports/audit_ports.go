package ports

import (
	"context"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
)

type AuditService interface {
	AuditCurrentPoll(ctx context.Context) (*domain.PollAudit, error)
	AuditPolls(ctx context.Context, pollIDs []int64) ([]*domain.PollAudit, error)
}
