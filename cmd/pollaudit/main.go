package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vncsmyrnk/raffle/internal/adapters/repository"
	"github.com/vncsmyrnk/raffle/internal/config"
	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/services"
)

func main() {
	var pollList string
	flag.StringVar(&pollList, "polls", "", "Comma separated poll ids to audit (default: the current poll)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	pollIDs, err := parsePollIDs(pollList)
	if err != nil {
		logger.Error("invalid -polls flag", "error", err)
		os.Exit(2)
	}

	db, err := repository.OpenDB(cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	storeClient := services.NewStoreClient(repository.NewParticipantStore(cfg, db),
		services.WithRetryInterval(cfg.RetryInterval),
		services.WithStoreLogger(logger),
	)
	auditService := services.NewAuditService(storeClient)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("starting poll audit")

	var audits []*domain.PollAudit
	if len(pollIDs) == 0 {
		audit, err := auditService.AuditCurrentPoll(ctx)
		if err != nil {
			logger.Error("poll audit failed", "error", err)
			os.Exit(1)
		}
		audits = append(audits, audit)
	} else {
		audits, err = auditService.AuditPolls(ctx, pollIDs)
		if err != nil {
			logger.Error("poll audit failed", "error", err)
			os.Exit(1)
		}
	}

	inconsistent := false
	for _, a := range audits {
		attrs := []any{
			"poll", a.PollID,
			"capacity", a.Capacity,
			"participants", a.Participants,
			"self_entries", a.SelfEntries,
			"nominations", a.Nominations,
		}
		if a.Consistent() {
			logger.Info("poll consistent", attrs...)
			continue
		}
		inconsistent = true
		attrs = append(attrs, "overflow", a.Overflow, "duplicate_self_entries", a.DuplicateSelfEntries)
		logger.Warn("poll inconsistent", attrs...)
	}

	if inconsistent {
		os.Exit(3)
	}
	logger.Info("poll audit completed successfully")
}

func parsePollIDs(list string) ([]int64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(list, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
