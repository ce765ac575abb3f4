package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/2or5/football-manager/internal/repository"
)

type StatsService struct {
	statsRepo repository.StatsRepository
	logger    *slog.Logger
}

func NewStatsService(statsRepo repository.StatsRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// GetStats retrieves roster-wide statistics
func (s *StatsService) GetStats(ctx context.Context) (*repository.Stats, error) {
	stats, err := s.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	s.logger.Info("stats retrieved",
		slog.Int("total_teams", stats.TotalTeams),
		slog.Int("total_players", stats.TotalPlayers),
	)

	return stats, nil
}
