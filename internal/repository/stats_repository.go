// Статистика по ростеру одним запросом
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type StatsRepositoryImpl struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStatsRepository(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepositoryImpl {
	return &StatsRepositoryImpl{
		pool:   pool,
		logger: logger,
	}
}

func (r *StatsRepositoryImpl) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM players),
			(SELECT COUNT(*) FROM players WHERE team_id IS NULL),
			(SELECT COALESCE(SUM(balance), 0) FROM teams)
	`

	var stats Stats
	var totalBalance decimal.Decimal
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalTeams, &stats.TotalPlayers, &stats.UnownedPlayers, &totalBalance,
	)
	if err != nil {
		r.logger.Error("failed to get stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	stats.TotalBalance = totalBalance

	return &stats, nil
}
