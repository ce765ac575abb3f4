package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/repository"
)

const (
	transferMaxAttempts  = 3
	transferRetryBackoff = 50 * time.Millisecond
)

// TransferService оркестрирует трансфер игрока между командами
type TransferService struct {
	transferRepo repository.TransferRepository
	logger       *slog.Logger
}

func NewTransferService(transferRepo repository.TransferRepository, logger *slog.Logger) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// Transfer moves a player to the destination team and settles the computed
// fee between the two team balances. The atomic mutation lives in the
// transfer repository; this layer retries a bounded number of times when the
// transaction loses to a concurrent one, then surfaces the conflict.
func (s *TransferService) Transfer(ctx context.Context, playerID, destinationTeamID int64) (*domain.TransferResult, error) {
	s.logger.Info("transfer requested",
		slog.Int64("player_id", playerID),
		slog.Int64("destination_team_id", destinationTeamID),
	)

	var lastErr error
	for attempt := 1; attempt <= transferMaxAttempts; attempt++ {
		result, err := s.transferRepo.ExecuteTransfer(ctx, playerID, destinationTeamID)
		if err == nil {
			s.logger.Info("transfer completed",
				slog.Int64("player_id", playerID),
				slog.Int64("destination_team_id", destinationTeamID),
				slog.String("fee", result.Fee.String()),
				slog.Int("attempt", attempt),
			)
			return result, nil
		}

		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}

		lastErr = err
		s.logger.Warn("transfer attempt conflicted, retrying",
			slog.Int64("player_id", playerID),
			slog.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return nil, domain.ErrConcurrencyConflict
		case <-time.After(transferRetryBackoff * time.Duration(attempt)):
		}
	}

	s.logger.Error("transfer failed after retries",
		slog.Int64("player_id", playerID),
		slog.Int64("destination_team_id", destinationTeamID),
		slog.String("error", lastErr.Error()),
	)
	return nil, domain.ErrConcurrencyConflict
}
