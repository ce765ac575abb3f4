// Трансферная транзакция: две команды, один игрок, один коммит
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/2or5/football-manager/internal/domain"
)

const transferTxTimeout = 5 * time.Second

type TransferRepositoryImpl struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewTransferRepository(pool *pgxpool.Pool, logger *slog.Logger) *TransferRepositoryImpl {
	return &TransferRepositoryImpl{
		pool:   pool,
		logger: logger,
	}
}

// ExecuteTransfer moves a player to the destination team and settles the fee
// between the origin and destination balances.
//
// Lock discipline: team rows are locked in ascending id order, the player row
// last. Two concurrent transfers touching the same pair of teams in opposite
// roles therefore never deadlock. The player's ownership is read once before
// locking to learn the origin team id and re-validated after the lock; if a
// competing transfer moved the player in between, the attempt aborts with
// domain.ErrConcurrencyConflict and the caller retries from scratch.
//
// The two balance updates and the ownership update commit together or not at
// all; every failure path leaves the database untouched.
func (r *TransferRepositoryImpl) ExecuteTransfer(ctx context.Context, playerID, destinationTeamID int64) (*domain.TransferResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, transferTxTimeout)
	defer cancel()

	tx, err := r.pool.Begin(txCtx)
	if err != nil {
		r.logger.Error("failed to begin transfer transaction",
			slog.Int64("player_id", playerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			r.logger.Error("panic in transfer transaction",
				slog.Int64("player_id", playerID),
				slog.Any("panic", p),
			)
			panic(p)
		}
		_ = tx.Rollback(context.Background())
	}()

	// Unlocked peek at the player's current team, only to fix the lock order
	var originTeamID *int64
	err = tx.QueryRow(txCtx, `SELECT team_id FROM players WHERE id = $1`, playerID).Scan(&originTeamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, classifyTxError(fmt.Errorf("failed to read player ownership: %w", err))
	}

	teams, err := r.lockTeams(txCtx, tx, destinationTeamID, originTeamID)
	if err != nil {
		return nil, err
	}

	destination, ok := teams[destinationTeamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}

	player, err := lockPlayer(txCtx, tx, playerID)
	if err != nil {
		return nil, err
	}

	// A competing transfer may have moved the player between the peek and the
	// lock; the team locked as origin would then be the wrong one.
	if !sameTeamRef(player.TeamID, originTeamID) {
		return nil, domain.ErrConcurrencyConflict
	}

	fee, err := domain.ComputeTransferFee(player, destination)
	if err != nil {
		return nil, err
	}

	if destination.Balance.LessThan(fee) {
		return nil, domain.ErrInsufficientBalance
	}

	var origin *domain.Team
	if originTeamID != nil {
		origin = teams[*originTeamID]
	}

	if origin != nil {
		origin.Balance = origin.Balance.Add(fee)
		if err := updateTeamBalance(txCtx, tx, origin.ID, origin.Balance); err != nil {
			return nil, err
		}
	}

	destination.Balance = destination.Balance.Sub(fee)
	if err := updateTeamBalance(txCtx, tx, destination.ID, destination.Balance); err != nil {
		return nil, err
	}

	_, err = tx.Exec(txCtx, `UPDATE players SET team_id = $2 WHERE id = $1`, playerID, destinationTeamID)
	if err != nil {
		return nil, classifyTxError(fmt.Errorf("failed to reassign player: %w", err))
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, classifyTxError(fmt.Errorf("failed to commit transfer: %w", err))
	}

	player.TeamID = &destination.ID

	r.logger.Info("transfer committed",
		slog.Int64("player_id", playerID),
		slog.Int64("destination_team_id", destinationTeamID),
		slog.String("fee", fee.String()),
	)

	result := &domain.TransferResult{
		Player:          *player,
		DestinationTeam: *destination,
		Fee:             fee,
	}
	if origin != nil && origin.ID != destination.ID {
		result.OriginTeam = origin
	}
	return result, nil
}

// lockTeams locks the destination and origin team rows in ascending id order
func (r *TransferRepositoryImpl) lockTeams(ctx context.Context, tx pgx.Tx, destinationTeamID int64, originTeamID *int64) (map[int64]*domain.Team, error) {
	ids := []int64{destinationTeamID}
	if originTeamID != nil && *originTeamID != destinationTeamID {
		if *originTeamID < destinationTeamID {
			ids = []int64{*originTeamID, destinationTeamID}
		} else {
			ids = append(ids, *originTeamID)
		}
	}

	teams := make(map[int64]*domain.Team, len(ids))
	for _, id := range ids {
		var team domain.Team
		err := tx.QueryRow(ctx, `
			SELECT id, name, balance, commission_percentage
			FROM teams
			WHERE id = $1
			FOR UPDATE
		`, id).Scan(&team.ID, &team.Name, &team.Balance, &team.CommissionPercentage)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Отсутствующая команда-продавец — конфликт: игрока уже перевели
				if id != destinationTeamID {
					return nil, domain.ErrConcurrencyConflict
				}
				return nil, domain.ErrTeamNotFound
			}
			return nil, classifyTxError(fmt.Errorf("failed to lock team %d: %w", id, err))
		}
		teams[team.ID] = &team
	}

	return teams, nil
}

func lockPlayer(ctx context.Context, tx pgx.Tx, playerID int64) (*domain.Player, error) {
	var player domain.Player
	err := tx.QueryRow(ctx, `
		SELECT id, first_name, last_name, birth_date, experience_months, team_id
		FROM players
		WHERE id = $1
		FOR UPDATE
	`, playerID).Scan(
		&player.ID, &player.FirstName, &player.LastName,
		&player.BirthDate, &player.ExperienceMonths, &player.TeamID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, classifyTxError(fmt.Errorf("failed to lock player: %w", err))
	}
	return &player, nil
}

func updateTeamBalance(ctx context.Context, tx pgx.Tx, teamID int64, balance decimal.Decimal) error {
	_, err := tx.Exec(ctx, `UPDATE teams SET balance = $2 WHERE id = $1`, teamID, balance)
	if err != nil {
		return classifyTxError(fmt.Errorf("failed to update team %d balance: %w", teamID, err))
	}
	return nil
}

func sameTeamRef(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// classifyTxError maps transient store-level failures to ErrConcurrencyConflict,
// which is safe to retry, and passes everything else through.
func classifyTxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrConcurrencyConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03": // lock_not_available
			return domain.ErrConcurrencyConflict
		}
	}

	return err
}
