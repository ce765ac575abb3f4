// Имплементация репозитория игроков поверх postgresql
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/2or5/football-manager/internal/domain"
)

type PlayerRepositoryImpl struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPlayerRepository(pool *pgxpool.Pool, logger *slog.Logger) *PlayerRepositoryImpl {
	return &PlayerRepositoryImpl{
		pool:   pool,
		logger: logger,
	}
}

func (r *PlayerRepositoryImpl) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	query := `
		INSERT INTO players (first_name, last_name, birth_date, experience_months, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		player.FirstName, player.LastName, player.BirthDate, player.ExperienceMonths, player.TeamID,
	).Scan(&player.ID)
	if err != nil {
		r.logger.Error("failed to create player",
			slog.String("last_name", player.LastName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	r.logger.Info("player created", slog.Int64("player_id", player.ID))
	return player, nil
}

func (r *PlayerRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, experience_months, team_id
		FROM players
		WHERE id = $1
	`

	var player domain.Player
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&player.ID, &player.FirstName, &player.LastName,
		&player.BirthDate, &player.ExperienceMonths, &player.TeamID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get player",
			slog.Int64("player_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// GetByIDWithTeam retrieves a player with its owning team in one joined query
func (r *PlayerRepositoryImpl) GetByIDWithTeam(ctx context.Context, id int64) (*domain.PlayerWithTeam, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.birth_date, p.experience_months, p.team_id,
		       t.id, t.name, t.balance, t.commission_percentage
		FROM players p
		LEFT JOIN teams t ON t.id = p.team_id
		WHERE p.id = $1
	`

	var result domain.PlayerWithTeam
	var teamID *int64
	var teamName *string
	var balance decimal.NullDecimal
	var commission *int

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.FirstName, &result.LastName,
		&result.BirthDate, &result.ExperienceMonths, &result.TeamID,
		&teamID, &teamName, &balance, &commission,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get player with team",
			slog.Int64("player_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get player with team: %w", err)
	}

	if teamID != nil {
		result.Team = &domain.Team{
			ID:                   *teamID,
			Name:                 *teamName,
			Balance:              balance.Decimal,
			CommissionPercentage: *commission,
		}
	}

	return &result, nil
}

// List retrieves all players with their teams via a single LEFT JOIN
func (r *PlayerRepositoryImpl) List(ctx context.Context) ([]domain.PlayerWithTeam, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.birth_date, p.experience_months, p.team_id,
		       t.id, t.name, t.balance, t.commission_percentage
		FROM players p
		LEFT JOIN teams t ON t.id = p.team_id
		ORDER BY p.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to list players", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]domain.PlayerWithTeam, 0)
	for rows.Next() {
		var p domain.PlayerWithTeam
		var teamID *int64
		var teamName *string
		var balance decimal.NullDecimal
		var commission *int

		err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.BirthDate, &p.ExperienceMonths, &p.TeamID,
			&teamID, &teamName, &balance, &commission,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}

		if teamID != nil {
			p.Team = &domain.Team{
				ID:                   *teamID,
				Name:                 *teamName,
				Balance:              balance.Decimal,
				CommissionPercentage: *commission,
			}
		}

		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}

	return players, nil
}

func (r *PlayerRepositoryImpl) Update(ctx context.Context, player *domain.Player) (int64, error) {
	query := `
		UPDATE players
		SET first_name = $2, last_name = $3, birth_date = $4, experience_months = $5, team_id = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		player.ID, player.FirstName, player.LastName,
		player.BirthDate, player.ExperienceMonths, player.TeamID,
	)
	if err != nil {
		r.logger.Error("failed to update player",
			slog.Int64("player_id", player.ID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to update player: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PlayerRepositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete player",
			slog.Int64("player_id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to delete player: %w", err)
	}

	if tag.RowsAffected() > 0 {
		r.logger.Info("player deleted", slog.Int64("player_id", id))
	}
	return tag.RowsAffected(), nil
}
