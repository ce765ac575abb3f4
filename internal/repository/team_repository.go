// Имплементация репозитория команд поверх postgresql
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2or5/football-manager/internal/domain"
)

type TeamRepositoryImpl struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewTeamRepository(pool *pgxpool.Pool, logger *slog.Logger) *TeamRepositoryImpl {
	return &TeamRepositoryImpl{
		pool:   pool,
		logger: logger,
	}
}

func (r *TeamRepositoryImpl) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	query := `
		INSERT INTO teams (name, balance, commission_percentage)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		team.Name, team.Balance, team.CommissionPercentage,
	).Scan(&team.ID)
	if err != nil {
		r.logger.Error("failed to create team",
			slog.String("team_name", team.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	r.logger.Info("team created", slog.Int64("team_id", team.ID))
	return team, nil
}

func (r *TeamRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	query := `
		SELECT id, name, balance, commission_percentage
		FROM teams
		WHERE id = $1
	`

	var team domain.Team
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.Balance, &team.CommissionPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get team",
			slog.Int64("team_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// GetByIDWithPlayers retrieves a team together with its players. The players
// are fetched in one query; the core never triggers per-row fetches.
func (r *TeamRepositoryImpl) GetByIDWithPlayers(ctx context.Context, id int64) (*domain.TeamWithPlayers, error) {
	team, err := r.GetByID(ctx, id)
	if err != nil || team == nil {
		return nil, err
	}

	query := `
		SELECT id, first_name, last_name, birth_date, experience_months, team_id
		FROM players
		WHERE team_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to get team players",
			slog.Int64("team_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get team players: %w", err)
	}
	defer rows.Close()

	players := make([]domain.Player, 0)
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.BirthDate, &p.ExperienceMonths, &p.TeamID); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team players: %w", err)
	}

	return &domain.TeamWithPlayers{Team: *team, Players: players}, nil
}

// List retrieves all teams with their players via a single LEFT JOIN
func (r *TeamRepositoryImpl) List(ctx context.Context) ([]domain.TeamWithPlayers, error) {
	query := `
		SELECT t.id, t.name, t.balance, t.commission_percentage,
		       p.id, p.first_name, p.last_name, p.birth_date, p.experience_months, p.team_id
		FROM teams t
		LEFT JOIN players p ON p.team_id = t.id
		ORDER BY t.id, p.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to list teams", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]domain.TeamWithPlayers, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var team domain.Team
		var playerID *int64
		var firstName, lastName *string
		var birthDate *time.Time
		var experienceMonths *int
		var teamID *int64

		err := rows.Scan(
			&team.ID, &team.Name, &team.Balance, &team.CommissionPercentage,
			&playerID, &firstName, &lastName, &birthDate, &experienceMonths, &teamID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}

		i, ok := index[team.ID]
		if !ok {
			i = len(teams)
			index[team.ID] = i
			teams = append(teams, domain.TeamWithPlayers{Team: team, Players: make([]domain.Player, 0)})
		}

		if playerID != nil {
			teams[i].Players = append(teams[i].Players, domain.Player{
				ID:               *playerID,
				FirstName:        *firstName,
				LastName:         *lastName,
				BirthDate:        *birthDate,
				ExperienceMonths: *experienceMonths,
				TeamID:           teamID,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return teams, nil
}

func (r *TeamRepositoryImpl) Update(ctx context.Context, team *domain.Team) (int64, error) {
	query := `
		UPDATE teams
		SET name = $2, balance = $3, commission_percentage = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		team.ID, team.Name, team.Balance, team.CommissionPercentage,
	)
	if err != nil {
		r.logger.Error("failed to update team",
			slog.Int64("team_id", team.ID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to update team: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete detaches the team's players and removes the team row in one
// transaction, so no player is ever left with a dangling reference.
func (r *TeamRepositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	txCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(txCtx)
	if err != nil {
		r.logger.Error("failed to begin transaction",
			slog.Int64("team_id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(txCtx, `UPDATE players SET team_id = NULL WHERE team_id = $1`, id)
	if err != nil {
		r.logger.Error("failed to detach team players",
			slog.Int64("team_id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to detach team players: %w", err)
	}

	tag, err := tx.Exec(txCtx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete team",
			slog.Int64("team_id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to delete team: %w", err)
	}

	if err := tx.Commit(txCtx); err != nil {
		r.logger.Error("failed to commit transaction",
			slog.Int64("team_id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if tag.RowsAffected() > 0 {
		r.logger.Info("team deleted", slog.Int64("team_id", id))
	}
	return tag.RowsAffected(), nil
}
