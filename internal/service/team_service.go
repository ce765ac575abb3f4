package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/repository"
)

type TeamService struct {
	teamRepo repository.TeamRepository
	logger   *slog.Logger
}

func NewTeamService(teamRepo repository.TeamRepository, logger *slog.Logger) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		logger:   logger,
	}
}

// GetAllTeams retrieves all teams with their players
func (s *TeamService) GetAllTeams(ctx context.Context) ([]domain.TeamWithPlayers, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam retrieves a team by id with its players
func (s *TeamService) GetTeam(ctx context.Context, id int64) (*domain.TeamWithPlayers, error) {
	team, err := s.teamRepo.GetByIDWithPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}

// CreateTeam validates and persists a new team
func (s *TeamService) CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}

	created, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.logger.Info("team created",
		slog.Int64("team_id", created.ID),
		slog.String("team_name", created.Name),
	)
	return created, nil
}

// UpdateTeam loads the team, applies all patch fields to the loaded value and
// writes the whole value back. No partial in-place mutation.
func (s *TeamService) UpdateTeam(ctx context.Context, id int64, patch *domain.Team) (*domain.Team, error) {
	existing, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrTeamNotFound
	}

	updated := *existing
	updated.Name = patch.Name
	updated.Balance = patch.Balance
	updated.CommissionPercentage = patch.CommissionPercentage

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.teamRepo.Update(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrTeamNotFound
	}

	s.logger.Info("team updated", slog.Int64("team_id", id))
	return &updated, nil
}

// DeleteTeam removes a team; its players are detached, never deleted
func (s *TeamService) DeleteTeam(ctx context.Context, id int64) error {
	rows, err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if rows == 0 {
		return domain.ErrTeamNotFound
	}

	s.logger.Info("team deleted", slog.Int64("team_id", id))
	return nil
}
