package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/repository"
)

type PlayerService struct {
	playerRepo repository.PlayerRepository
	teamRepo   repository.TeamRepository
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repository.PlayerRepository,
	teamRepo repository.TeamRepository,
	logger *slog.Logger,
) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

// GetAllPlayers retrieves all players with their teams
func (s *PlayerService) GetAllPlayers(ctx context.Context) ([]domain.PlayerWithTeam, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetPlayer retrieves a player by id with its team
func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (*domain.PlayerWithTeam, error) {
	player, err := s.playerRepo.GetByIDWithTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, domain.ErrPlayerNotFound
	}
	return player, nil
}

// CreatePlayer validates and persists a new player. A player may be created
// unowned; when a team id is given it must reference an existing team.
func (s *PlayerService) CreatePlayer(ctx context.Context, player *domain.Player) (*domain.PlayerWithTeam, error) {
	if err := player.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkTeamRef(ctx, player.TeamID); err != nil {
		return nil, err
	}

	created, err := s.playerRepo.Create(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.logger.Info("player created",
		slog.Int64("player_id", created.ID),
		slog.String("last_name", created.LastName),
	)

	return s.GetPlayer(ctx, created.ID)
}

// UpdatePlayer loads the player, applies all patch fields to the loaded value
// and writes the whole value back
func (s *PlayerService) UpdatePlayer(ctx context.Context, id int64, patch *domain.Player) (*domain.PlayerWithTeam, error) {
	existing, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrPlayerNotFound
	}

	updated := *existing
	updated.FirstName = patch.FirstName
	updated.LastName = patch.LastName
	updated.BirthDate = patch.BirthDate
	updated.ExperienceMonths = patch.ExperienceMonths
	updated.TeamID = patch.TeamID

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkTeamRef(ctx, updated.TeamID); err != nil {
		return nil, err
	}

	rows, err := s.playerRepo.Update(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrPlayerNotFound
	}

	s.logger.Info("player updated", slog.Int64("player_id", id))
	return s.GetPlayer(ctx, id)
}

// DeletePlayer removes a player outright
func (s *PlayerService) DeletePlayer(ctx context.Context, id int64) error {
	rows, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if rows == 0 {
		return domain.ErrPlayerNotFound
	}

	s.logger.Info("player deleted", slog.Int64("player_id", id))
	return nil
}

func (s *PlayerService) checkTeamRef(ctx context.Context, teamID *int64) error {
	if teamID == nil {
		return nil
	}
	team, err := s.teamRepo.GetByID(ctx, *teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return domain.ErrTeamNotFound
	}
	return nil
}
