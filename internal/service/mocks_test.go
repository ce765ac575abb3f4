package service

import (
	"context"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/repository"
)

type mockTeamRepo struct {
	teams  map[int64]*domain.Team
	nextID int64
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[int64]*domain.Team)}
}

func (m *mockTeamRepo) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	m.nextID++
	team.ID = m.nextID
	copied := *team
	m.teams[team.ID] = &copied
	return team, nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	team, ok := m.teams[id]
	if !ok {
		return nil, nil
	}
	copied := *team
	return &copied, nil
}

func (m *mockTeamRepo) GetByIDWithPlayers(ctx context.Context, id int64) (*domain.TeamWithPlayers, error) {
	team, ok := m.teams[id]
	if !ok {
		return nil, nil
	}
	return &domain.TeamWithPlayers{Team: *team, Players: []domain.Player{}}, nil
}

func (m *mockTeamRepo) List(ctx context.Context) ([]domain.TeamWithPlayers, error) {
	result := make([]domain.TeamWithPlayers, 0, len(m.teams))
	for _, team := range m.teams {
		result = append(result, domain.TeamWithPlayers{Team: *team, Players: []domain.Player{}})
	}
	return result, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, team *domain.Team) (int64, error) {
	if _, ok := m.teams[team.ID]; !ok {
		return 0, nil
	}
	copied := *team
	m.teams[team.ID] = &copied
	return 1, nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.teams[id]; !ok {
		return 0, nil
	}
	delete(m.teams, id)
	return 1, nil
}

type mockPlayerRepo struct {
	players map[int64]*domain.Player
	teams   *mockTeamRepo
	nextID  int64
}

func newMockPlayerRepo(teams *mockTeamRepo) *mockPlayerRepo {
	return &mockPlayerRepo{
		players: make(map[int64]*domain.Player),
		teams:   teams,
	}
}

func (m *mockPlayerRepo) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	m.nextID++
	player.ID = m.nextID
	copied := *player
	m.players[player.ID] = &copied
	return player, nil
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	player, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	copied := *player
	return &copied, nil
}

func (m *mockPlayerRepo) GetByIDWithTeam(ctx context.Context, id int64) (*domain.PlayerWithTeam, error) {
	player, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	result := &domain.PlayerWithTeam{Player: *player}
	if player.TeamID != nil && m.teams != nil {
		if team, ok := m.teams.teams[*player.TeamID]; ok {
			copied := *team
			result.Team = &copied
		}
	}
	return result, nil
}

func (m *mockPlayerRepo) List(ctx context.Context) ([]domain.PlayerWithTeam, error) {
	result := make([]domain.PlayerWithTeam, 0, len(m.players))
	for id := range m.players {
		p, _ := m.GetByIDWithTeam(ctx, id)
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPlayerRepo) Update(ctx context.Context, player *domain.Player) (int64, error) {
	if _, ok := m.players[player.ID]; !ok {
		return 0, nil
	}
	copied := *player
	m.players[player.ID] = &copied
	return 1, nil
}

func (m *mockPlayerRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.players[id]; !ok {
		return 0, nil
	}
	delete(m.players, id)
	return 1, nil
}

// mockTransferRepo returns scripted results per attempt
type mockTransferRepo struct {
	results  []transferAttempt
	attempts int
}

type transferAttempt struct {
	result *domain.TransferResult
	err    error
}

func (m *mockTransferRepo) ExecuteTransfer(ctx context.Context, playerID, destinationTeamID int64) (*domain.TransferResult, error) {
	i := m.attempts
	if i >= len(m.results) {
		i = len(m.results) - 1
	}
	m.attempts++
	return m.results[i].result, m.results[i].err
}

var (
	_ repository.TeamRepository     = (*mockTeamRepo)(nil)
	_ repository.PlayerRepository   = (*mockPlayerRepo)(nil)
	_ repository.TransferRepository = (*mockTransferRepo)(nil)
)
