// Интерфейсы репозиториев для работы с данными
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/2or5/football-manager/internal/domain"
)

// Точечный поиск возвращает (nil, nil), если записи нет — отсутствие не ошибка.
// Update и Delete сообщают число затронутых строк, по нему вызывающий код
// определяет "not found".

type TeamRepository interface {
	// Create inserts a team and assigns its id
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	// GetByID retrieves a team by id, (nil, nil) when absent
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	// GetByIDWithPlayers retrieves a team with its players eagerly loaded
	GetByIDWithPlayers(ctx context.Context, id int64) (*domain.TeamWithPlayers, error)
	// List retrieves all teams with their players in a single joined read
	List(ctx context.Context) ([]domain.TeamWithPlayers, error)
	// Update overwrites an existing team, returns affected rows
	Update(ctx context.Context, team *domain.Team) (int64, error)
	// Delete detaches owned players and removes the team, returns affected rows
	Delete(ctx context.Context, id int64) (int64, error)
}

type PlayerRepository interface {
	// Create inserts a player and assigns its id
	Create(ctx context.Context, player *domain.Player) (*domain.Player, error)
	// GetByID retrieves a player by id, (nil, nil) when absent
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	// GetByIDWithTeam retrieves a player with its owning team eagerly loaded
	GetByIDWithTeam(ctx context.Context, id int64) (*domain.PlayerWithTeam, error)
	// List retrieves all players with their teams in a single joined read
	List(ctx context.Context) ([]domain.PlayerWithTeam, error)
	// Update overwrites an existing player, returns affected rows
	Update(ctx context.Context, player *domain.Player) (int64, error)
	// Delete removes a player, returns affected rows
	Delete(ctx context.Context, id int64) (int64, error)
}

type TransferRepository interface {
	// ExecuteTransfer moves the player to the destination team and settles the
	// fee between the two team balances as one transaction. A single attempt;
	// domain.ErrConcurrencyConflict is returned when the transaction could not
	// be serialized and the whole transfer is safe to retry.
	ExecuteTransfer(ctx context.Context, playerID, destinationTeamID int64) (*domain.TransferResult, error)
}

type StatsRepository interface {
	// GetStats retrieves roster-wide statistics
	GetStats(ctx context.Context) (*Stats, error)
}

// Stats represents roster-wide statistics
type Stats struct {
	TotalTeams     int             `json:"total_teams"`
	TotalPlayers   int             `json:"total_players"`
	UnownedPlayers int             `json:"unowned_players"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
}
