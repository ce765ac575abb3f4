package integration

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/repository"
	"github.com/2or5/football-manager/internal/service"
)

// Tests expect a migrated database (see migrations/). The schema is not
// created here, only the data is wiped between tests.
func getTestDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration tests")
	}
	return dsn
}

// setupTestDB creates a new database connection pool for testing
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, getTestDSN(t))
	require.NoError(t, err, "Failed to connect to test database")

	err = pool.Ping(ctx)
	require.NoError(t, err, "Failed to ping test database")

	cleanup := func() {
		cleanupTestData(t, pool)
		pool.Close()
	}

	// Clean up before test
	cleanupTestData(t, pool)

	return pool, cleanup
}

// setupTestServices creates all services with test database
func setupTestServices(t *testing.T) (*service.TeamService, *service.PlayerService, *service.TransferService, *service.StatsService, func()) {
	t.Helper()

	pool, cleanup := setupTestDB(t)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only log errors in tests
	}))

	teamRepo := repository.NewTeamRepository(pool, testLogger)
	playerRepo := repository.NewPlayerRepository(pool, testLogger)
	transferRepo := repository.NewTransferRepository(pool, testLogger)
	statsRepo := repository.NewStatsRepository(pool, testLogger)

	teamService := service.NewTeamService(teamRepo, testLogger)
	playerService := service.NewPlayerService(playerRepo, teamRepo, testLogger)
	transferService := service.NewTransferService(transferRepo, testLogger)
	statsService := service.NewStatsService(statsRepo, testLogger)

	return teamService, playerService, transferService, statsService, cleanup
}

// cleanupTestData deletes all test data in correct order
func cleanupTestData(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	// Delete in correct order due to foreign keys
	_, _ = pool.Exec(ctx, "DELETE FROM players")
	_, _ = pool.Exec(ctx, "DELETE FROM teams")
}

// Helper to create unique test names
func testName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func createTestTeam(t *testing.T, ctx context.Context, teamSvc *service.TeamService, balance int64, commission int) *domain.Team {
	t.Helper()

	team, err := teamSvc.CreateTeam(ctx, domain.NewTeam(testName("team"), decimal.NewFromInt(balance), commission))
	require.NoError(t, err)
	return team
}

// testBirthDate returns a birth date making the player exactly ageYears old,
// a day past the anniversary
func testBirthDate(ageYears int) time.Time {
	return time.Now().AddDate(-ageYears, 0, -1)
}

func createTestPlayer(t *testing.T, ctx context.Context, playerSvc *service.PlayerService, ageYears, experienceMonths int, teamID *int64) *domain.PlayerWithTeam {
	t.Helper()

	player, err := playerSvc.CreatePlayer(ctx, domain.NewPlayer("Test", testName("player"), testBirthDate(ageYears), experienceMonths, teamID))
	require.NoError(t, err)
	return player
}
