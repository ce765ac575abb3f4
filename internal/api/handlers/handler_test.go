package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/repository"
	"github.com/2or5/football-manager/internal/service"
)

// In-memory repositories backing the full handler stack

type stubTeamRepo struct {
	teams  map[int64]*domain.Team
	nextID int64
}

func (s *stubTeamRepo) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	s.nextID++
	team.ID = s.nextID
	copied := *team
	s.teams[team.ID] = &copied
	return team, nil
}

func (s *stubTeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, nil
	}
	copied := *team
	return &copied, nil
}

func (s *stubTeamRepo) GetByIDWithPlayers(ctx context.Context, id int64) (*domain.TeamWithPlayers, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, nil
	}
	return &domain.TeamWithPlayers{Team: *team, Players: []domain.Player{}}, nil
}

func (s *stubTeamRepo) List(ctx context.Context) ([]domain.TeamWithPlayers, error) {
	result := make([]domain.TeamWithPlayers, 0, len(s.teams))
	for _, team := range s.teams {
		result = append(result, domain.TeamWithPlayers{Team: *team, Players: []domain.Player{}})
	}
	return result, nil
}

func (s *stubTeamRepo) Update(ctx context.Context, team *domain.Team) (int64, error) {
	if _, ok := s.teams[team.ID]; !ok {
		return 0, nil
	}
	copied := *team
	s.teams[team.ID] = &copied
	return 1, nil
}

func (s *stubTeamRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.teams[id]; !ok {
		return 0, nil
	}
	delete(s.teams, id)
	return 1, nil
}

type stubPlayerRepo struct {
	players map[int64]*domain.Player
	teams   *stubTeamRepo
	nextID  int64
}

func (s *stubPlayerRepo) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	s.nextID++
	player.ID = s.nextID
	copied := *player
	s.players[player.ID] = &copied
	return player, nil
}

func (s *stubPlayerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	player, ok := s.players[id]
	if !ok {
		return nil, nil
	}
	copied := *player
	return &copied, nil
}

func (s *stubPlayerRepo) GetByIDWithTeam(ctx context.Context, id int64) (*domain.PlayerWithTeam, error) {
	player, ok := s.players[id]
	if !ok {
		return nil, nil
	}
	result := &domain.PlayerWithTeam{Player: *player}
	if player.TeamID != nil {
		if team, ok := s.teams.teams[*player.TeamID]; ok {
			copied := *team
			result.Team = &copied
		}
	}
	return result, nil
}

func (s *stubPlayerRepo) List(ctx context.Context) ([]domain.PlayerWithTeam, error) {
	result := make([]domain.PlayerWithTeam, 0, len(s.players))
	for id := range s.players {
		p, _ := s.GetByIDWithTeam(ctx, id)
		result = append(result, *p)
	}
	return result, nil
}

func (s *stubPlayerRepo) Update(ctx context.Context, player *domain.Player) (int64, error) {
	if _, ok := s.players[player.ID]; !ok {
		return 0, nil
	}
	copied := *player
	s.players[player.ID] = &copied
	return 1, nil
}

func (s *stubPlayerRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.players[id]; !ok {
		return 0, nil
	}
	delete(s.players, id)
	return 1, nil
}

// stubTransferRepo runs the full transfer algorithm against the in-memory
// stores, matching the real repository's observable behaviour
type stubTransferRepo struct {
	players *stubPlayerRepo
	teams   *stubTeamRepo
}

func (s *stubTransferRepo) ExecuteTransfer(ctx context.Context, playerID, destinationTeamID int64) (*domain.TransferResult, error) {
	player, ok := s.players.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	destination, ok := s.teams.teams[destinationTeamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}

	fee, err := domain.ComputeTransferFee(player, destination)
	if err != nil {
		return nil, err
	}
	if destination.Balance.LessThan(fee) {
		return nil, domain.ErrInsufficientBalance
	}

	var origin *domain.Team
	if player.TeamID != nil {
		origin = s.teams.teams[*player.TeamID]
	}
	if origin != nil {
		origin.Balance = origin.Balance.Add(fee)
	}
	destination.Balance = destination.Balance.Sub(fee)
	player.TeamID = &destination.ID

	result := &domain.TransferResult{
		Player:          *player,
		DestinationTeam: *destination,
		Fee:             fee,
	}
	if origin != nil && origin.ID != destination.ID {
		copied := *origin
		result.OriginTeam = &copied
	}
	return result, nil
}

type stubStatsRepo struct {
	teams   *stubTeamRepo
	players *stubPlayerRepo
}

func (s *stubStatsRepo) GetStats(ctx context.Context) (*repository.Stats, error) {
	stats := &repository.Stats{
		TotalTeams:   len(s.teams.teams),
		TotalPlayers: len(s.players.players),
		TotalBalance: decimal.Zero,
	}
	for _, team := range s.teams.teams {
		stats.TotalBalance = stats.TotalBalance.Add(team.Balance)
	}
	for _, player := range s.players.players {
		if player.TeamID == nil {
			stats.UnownedPlayers++
		}
	}
	return stats, nil
}

type testEnv struct {
	router  *gin.Engine
	teams   *stubTeamRepo
	players *stubPlayerRepo
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	teamRepo := &stubTeamRepo{teams: make(map[int64]*domain.Team)}
	playerRepo := &stubPlayerRepo{players: make(map[int64]*domain.Player), teams: teamRepo}
	transferRepo := &stubTransferRepo{players: playerRepo, teams: teamRepo}
	statsRepo := &stubStatsRepo{teams: teamRepo, players: playerRepo}

	handler := NewHandler(
		service.NewTeamService(teamRepo, logger),
		service.NewPlayerService(playerRepo, teamRepo, logger),
		service.NewTransferService(transferRepo, logger),
		service.NewStatsService(statsRepo, logger),
		logger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)

	return &testEnv{router: router, teams: teamRepo, players: playerRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// timeNowAddYears shifts today by whole years, minus a day so the anniversary
// has always passed
func timeNowAddYears(years int) time.Time {
	return time.Now().AddDate(years, 0, -1)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTeamEndpoints(t *testing.T) {
	t.Run("CreateAndGet", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/teams", gin.H{
			"name":                 "Arsenal",
			"balance":              500000,
			"commissionPercentage": 7,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		created := decodeBody(t, w)
		assert.Equal(t, "Arsenal", created["name"])

		w = env.do(t, http.MethodGet, "/teams/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Arsenal", got["name"])
		assert.Equal(t, "500000", got["balance"])
		assert.NotNil(t, got["players"])
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodGet, "/teams/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "NOT_FOUND", body["code"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("Create_ValidationFailure", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/teams", gin.H{
			"balance":              100,
			"commissionPercentage": 150,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])

		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "commissionPercentage")
	})

	t.Run("Create_NegativeBalance", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/teams", gin.H{
			"name":                 "Arsenal",
			"balance":              -1,
			"commissionPercentage": 5,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "balance")
	})

	t.Run("Update", func(t *testing.T) {
		env := setupRouter(t)
		env.do(t, http.MethodPost, "/teams", gin.H{
			"name": "Arsenal", "balance": 100, "commissionPercentage": 7,
		})

		w := env.do(t, http.MethodPatch, "/teams/1", gin.H{
			"name": "Chelsea", "balance": 200, "commissionPercentage": 9,
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Chelsea", body["name"])
		assert.Equal(t, "200", body["balance"])
	})

	t.Run("Delete", func(t *testing.T) {
		env := setupRouter(t)
		env.do(t, http.MethodPost, "/teams", gin.H{
			"name": "Arsenal", "balance": 100, "commissionPercentage": 7,
		})

		w := env.do(t, http.MethodDelete, "/teams/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Team deleted successfully", decodeBody(t, w)["message"])

		w = env.do(t, http.MethodDelete, "/teams/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodGet, "/teams/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlayerEndpoints(t *testing.T) {
	t.Run("CreateUnowned", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Erling",
			"lastName":         "Haaland",
			"birthDate":        "2000-07-21",
			"experienceMonths": 60,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Haaland", body["lastName"])
		assert.Nil(t, body["team"])
	})

	t.Run("CreateWithTeam", func(t *testing.T) {
		env := setupRouter(t)
		env.do(t, http.MethodPost, "/teams", gin.H{
			"name": "Man City", "balance": 1000, "commissionPercentage": 5,
		})

		w := env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Erling",
			"lastName":         "Haaland",
			"birthDate":        "2000-07-21",
			"experienceMonths": 60,
			"teamId":           1,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		team, ok := body["team"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Man City", team["name"])
	})

	t.Run("Create_UnknownTeam", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Erling",
			"lastName":         "Haaland",
			"birthDate":        "2000-07-21",
			"experienceMonths": 60,
			"teamId":           42,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Create_BadBirthDate", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Erling",
			"lastName":         "Haaland",
			"birthDate":        "21-07-2000",
			"experienceMonths": 60,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields, ok := decodeBody(t, w)["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "birthDate")
	})

	t.Run("Create_FutureBirthDate", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Erling",
			"lastName":         "Haaland",
			"birthDate":        "2100-01-01",
			"experienceMonths": 60,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields, ok := decodeBody(t, w)["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "birthDate")
	})

	t.Run("Create_MissingFields", func(t *testing.T) {
		env := setupRouter(t)

		w := env.do(t, http.MethodPost, "/players", gin.H{
			"firstName": "Erling",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields, ok := decodeBody(t, w)["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "lastName")
		assert.Contains(t, fields, "birthDate")
		assert.Contains(t, fields, "experienceMonths")
	})

	t.Run("Delete", func(t *testing.T) {
		env := setupRouter(t)
		env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Erling",
			"lastName":         "Haaland",
			"birthDate":        "2000-07-21",
			"experienceMonths": 60,
		})

		w := env.do(t, http.MethodDelete, "/players/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Player deleted successfully", decodeBody(t, w)["message"])

		w = env.do(t, http.MethodDelete, "/players/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTransferEndpoint(t *testing.T) {
	// Player: 24 experience months, age 20 (fee against 5% commission = 126000)
	createFixtures := func(t *testing.T, env *testEnv, balance int64, commission int) {
		t.Helper()

		w := env.do(t, http.MethodPost, "/teams", gin.H{
			"name": "Real Madrid", "balance": balance, "commissionPercentage": commission,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		birthDate := timeNowAddYears(-20).Format("2006-01-02")
		w = env.do(t, http.MethodPost, "/players", gin.H{
			"firstName":        "Kylian",
			"lastName":         "Mbappe",
			"birthDate":        birthDate,
			"experienceMonths": 24,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("Success", func(t *testing.T) {
		env := setupRouter(t)
		createFixtures(t, env, 200000, 5)

		w := env.do(t, http.MethodPost, "/players/1/transfer/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		team, ok := body["team"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Real Madrid", team["name"])
		assert.Equal(t, "74000", team["balance"])
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		env := setupRouter(t)
		createFixtures(t, env, 100000, 10) // fee = 132000 > 100000

		w := env.do(t, http.MethodPost, "/players/1/transfer/1", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INSUFFICIENT_BALANCE", decodeBody(t, w)["code"])

		// No mutation occurred
		w = env.do(t, http.MethodGet, "/teams/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "100000", decodeBody(t, w)["balance"])
	})

	t.Run("PlayerNotFound", func(t *testing.T) {
		env := setupRouter(t)
		env.do(t, http.MethodPost, "/teams", gin.H{
			"name": "Real Madrid", "balance": 1000, "commissionPercentage": 5,
		})

		w := env.do(t, http.MethodPost, "/players/42/transfer/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("TeamNotFound", func(t *testing.T) {
		env := setupRouter(t)
		createFixtures(t, env, 200000, 5)

		w := env.do(t, http.MethodPost, "/players/1/transfer/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStatsEndpoint(t *testing.T) {
	env := setupRouter(t)
	env.do(t, http.MethodPost, "/teams", gin.H{
		"name": "Arsenal", "balance": 100, "commissionPercentage": 7,
	})
	env.do(t, http.MethodPost, "/players", gin.H{
		"firstName":        "Erling",
		"lastName":         "Haaland",
		"birthDate":        "2000-07-21",
		"experienceMonths": 60,
	})

	w := env.do(t, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total_teams"])
	assert.Equal(t, float64(1), body["total_players"])
	assert.Equal(t, float64(1), body["unowned_players"])
}
