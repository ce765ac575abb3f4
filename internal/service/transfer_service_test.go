package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2or5/football-manager/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func successResult() *domain.TransferResult {
	destID := int64(2)
	return &domain.TransferResult{
		Player: domain.Player{ID: 1, FirstName: "Kylian", LastName: "Mbappe", TeamID: &destID},
		DestinationTeam: domain.Team{
			ID:      destID,
			Name:    "Real Madrid",
			Balance: decimal.NewFromInt(74000),
		},
		Fee: decimal.NewFromInt(126000),
	}
}

func TestTransferService(t *testing.T) {
	t.Run("Success_FirstAttempt", func(t *testing.T) {
		repo := &mockTransferRepo{results: []transferAttempt{
			{result: successResult()},
		}}
		svc := NewTransferService(repo, testLogger())

		result, err := svc.Transfer(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.attempts)
		assert.True(t, result.Fee.Equal(decimal.NewFromInt(126000)))
		require.NotNil(t, result.Player.TeamID)
		assert.Equal(t, int64(2), *result.Player.TeamID)
	})

	t.Run("RetriesOnConflict", func(t *testing.T) {
		repo := &mockTransferRepo{results: []transferAttempt{
			{err: domain.ErrConcurrencyConflict},
			{result: successResult()},
		}}
		svc := NewTransferService(repo, testLogger())

		result, err := svc.Transfer(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, repo.attempts)
		assert.NotNil(t, result)
	})

	t.Run("SurfacesConflictAfterRetries", func(t *testing.T) {
		repo := &mockTransferRepo{results: []transferAttempt{
			{err: domain.ErrConcurrencyConflict},
		}}
		svc := NewTransferService(repo, testLogger())

		_, err := svc.Transfer(context.Background(), 1, 2)
		assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
		assert.Equal(t, transferMaxAttempts, repo.attempts)
	})

	t.Run("InsufficientBalance_NoRetry", func(t *testing.T) {
		repo := &mockTransferRepo{results: []transferAttempt{
			{err: domain.ErrInsufficientBalance},
		}}
		svc := NewTransferService(repo, testLogger())

		_, err := svc.Transfer(context.Background(), 1, 2)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		assert.Equal(t, 1, repo.attempts)
	})

	t.Run("NotFound_NoRetry", func(t *testing.T) {
		repo := &mockTransferRepo{results: []transferAttempt{
			{err: domain.ErrPlayerNotFound},
		}}
		svc := NewTransferService(repo, testLogger())

		_, err := svc.Transfer(context.Background(), 99, 2)
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
		assert.Equal(t, 1, repo.attempts)
	})

	t.Run("CancelledContext_StopsRetrying", func(t *testing.T) {
		repo := &mockTransferRepo{results: []transferAttempt{
			{err: domain.ErrConcurrencyConflict},
		}}
		svc := NewTransferService(repo, testLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Transfer(ctx, 1, 2)
		assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
		assert.Equal(t, 1, repo.attempts)
	})
}
