package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(ids ...uint) []models.UserWithStats {
	out := make([]models.UserWithStats, len(ids))
	for i, id := range ids {
		out[i] = models.UserWithStats{User: models.User{ID: id}}
	}
	return out
}

func TestRankAndPercentile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		board          []models.UserWithStats
		userID         uint
		wantRank       int
		wantPercentile int
	}{
		{"empty board", nil, 1, 0, 0},
		{"single user", board(1), 1, 1, 0},
		{"top of four", board(4, 2, 9, 1), 4, 1, 75},
		{"bottom of four", board(4, 2, 9, 1), 1, 4, 0},
		{"second of three rounds", board(1, 2, 3), 2, 2, 33},
		{"top of three rounds up", board(1, 2, 3), 1, 1, 67},
		{"missing ranks last", board(1, 2), 9, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, pct := RankAndPercentile(tt.board, tt.userID)
			assert.Equal(t, tt.wantRank, rank)
			assert.Equal(t, tt.wantPercentile, pct)
		})
	}
}

func TestStatsServiceUserStats(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stats := &statsRepoStub{
		leaderboardFn: func(context.Context) ([]models.UserWithStats, error) { return board(5, 3, 8), nil },
		activityCountsFn: func(_ context.Context, userID uint, at time.Time) (repository.ActivityCounts, error) {
			assert.Equal(t, now, at)
			return repository.ActivityCounts{Active: 2, Last7d: 1, Last30d: 2}, nil
		},
	}
	svc := NewStatsService(stats, noopUserRepo(), 0)
	svc.now = func() time.Time { return now }

	got, err := svc.UserStats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &models.UserStats{
		ActiveMatches:         2,
		NewMatches:            1,
		SkillsShared:          2,
		NewSkillsShared:       2,
		LeaderboardRank:       2,
		LeaderboardPercentile: 33,
	}, got)

	again, err := svc.UserStats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestStatsServiceUserStatsUnknownUser(t *testing.T) {
	t.Parallel()
	users := noopUserRepo()
	users.getByIDFn = missingUsers(42)
	stats := &statsRepoStub{
		leaderboardFn: func(context.Context) ([]models.UserWithStats, error) { return board(1), nil },
		activityCountsFn: func(context.Context, uint, time.Time) (repository.ActivityCounts, error) {
			t.Fatal("activity counts should not be queried for unknown users")
			return repository.ActivityCounts{}, nil
		},
	}
	svc := NewStatsService(stats, users, time.Second)

	_, err := svc.UserStats(context.Background(), 42)
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestStatsServiceLeaderboardStorageUnavailable(t *testing.T) {
	t.Parallel()
	stats := &statsRepoStub{
		leaderboardFn: func(context.Context) ([]models.UserWithStats, error) {
			return nil, models.NewStorageUnavailableError(errors.New("connection refused"))
		},
	}
	svc := NewStatsService(stats, noopUserRepo(), time.Second)

	got, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.Overview(context.Background(), 1)
	assertErrorCode(t, err, models.CodeStorageUnavailable)
}

func TestStatsServiceOverview(t *testing.T) {
	t.Parallel()
	calls := 0
	stats := &statsRepoStub{
		leaderboardFn: func(context.Context) ([]models.UserWithStats, error) {
			calls++
			return board(1, 2), nil
		},
		activityCountsFn: func(context.Context, uint, time.Time) (repository.ActivityCounts, error) {
			return repository.ActivityCounts{}, nil
		},
	}
	svc := NewStatsService(stats, noopUserRepo(), time.Second)

	got, err := svc.Overview(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got.Leaderboard, 2)
	assert.Equal(t, 1, got.CurrentUserStats.LeaderboardRank)
	assert.Equal(t, 50, got.CurrentUserStats.LeaderboardPercentile)
	assert.Equal(t, 1, calls)
}
