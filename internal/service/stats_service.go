package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

const (
	newMatchWindow       = 7 * 24 * time.Hour
	newSkillSharedWindow = 30 * 24 * time.Hour
)

type StatsService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
	cacheTTL  time.Duration
	now       func() time.Time
}

// Overview is the body of GET /api/users/current/stats.
type Overview struct {
	Leaderboard      []models.UserWithStats `json:"leaderboard"`
	CurrentUserStats *models.UserStats      `json:"currentUserStats"`
}

func NewStatsService(statsRepo repository.StatsRepository, userRepo repository.UserRepository, cacheTTL time.Duration) *StatsService {
	if cacheTTL <= 0 {
		cacheTTL = cache.LeaderboardTTL
	}
	return &StatsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Leaderboard returns every user ordered by points. A storage outage yields
// an empty board rather than an error.
func (s *StatsService) Leaderboard(ctx context.Context) ([]models.UserWithStats, error) {
	board, err := s.computeLeaderboard(ctx)
	if err != nil {
		if models.IsCode(err, models.CodeStorageUnavailable) {
			slog.WarnContext(ctx, "leaderboard unavailable, serving empty list", "error", err)
			return []models.UserWithStats{}, nil
		}
		return nil, err
	}
	return board, nil
}

func (s *StatsService) computeLeaderboard(ctx context.Context) ([]models.UserWithStats, error) {
	var board []models.UserWithStats
	err := cache.Aside(ctx, cache.LeaderboardKey, &board, s.cacheTTL, func() error {
		start := time.Now()
		defer func() {
			observability.LeaderboardComputeDuration.Observe(time.Since(start).Seconds())
		}()
		rows, err := s.statsRepo.Leaderboard(ctx)
		if err != nil {
			return err
		}
		board = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	if board == nil {
		board = []models.UserWithStats{}
	}
	return board, nil
}

// UserStats builds the dashboard aggregate for one user.
func (s *StatsService) UserStats(ctx context.Context, userID uint) (*models.UserStats, error) {
	board, err := s.computeLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return s.userStats(ctx, userID, board)
}

func (s *StatsService) userStats(ctx context.Context, userID uint, board []models.UserWithStats) (*models.UserStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	counts, err := s.statsRepo.ActivityCounts(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}

	rank, percentile := RankAndPercentile(board, userID)
	return &models.UserStats{
		ActiveMatches:         counts.Active,
		NewMatches:            counts.Last7d,
		SkillsShared:          counts.Active,
		NewSkillsShared:       counts.Last30d,
		LeaderboardRank:       rank,
		LeaderboardPercentile: percentile,
	}, nil
}

// Overview returns the leaderboard together with the caller's stats, sharing
// a single leaderboard computation.
func (s *StatsService) Overview(ctx context.Context, userID uint) (*Overview, error) {
	board, err := s.computeLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.userStats(ctx, userID, board)
	if err != nil {
		return nil, err
	}
	return &Overview{Leaderboard: board, CurrentUserStats: stats}, nil
}

// RankAndPercentile locates userID in an ordered leaderboard. A user missing
// from the board is ranked last. An empty board yields rank 0 and percentile 0.
func RankAndPercentile(board []models.UserWithStats, userID uint) (int, int) {
	n := len(board)
	if n == 0 {
		return 0, 0
	}
	rank := n
	for i, entry := range board {
		if entry.ID == userID {
			rank = i + 1
			break
		}
	}
	percentile := int(math.Round(100 * float64(n-rank) / float64(n)))
	return rank, percentile
}
