package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	LeaderboardKey         = "leaderboard:v1"
	RecommendationsKeyBase = "recommendations:%d"
)

const (
	UserTTL            = 5 * time.Minute
	LeaderboardTTL     = 30 * time.Second
	RecommendationsTTL = 6 * time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecommendationsKey(userID uint) string {
	return fmt.Sprintf(RecommendationsKeyBase, userID)
}

// Invalidate removes key. It is a no-op without Redis.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateLeaderboard drops the cached leaderboard after a write that changes points.
func InvalidateLeaderboard(ctx context.Context) {
	Invalidate(ctx, LeaderboardKey)
}
