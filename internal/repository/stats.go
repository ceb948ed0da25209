package repository

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/observability"

	"gorm.io/gorm"
)

// Points awarded per accepted exchange and per declared skill record.
const (
	PointsPerSharedSkill = 5
	PointsPerSkillRecord = 2
)

// ActivityCounts are the accepted-match tallies behind the dashboard.
type ActivityCounts struct {
	Active  int
	Last7d  int
	Last30d int
}

// StatsRepository computes leaderboard and dashboard aggregates.
type StatsRepository interface {
	Leaderboard(ctx context.Context) ([]models.UserWithStats, error)
	ActivityCounts(ctx context.Context, userID uint, now time.Time) (ActivityCounts, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Each accepted match counts once per participant; a
// self-match still counts once thanks to DISTINCT.
const leaderboardQuery = `
SELECT u.id, u.username, u.bio, u.avatar, u.created_at, u.updated_at,
	COALESCE(am.shared, 0) AS skills_shared,
	COALESCE(am.shared, 0) * ? + COALESCE(us.records, 0) * ? AS points
FROM users u
LEFT JOIN (
	SELECT p.user_id, COUNT(DISTINCT p.match_id) AS shared
	FROM (
		SELECT id AS match_id, source_user_id AS user_id FROM matches WHERE status = ?
		UNION ALL
		SELECT id AS match_id, target_user_id AS user_id FROM matches WHERE status = ?
	) p
	GROUP BY p.user_id
) am ON am.user_id = u.id
LEFT JOIN (
	SELECT user_id, COUNT(*) AS records
	FROM user_skills
	GROUP BY user_id
) us ON us.user_id = u.id
ORDER BY points DESC, u.id ASC`

type leaderboardRow struct {
	ID           uint
	Username     string
	Bio          *string
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SkillsShared int
	Points       int
}

// Leaderboard ranks every user by points, ties broken by ascending id.
// Storage failures come back as StorageUnavailable.
func (r *statsRepository) Leaderboard(ctx context.Context) (_ []models.UserWithStats, err error) {
	ctx, done := observability.StartQuery(ctx, "leaderboard", "users")
	defer func() { done(err) }()

	var rows []leaderboardRow
	err = readDB(r.db).WithContext(ctx).Raw(leaderboardQuery,
		PointsPerSharedSkill, PointsPerSkillRecord,
		models.MatchStatusAccepted, models.MatchStatusAccepted,
	).Scan(&rows).Error
	if err != nil {
		return nil, models.NewStorageUnavailableError(err)
	}

	out := make([]models.UserWithStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.UserWithStats{
			User: models.User{
				ID:        row.ID,
				Username:  row.Username,
				Bio:       row.Bio,
				Avatar:    row.Avatar,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			SkillsShared: row.SkillsShared,
			Points:       row.Points,
		})
	}
	return out, nil
}

// ActivityCounts tallies accepted matches involving userID. Windows are
// strict: a match created exactly 7 days before now is not counted as new.
func (r *statsRepository) ActivityCounts(ctx context.Context, userID uint, now time.Time) (_ ActivityCounts, err error) {
	ctx, done := observability.StartQuery(ctx, "activity_counts", "matches")
	defer func() { done(err) }()

	var created []time.Time
	err = readDB(r.db).WithContext(ctx).Model(&models.Match{}).
		Where("status = ? AND (source_user_id = ? OR target_user_id = ?)", models.MatchStatusAccepted, userID, userID).
		Pluck("created_at", &created).Error
	if err != nil {
		return ActivityCounts{}, models.NewStorageUnavailableError(err)
	}

	week := now.Add(-7 * 24 * time.Hour)
	month := now.Add(-30 * 24 * time.Hour)

	counts := ActivityCounts{Active: len(created)}
	for _, ts := range created {
		if ts.After(week) {
			counts.Last7d++
		}
		if ts.After(month) {
			counts.Last30d++
		}
	}
	return counts, nil
}
