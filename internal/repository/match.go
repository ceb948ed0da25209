package repository

import (
	"context"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// MatchRepository persists exchange proposals between users.
type MatchRepository interface {
	ListForUser(ctx context.Context, userID uint, status *models.MatchStatus) ([]models.Match, error)
	GetByID(ctx context.Context, id uint) (*models.Match, error)
	Create(ctx context.Context, match *models.Match) error
	CreateWithNotice(ctx context.Context, match *models.Match, notice *models.Message) error
	UpdateStatus(ctx context.Context, id uint, status models.MatchStatus) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func withMatchAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("SourceUser").
		Preload("TargetUser").
		Preload("TeachSkill.Skill").
		Preload("LearnSkill.Skill")
}

// ListForUser returns matches where userID is either party, newest first.
func (r *matchRepository) ListForUser(ctx context.Context, userID uint, status *models.MatchStatus) ([]models.Match, error) {
	var matches []models.Match
	q := withMatchAssociations(readDB(r.db).WithContext(ctx)).
		Where("source_user_id = ? OR target_user_id = ?", userID, userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&matches).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return matches, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	if err := withMatchAssociations(r.db.WithContext(ctx)).First(&match, id).Error; err != nil {
		return nil, notFoundOr(err, "Match", id)
	}
	return &match, nil
}

func (r *matchRepository) Create(ctx context.Context, match *models.Match) error {
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return models.NewInternalError(err)
	}
	if match.Status == models.MatchStatusAccepted {
		cache.InvalidateLeaderboard(ctx)
	}
	return nil
}

// CreateWithNotice writes the match and the message announcing it in one transaction.
func (r *matchRepository) CreateWithNotice(ctx context.Context, match *models.Match, notice *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return err
		}
		if notice != nil {
			return tx.Create(notice).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id uint, status models.MatchStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Match", id)
	}
	cache.InvalidateLeaderboard(ctx)
	return nil
}
