package repository

import (
	"context"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserSkillRepository manages the teach/learn records owned by users.
type UserSkillRepository interface {
	ListByUser(ctx context.Context, userID uint, skillType *models.SkillType) ([]models.UserSkill, error)
	GetByID(ctx context.Context, id uint) (*models.UserSkill, error)
	Create(ctx context.Context, record *models.UserSkill) error
	Update(ctx context.Context, record *models.UserSkill) error
	HasSkill(ctx context.Context, userID, skillID uint, skillType models.SkillType) (bool, error)
}

type userSkillRepository struct {
	db *gorm.DB
}

func NewUserSkillRepository(db *gorm.DB) UserSkillRepository {
	return &userSkillRepository{db: db}
}

func (r *userSkillRepository) ListByUser(ctx context.Context, userID uint, skillType *models.SkillType) ([]models.UserSkill, error) {
	var records []models.UserSkill
	q := readDB(r.db).WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID)
	if skillType != nil {
		q = q.Where("type = ?", *skillType)
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return records, nil
}

func (r *userSkillRepository) GetByID(ctx context.Context, id uint) (*models.UserSkill, error) {
	var record models.UserSkill
	if err := r.db.WithContext(ctx).Preload("Skill").First(&record, id).Error; err != nil {
		return nil, notFoundOr(err, "Skill record", id)
	}
	return &record, nil
}

func (r *userSkillRepository) Create(ctx context.Context, record *models.UserSkill) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLeaderboard(ctx)
	cache.Invalidate(ctx, cache.RecommendationsKey(record.UserID))
	return nil
}

func (r *userSkillRepository) Update(ctx context.Context, record *models.UserSkill) error {
	err := r.db.WithContext(ctx).Model(record).
		Select("proficiency", "description", "progress", "partner_count", "teacher", "updated_at").
		Updates(record).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// HasSkill reports whether userID owns a record of skillType for skillID.
func (r *userSkillRepository) HasSkill(ctx context.Context, userID, skillID uint, skillType models.SkillType) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).Model(&models.UserSkill{}).
		Where("user_id = ? AND skill_id = ? AND type = ?", userID, skillID, skillType).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
