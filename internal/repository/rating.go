package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListForUser(ctx context.Context, targetUserID uint) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) ListForUser(ctx context.Context, targetUserID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := readDB(r.db).WithContext(ctx).
		Where("target_user_id = ?", targetUserID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}
