package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// ContentRepository persists uploaded artifacts and their summaries.
type ContentRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Content, error)
	GetByID(ctx context.Context, id uint) (*models.Content, error)
	Create(ctx context.Context, content *models.Content) error
	Update(ctx context.Context, content *models.Content) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Content, error) {
	var items []models.Content
	err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.Content, error) {
	var item models.Content
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFoundOr(err, "Content", id)
	}
	return &item, nil
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	if err := r.db.WithContext(ctx).Save(content).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
