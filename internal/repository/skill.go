package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository manages the shared skill catalogue.
type SkillRepository interface {
	List(ctx context.Context) ([]models.Skill, error)
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	GetByName(ctx context.Context, name string) (*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	FindOrCreate(ctx context.Context, name string, category *string) (*models.Skill, error)
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := readDB(r.db).WithContext(ctx).Order("name ASC").Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := readDB(r.db).WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, notFoundOr(err, "Skill", id)
	}
	return &skill, nil
}

// GetByName returns (nil, nil) for an unknown name.
func (r *skillRepository) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Skill already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// FindOrCreate resolves a skill by exact name, creating it when absent.
// A concurrent insert of the same name is resolved by re-reading.
func (r *skillRepository) FindOrCreate(ctx context.Context, name string, category *string) (*models.Skill, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	skill := &models.Skill{Name: name, Category: category}
	if err := r.Create(ctx, skill); err != nil {
		if !models.IsCode(err, models.CodeConflict) {
			return nil, err
		}
		existing, err = r.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, models.NewInternalError(errors.New("skill vanished after conflict"))
		}
		return existing, nil
	}
	return skill, nil
}
