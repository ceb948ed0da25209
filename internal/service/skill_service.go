package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

type SkillService struct {
	skillRepo     repository.SkillRepository
	userSkillRepo repository.UserSkillRepository
}

type AddSkillInput struct {
	UserID      uint
	Type        models.SkillType
	Name        string
	Proficiency models.Proficiency
	Description string
}

type UpdateSkillInput struct {
	UserID       uint
	RecordID     uint
	Proficiency  *models.Proficiency
	Description  *string
	Progress     *int
	PartnerCount *int
	Teacher      *string
}

func NewSkillService(skillRepo repository.SkillRepository, userSkillRepo repository.UserSkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo, userSkillRepo: userSkillRepo}
}

// ParseSkillType validates an optional ?type= filter. Empty means no filter.
func ParseSkillType(raw string) (*models.SkillType, error) {
	if raw == "" {
		return nil, nil
	}
	t := models.SkillType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return nil, models.NewValidationError("type must be one of: teach, learn")
	}
	return &t, nil
}

func (s *SkillService) ListForUser(ctx context.Context, userID uint, typeFilter string) ([]models.UserSkill, error) {
	t, err := ParseSkillType(typeFilter)
	if err != nil {
		return nil, err
	}
	return s.userSkillRepo.ListByUser(ctx, userID, t)
}

func (s *SkillService) ListCatalogue(ctx context.Context) ([]models.Skill, error) {
	return s.skillRepo.List(ctx)
}

// AddSkill declares a teach or learn record, creating the catalogue entry when needed.
func (s *SkillService) AddSkill(ctx context.Context, in AddSkillInput) (*models.UserSkill, error) {
	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateSkillForm(in.Type, name, in.Proficiency, in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	skill, err := s.skillRepo.FindOrCreate(ctx, name, nil)
	if err != nil {
		return nil, err
	}

	record := &models.UserSkill{
		UserID:      in.UserID,
		SkillID:     skill.ID,
		Type:        in.Type,
		Proficiency: in.Proficiency,
		Description: optionalString(strings.TrimSpace(in.Description)),
	}
	if err := s.userSkillRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	record.Skill = skill
	return record, nil
}

// UpdateSkill edits one of the caller's own records.
func (s *SkillService) UpdateSkill(ctx context.Context, in UpdateSkillInput) (*models.UserSkill, error) {
	record, err := s.userSkillRepo.GetByID(ctx, in.RecordID)
	if err != nil {
		return nil, err
	}
	if record.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own skills")
	}

	if in.Proficiency != nil {
		if !in.Proficiency.Valid() {
			return nil, models.NewValidationError("proficiency must be one of: Beginner, Intermediate, Advanced, Expert")
		}
		record.Proficiency = *in.Proficiency
	}
	if in.Description != nil {
		if len([]rune(*in.Description)) > validation.DescriptionMaxLength {
			return nil, models.NewValidationError("description is too long")
		}
		record.Description = optionalString(strings.TrimSpace(*in.Description))
	}
	if in.Progress != nil {
		if err := validation.ValidateProgress(*in.Progress); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		record.Progress = *in.Progress
	}
	if in.PartnerCount != nil {
		if *in.PartnerCount < 0 {
			return nil, models.NewValidationError("partnerCount cannot be negative")
		}
		record.PartnerCount = *in.PartnerCount
	}
	if in.Teacher != nil {
		record.Teacher = optionalString(strings.TrimSpace(*in.Teacher))
	}

	if err := s.userSkillRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateSkill adds a catalogue entry directly.
func (s *SkillService) CreateSkill(ctx context.Context, name, category string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateSkillName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	skill := &models.Skill{Name: name, Category: optionalString(strings.TrimSpace(category))}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}
