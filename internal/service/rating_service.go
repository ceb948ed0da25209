package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

type RatingService struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
	skillRepo  repository.SkillRepository
}

type CreateRatingInput struct {
	RaterID      uint
	TargetUserID uint
	SkillID      uint
	Score        int
	Comment      string
}

func NewRatingService(ratingRepo repository.RatingRepository, userRepo repository.UserRepository, skillRepo repository.SkillRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, userRepo: userRepo, skillRepo: skillRepo}
}

func (s *RatingService) Create(ctx context.Context, in CreateRatingInput) (*models.Rating, error) {
	if err := validation.ValidateRating(in.Score); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.TargetUserID == 0 || in.SkillID == 0 {
		return nil, models.NewValidationError("targetUserId and skillId are required")
	}
	if in.TargetUserID == in.RaterID {
		return nil, models.NewValidationError("You cannot rate yourself")
	}
	comment := strings.TrimSpace(in.Comment)
	if len([]rune(comment)) > validation.DescriptionMaxLength {
		return nil, models.NewValidationError("comment is too long")
	}

	if _, err := s.userRepo.GetByID(ctx, in.TargetUserID); err != nil {
		return nil, err
	}
	if _, err := s.skillRepo.GetByID(ctx, in.SkillID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		RaterID:      in.RaterID,
		TargetUserID: in.TargetUserID,
		SkillID:      in.SkillID,
		Score:        in.Score,
		Comment:      optionalString(comment),
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) ListForUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.ratingRepo.ListForUser(ctx, userID)
}
