package service

import (
	"context"
	"errors"
	"log/slog"

	"skillswap/internal/ai"
	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type RecommendationService struct {
	userSkillRepo repository.UserSkillRepository
	ai            ai.Client
}

func NewRecommendationService(userSkillRepo repository.UserSkillRepository, client ai.Client) *RecommendationService {
	return &RecommendationService{userSkillRepo: userSkillRepo, ai: client}
}

// ForUser asks the provider for learning resources based on the user's skills.
// Results are cached until the user's skill records change.
func (s *RecommendationService) ForUser(ctx context.Context, userID uint) ([]models.Recommendation, error) {
	records, err := s.userSkillRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "No skills found to base recommendations on"}
	}

	var recs []models.Recommendation
	err = cache.Aside(ctx, cache.RecommendationsKey(userID), &recs, cache.RecommendationsTTL, func() error {
		out, err := s.ai.Recommend(ctx, skillInputs(records))
		if err != nil {
			return err
		}
		recs = out
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ai.ErrRateLimited):
		return nil, models.NewUpstreamRateLimitedError(err)
	default:
		slog.WarnContext(ctx, "recommendations unavailable", "user_id", userID, "error", err)
		return []models.Recommendation{}, nil
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return recs, nil
}

func skillInputs(records []models.UserSkill) []ai.SkillInput {
	out := make([]ai.SkillInput, 0, len(records))
	for _, r := range records {
		in := ai.SkillInput{
			Name:        skillName(&r),
			Type:        string(r.Type),
			Proficiency: string(r.Proficiency),
		}
		if r.Description != nil {
			in.Description = *r.Description
		}
		out = append(out, in)
	}
	return out
}
