package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"skillswap/internal/ai"
	"skillswap/internal/models"
	"skillswap/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFor(records ...models.UserSkill) *userSkillRepoStub {
	repo := noopUserSkillRepo()
	repo.listByUserFn = func(context.Context, uint, *models.SkillType) ([]models.UserSkill, error) {
		return records, nil
	}
	return repo
}

func TestRecommendationServiceNoSkills(t *testing.T) {
	t.Parallel()
	svc := NewRecommendationService(noopUserSkillRepo(), &testutil.FakeAI{})

	_, err := svc.ForUser(context.Background(), 1)
	assertErrorCode(t, err, models.CodeNotFound)
	assert.Equal(t, "No skills found to base recommendations on", err.Error())
}

func TestRecommendationServiceForUser(t *testing.T) {
	t.Parallel()
	repo := recordsFor(
		models.UserSkill{Type: models.SkillTypeTeach, Proficiency: models.ProficiencyAdvanced, Skill: &models.Skill{Name: "JavaScript"}, Description: strPtr("ES2022")},
		models.UserSkill{Type: models.SkillTypeLearn, Proficiency: models.ProficiencyBeginner, Skill: &models.Skill{Name: "Spanish"}},
	)
	var got []ai.SkillInput
	svc := NewRecommendationService(repo, &testutil.FakeAI{
		RecommendFn: func(_ context.Context, skills []ai.SkillInput) ([]models.Recommendation, error) {
			got = skills
			return []models.Recommendation{{Skill: "Spanish", Resource: "Duolingo", Reason: "daily practice"}}, nil
		},
	})

	recs, err := svc.ForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Duolingo", recs[0].Resource)
	assert.Equal(t, []ai.SkillInput{
		{Name: "JavaScript", Type: "teach", Proficiency: "Advanced", Description: "ES2022"},
		{Name: "Spanish", Type: "learn", Proficiency: "Beginner"},
	}, got)
}

func TestRecommendationServiceFailures(t *testing.T) {
	t.Parallel()
	repo := recordsFor(models.UserSkill{Type: models.SkillTypeLearn, Skill: &models.Skill{Name: "Go"}})

	limited := NewRecommendationService(repo, &testutil.FakeAI{
		RecommendFn: func(context.Context, []ai.SkillInput) ([]models.Recommendation, error) {
			return nil, fmt.Errorf("%w: 429", ai.ErrRateLimited)
		},
	})
	_, err := limited.ForUser(context.Background(), 1)
	assertErrorCode(t, err, models.CodeUpstreamRateLimited)

	broken := NewRecommendationService(repo, &testutil.FakeAI{
		RecommendFn: func(context.Context, []ai.SkillInput) ([]models.Recommendation, error) {
			return nil, errors.New("timeout")
		},
	})
	recs, err := broken.ForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}
