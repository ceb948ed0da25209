package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingServiceCreate(t *testing.T) {
	t.Parallel()
	ratings := &ratingRepoStub{}
	svc := NewRatingService(ratings, noopUserRepo(), noopSkillRepo())

	r, err := svc.Create(context.Background(), CreateRatingInput{RaterID: 1, TargetUserID: 2, SkillID: 3, Score: 5, Comment: " Great teacher "})
	require.NoError(t, err)
	assert.Equal(t, 5, r.Score)
	require.NotNil(t, r.Comment)
	assert.Equal(t, "Great teacher", *r.Comment)

	list, err := svc.ListForUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRatingServiceCreateRejects(t *testing.T) {
	t.Parallel()
	users := noopUserRepo()
	users.getByIDFn = missingUsers(8)
	skills := noopSkillRepo()
	skills.getByIDFn = func(_ context.Context, id uint) (*models.Skill, error) {
		if id == 404 {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return &models.Skill{ID: id}, nil
	}
	ratings := &ratingRepoStub{}
	svc := NewRatingService(ratings, users, skills)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateRatingInput
		code string
	}{
		{"score too low", CreateRatingInput{RaterID: 1, TargetUserID: 2, SkillID: 3, Score: 0}, models.CodeValidation},
		{"score too high", CreateRatingInput{RaterID: 1, TargetUserID: 2, SkillID: 3, Score: 6}, models.CodeValidation},
		{"self rating", CreateRatingInput{RaterID: 1, TargetUserID: 1, SkillID: 3, Score: 4}, models.CodeValidation},
		{"missing skill id", CreateRatingInput{RaterID: 1, TargetUserID: 2, Score: 4}, models.CodeValidation},
		{"unknown target", CreateRatingInput{RaterID: 1, TargetUserID: 8, SkillID: 3, Score: 4}, models.CodeNotFound},
		{"unknown skill", CreateRatingInput{RaterID: 1, TargetUserID: 2, SkillID: 404, Score: 4}, models.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assertErrorCode(t, err, tt.code)
		})
	}
	assert.Empty(t, ratings.created)
}
