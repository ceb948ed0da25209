package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillServiceAddSkill(t *testing.T) {
	t.Parallel()
	records := noopUserSkillRepo()
	var created *models.UserSkill
	records.createFn = func(_ context.Context, r *models.UserSkill) error {
		r.ID = 21
		created = r
		return nil
	}
	svc := NewSkillService(noopSkillRepo(), records)

	rec, err := svc.AddSkill(context.Background(), AddSkillInput{
		UserID:      4,
		Type:        models.SkillTypeTeach,
		Name:        " Go ",
		Proficiency: models.ProficiencyExpert,
		Description: "  ",
	})
	require.NoError(t, err)
	assert.Same(t, created, rec)
	assert.Equal(t, uint(7), rec.SkillID)
	assert.Equal(t, "Go", rec.Skill.Name)
	assert.Nil(t, rec.Description)
}

func TestSkillServiceAddSkillValidation(t *testing.T) {
	t.Parallel()
	svc := NewSkillService(noopSkillRepo(), noopUserSkillRepo())

	cases := []AddSkillInput{
		{Type: "mentor", Name: "Go", Proficiency: models.ProficiencyExpert},
		{Type: models.SkillTypeLearn, Name: "G", Proficiency: models.ProficiencyBeginner},
		{Type: models.SkillTypeLearn, Name: "Go", Proficiency: "Guru"},
	}
	for _, in := range cases {
		_, err := svc.AddSkill(context.Background(), in)
		assertValidationError(t, err)
	}
}

func TestSkillServiceListForUserTypeFilter(t *testing.T) {
	t.Parallel()
	records := noopUserSkillRepo()
	var got *models.SkillType
	records.listByUserFn = func(_ context.Context, _ uint, t *models.SkillType) ([]models.UserSkill, error) {
		got = t
		return []models.UserSkill{}, nil
	}
	svc := NewSkillService(noopSkillRepo(), records)

	_, err := svc.ListForUser(context.Background(), 1, "LEARN")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SkillTypeLearn, *got)

	_, err = svc.ListForUser(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = svc.ListForUser(context.Background(), 1, "teaching")
	assertValidationError(t, err)
}

func TestSkillServiceUpdateSkillOwnership(t *testing.T) {
	t.Parallel()
	records := noopUserSkillRepo()
	records.getByIDFn = recordsByID(&models.UserSkill{ID: 3, UserID: 1, Type: models.SkillTypeLearn})
	svc := NewSkillService(noopSkillRepo(), records)

	progress := 55
	rec, err := svc.UpdateSkill(context.Background(), UpdateSkillInput{UserID: 1, RecordID: 3, Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 55, rec.Progress)

	_, err = svc.UpdateSkill(context.Background(), UpdateSkillInput{UserID: 2, RecordID: 3, Progress: &progress})
	assertErrorCode(t, err, models.CodeForbidden)

	tooMuch := 101
	_, err = svc.UpdateSkill(context.Background(), UpdateSkillInput{UserID: 1, RecordID: 3, Progress: &tooMuch})
	assertValidationError(t, err)
}
