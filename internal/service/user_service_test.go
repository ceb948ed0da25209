package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceUpdateProfilePartial(t *testing.T) {
	t.Parallel()
	bio := "old bio"
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alex", Bio: &bio}, nil
	}
	var saved *models.User
	repo.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}
	svc := NewUserService(repo)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Avatar: strPtr("https://example.com/a.png"),
	})
	require.NoError(t, err)
	assert.Same(t, saved, user)
	assert.Equal(t, "alex", user.Username)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "old bio", *user.Bio)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "https://example.com/a.png", *user.Avatar)

	user, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, user.Bio)
}

func TestUserServiceUpdateProfileUsernameTaken(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, name string) (*models.User, error) {
		return &models.User{ID: 99, Username: name}, nil
	}
	svc := NewUserService(repo)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: strPtr("sarah")})
	assertErrorCode(t, err, models.CodeConflict)
}

func TestUserServiceUpdateProfileValidation(t *testing.T) {
	t.Parallel()
	svc := NewUserService(noopUserRepo())

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: strPtr("x")})
	assertValidationError(t, err)

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: strPtr(string(long))})
	assertValidationError(t, err)
}

func TestUserServiceUpdateProfileUnknownUser(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	repo.getByIDFn = missingUsers(5)
	svc := NewUserService(repo)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 5, Bio: strPtr("hi")})
	assertErrorCode(t, err, models.CodeNotFound)
}
