package service

import (
	"context"
	"testing"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile_NormalizesPracticeAreas(t *testing.T) {
	repo := newFakeUserRepo(model.User{ID: 1, Username: "ada"})
	svc := NewProfileService(repo)

	user, err := svc.Update(context.Background(), 1, UpdateProfileRequest{
		Nickname:       "Ada",
		TargetRole:     model.RoleDataAnalyst,
		WorkExperience: "1-3",
		PracticeAreas:  []string{"SQL", "Case Study", "sql", "  "},
	})
	require.NoError(t, err)

	// Tags are slugged and de-duplicated so later overlap comparison is
	// case and spacing insensitive.
	assert.Equal(t, []string{"sql", "case-study"}, user.PracticeAreas)
	assert.Equal(t, "Ada", user.Nickname)
}

func TestUpdateProfile_RejectsUnknownExperienceBucket(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo(model.User{ID: 1, Username: "ada"}))

	_, err := svc.Update(context.Background(), 1, UpdateProfileRequest{WorkExperience: "10+"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateProfile_MissingUser(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo())

	_, err := svc.Update(context.Background(), 42, UpdateProfileRequest{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
