package service

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.Profile, error)
	getByUserIDFn   func(context.Context, uint) (*models.Profile, error)
	updateFn        func(context.Context, *models.Profile) error
	updateWithUser  func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) UpdateWithUser(ctx context.Context, profile *models.Profile) error {
	return s.updateWithUser(ctx, profile)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn:      func(_ context.Context, _ uint) (*models.Profile, error) { return &models.Profile{}, nil },
		getByUserIDFn:  func(_ context.Context, _ uint) (*models.Profile, error) { return &models.Profile{}, nil },
		updateFn:       func(_ context.Context, _ *models.Profile) error { return nil },
		updateWithUser: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

func ownedProfileRepo() *profileRepoStub {
	repo := noopProfileRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
		return &models.Profile{
			ID:     id,
			UserID: 1,
			Image:  models.DefaultProfileImage,
			User:   models.User{ID: 1, Username: "alice", Email: "alice@example.com"},
		}, nil
	}
	return repo
}

func TestProfileService_UpdateProfile_Ownership(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(ownedProfileRepo())
	ctx := context.Background()
	location := "Lisbon"

	profile, err := svc.UpdateProfile(ctx, UpdateProfileInput{RequesterID: 2, ProfileID: 1, Location: &location})
	assert.Nil(t, profile)
	assertForbiddenError(t, err)

	profile, err = svc.UpdateProfile(ctx, UpdateProfileInput{RequesterID: 1, ProfileID: 1, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", profile.Location)
}

func TestProfileService_UpdateProfile_CascadesUser(t *testing.T) {
	t.Parallel()

	repo := ownedProfileRepo()
	cascaded := false
	plainUpdated := false
	repo.updateWithUser = func(_ context.Context, profile *models.Profile) error {
		cascaded = true
		assert.Equal(t, "alice2", profile.User.Username)
		assert.Equal(t, "alice2@example.com", profile.User.Email)
		return nil
	}
	repo.updateFn = func(_ context.Context, _ *models.Profile) error {
		plainUpdated = true
		return nil
	}

	svc := NewProfileService(repo)
	username := "alice2"
	email := "alice2@example.com"
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		RequesterID: 1,
		ProfileID:   1,
		User:        &UpdateProfileUserInput{Username: &username, Email: &email},
	})
	require.NoError(t, err)
	assert.True(t, cascaded)
	assert.False(t, plainUpdated)
}

func TestProfileService_UpdateProfile_ValidatesNestedUser(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(ownedProfileRepo())
	ctx := context.Background()

	badUsername := "x"
	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		RequesterID: 1,
		ProfileID:   1,
		User:        &UpdateProfileUserInput{Username: &badUsername},
	})
	assertValidationError(t, err)

	badEmail := "not-an-email"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{
		RequesterID: 1,
		ProfileID:   1,
		User:        &UpdateProfileUserInput{Email: &badEmail},
	})
	assertValidationError(t, err)
}

func TestUserService_DeleteUser_SelfOnly(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&userRepoStubSvc{})
	err := svc.DeleteUser(context.Background(), 1, 2)
	assertForbiddenError(t, err)
}

// userRepoStubSvc is a minimal stub for repository.UserRepository.
type userRepoStubSvc struct{}

func (s *userRepoStubSvc) GetByID(_ context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (s *userRepoStubSvc) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}
func (s *userRepoStubSvc) GetByUsername(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}
func (s *userRepoStubSvc) CreateWithProfile(_ context.Context, user *models.User) (*models.User, error) {
	return user, nil
}
func (s *userRepoStubSvc) Update(_ context.Context, _ *models.User) error { return nil }
func (s *userRepoStubSvc) Delete(_ context.Context, _ uint) error         { return nil }
func (s *userRepoStubSvc) List(_ context.Context, _, _ int) ([]models.User, error) {
	return nil, nil
}
