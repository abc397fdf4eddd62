package service

import (
	"context"
	"strings"

	"forkful/internal/authz"
	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpdateProfileUserInput is the nested account payload of a profile
// update. Changes here cascade to the users table.
type UpdateProfileUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UpdateProfileInput carries a partial profile update; nil pointers
// leave the field untouched.
type UpdateProfileInput struct {
	RequesterID uint
	ProfileID   uint
	Location    *string
	User        *UpdateProfileUserInput
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies a partial update to a profile and, when the
// nested user payload is present, to its account in the same
// transaction.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(in.RequesterID, profile) {
		return nil, models.NewForbiddenError("You can only edit your own profile")
	}

	if in.Location != nil {
		profile.Location = strings.TrimSpace(*in.Location)
	}

	if in.User == nil {
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	if in.User.Username != nil {
		username := strings.TrimSpace(*in.User.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.User.Username = username
	}
	if in.User.Email != nil {
		email := strings.TrimSpace(*in.User.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.User.Email = email
	}

	if err := s.profileRepo.UpdateWithUser(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByID(ctx, in.ProfileID)
}
