package services

import (
	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.Profile, error)
	GetProfile(db *gorm.DB, userID string) (*models.Profile, error)
}

type userService struct {
	profileRepo repositories.ProfileRepository
}

func NewUserService(profileRepo repositories.ProfileRepository) UserService {
	return &userService{profileRepo: profileRepo}
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *userService) GetProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}
