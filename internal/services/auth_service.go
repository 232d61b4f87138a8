package services

import (
	"context"

	"rooya_backend/internal/auth"
	"rooya_backend/internal/dto"
	"rooya_backend/internal/email"
	"rooya_backend/internal/logger"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, userID string) (*dto.UserResponse, *dto.ProfileResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	quota       QuotaService
	mailer      email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	quota QuotaService,
	mailer email.Provider,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		quota:       quota,
		mailer:      mailer,
	}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.ProfileRole(req.Role)
	if role == "" {
		role = models.RoleDreamer
	}
	if !models.SelfServiceRole(role) {
		return nil, apperrors.ErrRoleNotSelfService
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{Email: req.Email, PasswordHash: hash}
	profile := &models.Profile{Role: role, FullName: req.FullName}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		profile.UserID = user.ID
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return apperrors.InternalError(err)
		}

		// New dreamers start on the trial plan when one is configured.
		if role == models.RoleDreamer {
			if _, err := s.quota.GrantTrial(tx, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go func() {
		msg := email.WelcomeEmail(user.Email, profile.FullName)
		if err := s.mailer.Send(context.Background(), msg); err != nil {
			logger.WithError(err).Warn("failed to send welcome email", "user_id", user.ID)
		}
	}()

	return s.buildAuthResponse(user, profile)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Profile == nil {
		return nil, apperrors.InternalError(nil).WithDetails("profile missing for user")
	}

	return s.buildAuthResponse(user, user.Profile)
}

func (s *authService) Me(db *gorm.DB, userID string) (*dto.UserResponse, *dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}
	if user.Profile == nil {
		return nil, nil, apperrors.InternalError(nil).WithDetails("profile missing for user")
	}

	userResp := dto.NewUserResponse(user)
	profileResp := dto.NewProfileResponse(user.Profile)
	return &userResp, &profileResp, nil
}

func (s *authService) buildAuthResponse(user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, string(profile.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
		Profile:     dto.NewProfileResponse(profile),
	}, nil
}
