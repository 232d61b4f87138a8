package services

import (
	"time"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	Stats(db *gorm.DB) (*dto.PlatformStats, error)
	ListUsers(db *gorm.DB, limit, offset int) ([]models.User, int64, error)

	// UpdateRole changes a user's role. Restricted to super_admin; the
	// check lives here so every route hitting it is covered.
	UpdateRole(db *gorm.DB, actorRole models.ProfileRole, userID string, role models.ProfileRole) error

	DeleteUser(db *gorm.DB, actorRole models.ProfileRole, userID string) error
}

type adminService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	dreamRepo   repositories.DreamRepository
	paymentRepo repositories.PaymentRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	dreamRepo repositories.DreamRepository,
	paymentRepo repositories.PaymentRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		dreamRepo:   dreamRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *adminService) Stats(db *gorm.DB) (*dto.PlatformStats, error) {
	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byRole := make(map[string]int64)
	for _, role := range []models.ProfileRole{
		models.RoleDreamer, models.RoleInterpreter, models.RoleAdmin, models.RoleSuperAdmin,
	} {
		n, err := s.profileRepo.CountByRole(db, role)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		byRole[string(role)] = n
	}

	dreamsByStatus, err := s.dreamRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	paymentsByStatus, err := s.paymentRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	revenue, err := s.paymentRepo.SumSucceeded(db, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PlatformStats{
		TotalUsers:       total,
		UsersByRole:      byRole,
		DreamsByStatus:   dreamsByStatus,
		PaymentsByStatus: paymentsByStatus,
		Revenue30Days:    revenue,
	}, nil
}

func (s *adminService) ListUsers(db *gorm.DB, limit, offset int) ([]models.User, int64, error) {
	users, err := s.userRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

func (s *adminService) UpdateRole(db *gorm.DB, actorRole models.ProfileRole, userID string, role models.ProfileRole) error {
	if actorRole != models.RoleSuperAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.profileRepo.UpdateRole(db, userID, role); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) DeleteUser(db *gorm.DB, actorRole models.ProfileRole, userID string) error {
	if actorRole != models.RoleSuperAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if profile.Role == models.RoleSuperAdmin {
		return apperrors.NewForbiddenError("Cannot delete a super admin account")
	}

	if err := s.userRepo.Delete(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
