package repositories

import (
	"errors"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error
	UpdateRole(db *gorm.DB, userID string, role models.ProfileRole) error
	SetCurrentPlan(db *gorm.DB, userID string, planID *string) error
	CountByRole(db *gorm.DB, role models.ProfileRole) (int64, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("CurrentPlan").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateRole(db *gorm.DB, userID string, role models.ProfileRole) error {
	result := db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) SetCurrentPlan(db *gorm.DB, userID string, planID *string) error {
	return db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("current_plan_id", planID).Error
}

func (r *ProfileRepositoryImpl) CountByRole(db *gorm.DB, role models.ProfileRole) (int64, error) {
	var count int64
	err := db.Model(&models.Profile{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
