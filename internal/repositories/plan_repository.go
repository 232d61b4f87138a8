package repositories

import (
	"errors"
	"strings"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAlreadyExists = errors.New("plan already exists")
)

type PlanRepository interface {
	Create(db *gorm.DB, plan *models.Plan) error
	FindByID(db *gorm.DB, id string) (*models.Plan, error)
	FindByName(db *gorm.DB, name string) (*models.Plan, error)
	FindActive(db *gorm.DB) ([]models.Plan, error)
	FindActiveTrial(db *gorm.DB) (*models.Plan, error)
	Update(db *gorm.DB, plan *models.Plan) error
	Delete(db *gorm.DB, id string) error
}

type PlanRepositoryImpl struct{}

func NewPlanRepository() PlanRepository {
	return &PlanRepositoryImpl{}
}

func (r *PlanRepositoryImpl) Create(db *gorm.DB, plan *models.Plan) error {
	if err := db.Create(plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrPlanAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PlanRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Plan, error) {
	var plan models.Plan
	err := db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.Plan, error) {
	var plan models.Plan
	err := db.Where("name = ?", name).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindActive(db *gorm.DB) ([]models.Plan, error) {
	var plans []models.Plan
	err := db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

// FindActiveTrial returns the active trial plan, or ErrPlanNotFound when
// none is configured. Ties break on the cheapest plan.
func (r *PlanRepositoryImpl) FindActiveTrial(db *gorm.DB) (*models.Plan, error) {
	var plan models.Plan
	err := db.Where("is_active = ? AND is_trial = ?", true, true).Order("price ASC").First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) Update(db *gorm.DB, plan *models.Plan) error {
	result := db.Model(plan).Updates(map[string]interface{}{
		"price":               plan.Price,
		"currency":            plan.Currency,
		"duration_days":       plan.DurationDays,
		"max_dreams":          plan.MaxDreams,
		"max_interpretations": plan.MaxInterpretations,
		"letter_quota":        plan.LetterQuota,
		"audio_minute_quota":  plan.AudioMinuteQuota,
		"is_active":           plan.IsActive,
		"is_trial":            plan.IsTrial,
		"trial_days":          plan.TrialDays,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Plan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
