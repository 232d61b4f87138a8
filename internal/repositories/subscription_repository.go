package repositories

import (
	"errors"
	"time"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.UserPlan) error
	Update(db *gorm.DB, sub *models.UserPlan) error

	// FindEffective returns the user's effective subscription: the most
	// recently started row that is active and unexpired. Nil error with a
	// row, or ErrSubscriptionNotFound.
	FindEffective(db *gorm.DB, userID string, now time.Time) (*models.UserPlan, error)

	// FindEffectiveForUpdate is FindEffective with a row lock, for use
	// inside the quota-reservation transaction.
	FindEffectiveForUpdate(db *gorm.DB, userID string, now time.Time) (*models.UserPlan, error)

	FindByUserAndPlan(db *gorm.DB, userID, planID string) (*models.UserPlan, error)
	FindByPaymentRef(db *gorm.DB, ref string) (*models.UserPlan, error)
	FindAllForUser(db *gorm.DB, userID string) ([]models.UserPlan, error)

	// AddUsage increments both counters on one row.
	AddUsage(db *gorm.DB, id string, letters int64, audioMinutes int) error

	// DeactivateOthers clears the active flag on every row of the user
	// except the named plan, enforcing the single-active-row invariant.
	DeactivateOthers(db *gorm.DB, userID, keepPlanID string) error

	// ExpireOverdue flips is_active off on rows whose window has closed.
	ExpireOverdue(db *gorm.DB, now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.UserPlan) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) Update(db *gorm.DB, sub *models.UserPlan) error {
	return db.Save(sub).Error
}

func effectiveQuery(db *gorm.DB, userID string, now time.Time) *gorm.DB {
	return db.Where("user_id = ? AND is_active = ? AND (expires_at IS NULL OR expires_at > ?)", userID, true, now).
		Order("started_at DESC")
}

func (r *SubscriptionRepositoryImpl) FindEffective(db *gorm.DB, userID string, now time.Time) (*models.UserPlan, error) {
	var sub models.UserPlan
	err := effectiveQuery(db.Preload("Plan"), userID, now).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindEffectiveForUpdate(db *gorm.DB, userID string, now time.Time) (*models.UserPlan, error) {
	var sub models.UserPlan
	err := effectiveQuery(db.Clauses(clause.Locking{Strength: "UPDATE"}), userID, now).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	// Plan is loaded separately: FOR UPDATE cannot be combined with the
	// outer join a preload would build.
	if err := db.First(&sub.Plan, "id = ?", sub.PlanID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByUserAndPlan(db *gorm.DB, userID, planID string) (*models.UserPlan, error) {
	var sub models.UserPlan
	err := db.Where("user_id = ? AND plan_id = ?", userID, planID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByPaymentRef(db *gorm.DB, ref string) (*models.UserPlan, error) {
	var sub models.UserPlan
	err := db.Where("payment_ref = ?", ref).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindAllForUser(db *gorm.DB, userID string) ([]models.UserPlan, error) {
	var subs []models.UserPlan
	err := db.Preload("Plan").Where("user_id = ?", userID).Order("started_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) AddUsage(db *gorm.DB, id string, letters int64, audioMinutes int) error {
	result := db.Model(&models.UserPlan{}).Where("id = ?", id).Updates(map[string]interface{}{
		"letters_used":       gorm.Expr("letters_used + ?", letters),
		"audio_minutes_used": gorm.Expr("audio_minutes_used + ?", audioMinutes),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) DeactivateOthers(db *gorm.DB, userID, keepPlanID string) error {
	return db.Model(&models.UserPlan{}).
		Where("user_id = ? AND plan_id <> ? AND is_active = ?", userID, keepPlanID, true).
		Update("is_active", false).Error
}

func (r *SubscriptionRepositoryImpl) ExpireOverdue(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.UserPlan{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
