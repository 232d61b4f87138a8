package repositories

import (
	"errors"
	"strings"
	"time"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists")
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByReference(db *gorm.DB, ref string) (*models.Payment, error)

	// FindByReferenceForUpdate locks the row so at-least-once webhook
	// deliveries serialize on the same reference.
	FindByReferenceForUpdate(db *gorm.DB, ref string) (*models.Payment, error)

	FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Payment, error)
	SumSucceeded(db *gorm.DB, since time.Time) (float64, error)
	CountByStatus(db *gorm.DB) (map[string]int64, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	if err := db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrPaymentAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByReference(db *gorm.DB, ref string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Where("reference = ?", ref).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByReferenceForUpdate(db *gorm.DB, ref string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("reference = ?", ref).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Preload("Plan").Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) SumSucceeded(db *gorm.DB, since time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ?", models.PaymentStatusSucceeded, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *PaymentRepositoryImpl) CountByStatus(db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := db.Model(&models.Payment{}).Select("status, count(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
