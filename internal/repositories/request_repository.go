package repositories

import (
	"errors"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("request not found")

type RequestFilter struct {
	DreamerID     string
	InterpreterID string
	Status        models.RequestStatus
	Page          int
	PageSize      int
}

type RequestRepository interface {
	Create(db *gorm.DB, request *models.Request) error
	FindByID(db *gorm.DB, id string) (*models.Request, error)
	Update(db *gorm.DB, request *models.Request) error
	FindWithFilter(db *gorm.DB, filter RequestFilter) ([]models.Request, int64, error)
}

type RequestRepositoryImpl struct{}

func NewRequestRepository() RequestRepository {
	return &RequestRepositoryImpl{}
}

func (r *RequestRepositoryImpl) Create(db *gorm.DB, request *models.Request) error {
	return db.Create(request).Error
}

func (r *RequestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Request, error) {
	var request models.Request
	err := db.Preload("Dream").Preload("Dreamer.Profile").Preload("Interpreter.Profile").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepositoryImpl) Update(db *gorm.DB, request *models.Request) error {
	return db.Save(request).Error
}

func (r *RequestRepositoryImpl) FindWithFilter(db *gorm.DB, filter RequestFilter) ([]models.Request, int64, error) {
	query := db.Model(&models.Request{})

	if filter.DreamerID != "" {
		query = query.Where("dreamer_id = ?", filter.DreamerID)
	}
	if filter.InterpreterID != "" {
		query = query.Where("interpreter_id = ?", filter.InterpreterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var requests []models.Request
	err := query.Preload("Dream").Preload("Dreamer.Profile").Preload("Interpreter.Profile").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&requests).Error
	return requests, total, err
}
