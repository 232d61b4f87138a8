package repositories

import (
	"errors"
	"time"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDreamNotFound = errors.New("dream not found")

// DreamFilter narrows list queries; zero values mean "no filter".
type DreamFilter struct {
	DreamerID     string
	InterpreterID string
	Status        models.DreamStatus
	Page          int
	PageSize      int
}

type DreamRepository interface {
	Create(db *gorm.DB, dream *models.Dream) error
	FindByID(db *gorm.DB, id string) (*models.Dream, error)
	Update(db *gorm.DB, dream *models.Dream) error
	Delete(db *gorm.DB, id string) error
	FindWithFilter(db *gorm.DB, filter DreamFilter) ([]models.Dream, int64, error)

	// CountByDreamerSince counts dreams the dreamer created at or after
	// the given instant; the quota ledger checks this against MaxDreams.
	CountByDreamerSince(db *gorm.DB, dreamerID string, since time.Time) (int64, error)
	CountByStatus(db *gorm.DB) (map[string]int64, error)
}

type DreamRepositoryImpl struct{}

func NewDreamRepository() DreamRepository {
	return &DreamRepositoryImpl{}
}

func (r *DreamRepositoryImpl) Create(db *gorm.DB, dream *models.Dream) error {
	return db.Create(dream).Error
}

func (r *DreamRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Dream, error) {
	var dream models.Dream
	err := db.Preload("Dreamer.Profile").Preload("Interpreter.Profile").First(&dream, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDreamNotFound
		}
		return nil, err
	}
	return &dream, nil
}

func (r *DreamRepositoryImpl) Update(db *gorm.DB, dream *models.Dream) error {
	return db.Save(dream).Error
}

func (r *DreamRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Dream{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDreamNotFound
	}
	return nil
}

func (r *DreamRepositoryImpl) FindWithFilter(db *gorm.DB, filter DreamFilter) ([]models.Dream, int64, error) {
	query := db.Model(&models.Dream{})

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

	var dreams []models.Dream
	err := query.Preload("Dreamer.Profile").Preload("Interpreter.Profile").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&dreams).Error
	return dreams, total, err
}

func (r *DreamRepositoryImpl) CountByDreamerSince(db *gorm.DB, dreamerID string, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Dream{}).
		Where("dreamer_id = ? AND created_at >= ?", dreamerID, since).
		Count(&count).Error
	return count, err
}

func (r *DreamRepositoryImpl) CountByStatus(db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := db.Model(&models.Dream{}).Select("status, count(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
