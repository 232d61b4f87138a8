package repositories

import (
	"errors"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	FindByDream(db *gorm.DB, dreamID string) ([]models.Comment, error)
	Delete(db *gorm.DB, id string) error
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindByDream(db *gorm.DB, dreamID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("Author.Profile").Where("dream_id = ?", dreamID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
