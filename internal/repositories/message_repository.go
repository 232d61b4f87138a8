package repositories

import (
	"errors"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(db *gorm.DB, msg *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	FindByDream(db *gorm.DB, dreamID string) ([]models.Message, error)
	Delete(db *gorm.DB, id string) error

	CreateChat(db *gorm.DB, msg *models.ChatMessage) error
	FindChatByRequest(db *gorm.DB, requestID string) ([]models.ChatMessage, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, msg *models.Message) error {
	return db.Create(msg).Error
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var msg models.Message
	err := db.First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepositoryImpl) FindByDream(db *gorm.DB, dreamID string) ([]models.Message, error) {
	var msgs []models.Message
	err := db.Preload("Sender.Profile").Where("dream_id = ?", dreamID).Order("created_at ASC").Find(&msgs).Error
	return msgs, err
}

func (r *MessageRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) CreateChat(db *gorm.DB, msg *models.ChatMessage) error {
	return db.Create(msg).Error
}

func (r *MessageRepositoryImpl) FindChatByRequest(db *gorm.DB, requestID string) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := db.Preload("Sender.Profile").Where("request_id = ?", requestID).Order("created_at ASC").Find(&msgs).Error
	return msgs, err
}
