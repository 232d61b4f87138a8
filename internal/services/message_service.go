package services

import (
	"rooya_backend/internal/auth"
	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MessageService covers both conversation surfaces: messages on a dream
// and chat on a request. Both are closed, read and write alike, until an
// interpreter is assigned.
type MessageService interface {
	ListDreamMessages(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string) ([]models.Message, error)
	SendDreamMessage(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string, req *dto.SendMessageRequest) (*models.Message, error)
	DeleteDreamMessage(db *gorm.DB, actorID string, role models.ProfileRole, messageID string) error

	ListRequestChat(db *gorm.DB, actorID string, role models.ProfileRole, requestID string) ([]models.ChatMessage, error)
	SendRequestChat(db *gorm.DB, actorID string, role models.ProfileRole, requestID string, req *dto.SendMessageRequest) (*models.ChatMessage, error)
}

type messageService struct {
	messageRepo repositories.MessageRepository
	dreamRepo   repositories.DreamRepository
	requestRepo repositories.RequestRepository
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	dreamRepo repositories.DreamRepository,
	requestRepo repositories.RequestRepository,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		dreamRepo:   dreamRepo,
		requestRepo: requestRepo,
	}
}

func (s *messageService) ListDreamMessages(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string) ([]models.Message, error) {
	if _, err := s.authorizeDream(db, actorID, role, dreamID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByDream(db, dreamID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

func (s *messageService) SendDreamMessage(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string, req *dto.SendMessageRequest) (*models.Message, error) {
	if _, err := s.authorizeDream(db, actorID, role, dreamID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		DreamID:  dreamID,
		SenderID: actorID,
		Body:     req.Body,
	}
	if err := s.messageRepo.Create(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return msg, nil
}

func (s *messageService) DeleteDreamMessage(db *gorm.DB, actorID string, role models.ProfileRole, messageID string) error {
	msg, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CanDeleteMessage(role, actorID, msg) {
		return apperrors.ErrCannotDeleteMessage
	}

	if err := s.messageRepo.Delete(db, messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *messageService) ListRequestChat(db *gorm.DB, actorID string, role models.ProfileRole, requestID string) ([]models.ChatMessage, error) {
	if _, err := s.authorizeRequest(db, actorID, role, requestID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindChatByRequest(db, requestID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

func (s *messageService) SendRequestChat(db *gorm.DB, actorID string, role models.ProfileRole, requestID string, req *dto.SendMessageRequest) (*models.ChatMessage, error) {
	if _, err := s.authorizeRequest(db, actorID, role, requestID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		RequestID: requestID,
		SenderID:  actorID,
		Body:      req.Body,
	}
	if err := s.messageRepo.CreateChat(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return msg, nil
}

func (s *messageService) authorizeDream(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string) (*models.Dream, error) {
	dream, err := s.dreamRepo.FindByID(db, dreamID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDreamNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CanMessageOnDream(role, actorID, dream) {
		if dream.InterpreterID == nil {
			return nil, apperrors.ErrInterpreterNotAssigned
		}
		return nil, apperrors.ErrInsufficientPermissions
	}
	return dream, nil
}

func (s *messageService) authorizeRequest(db *gorm.DB, actorID string, role models.ProfileRole, requestID string) (*models.Request, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CanChatOnRequest(role, actorID, request) {
		if request.InterpreterID == nil {
			return nil, apperrors.ErrInterpreterNotAssigned
		}
		return nil, apperrors.ErrInsufficientPermissions
	}
	return request, nil
}
