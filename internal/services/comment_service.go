package services

import (
	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CommentService: comments on a dream are readable by any authenticated
// user; writing is limited to participants and elevated roles.
type CommentService interface {
	List(db *gorm.DB, dreamID string) ([]models.Comment, error)
	Create(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string, req *dto.CreateCommentRequest) (*models.Comment, error)
	Delete(db *gorm.DB, actorID string, role models.ProfileRole, commentID string) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	dreamRepo   repositories.DreamRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	dreamRepo repositories.DreamRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		dreamRepo:   dreamRepo,
	}
}

func (s *commentService) List(db *gorm.DB, dreamID string) ([]models.Comment, error) {
	if _, err := s.findDream(db, dreamID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByDream(db, dreamID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comments, nil
}

func (s *commentService) Create(db *gorm.DB, actorID string, role models.ProfileRole, dreamID string, req *dto.CreateCommentRequest) (*models.Comment, error) {
	dream, err := s.findDream(db, dreamID)
	if err != nil {
		return nil, err
	}

	participant := dream.DreamerID == actorID ||
		(dream.InterpreterID != nil && *dream.InterpreterID == actorID)
	if !participant && !role.IsElevated() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	comment := &models.Comment{
		DreamID:  dreamID,
		AuthorID: actorID,
		Body:     req.Body,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}

func (s *commentService) Delete(db *gorm.DB, actorID string, role models.ProfileRole, commentID string) error {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if comment.AuthorID != actorID && role != models.RoleSuperAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.commentRepo.Delete(db, commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *commentService) findDream(db *gorm.DB, id string) (*models.Dream, error) {
	dream, err := s.dreamRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDreamNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dream, nil
}
