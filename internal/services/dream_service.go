package services

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"rooya_backend/internal/auth"
	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/internal/storage"
	"rooya_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DreamService interface {
	Create(db *gorm.DB, actorID string, role models.ProfileRole, req *dto.CreateDreamRequest) (*models.Dream, error)
	Get(db *gorm.DB, actorID string, role models.ProfileRole, id string) (*models.Dream, error)
	List(db *gorm.DB, actorID string, role models.ProfileRole, query *dto.DreamListQuery) ([]models.Dream, int64, error)
	Update(db *gorm.DB, actorID string, role models.ProfileRole, id string, req *dto.UpdateDreamRequest) (*models.Dream, error)
	Delete(db *gorm.DB, actorID string, role models.ProfileRole, id string) error
	AttachAudio(db *gorm.DB, actorID string, role models.ProfileRole, id, filename string, r io.Reader) (*models.Dream, error)
}

type dreamService struct {
	dreamRepo   repositories.DreamRepository
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	quota       QuotaService
	files       storage.Storage
}

func NewDreamService(
	dreamRepo repositories.DreamRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	quota QuotaService,
	files storage.Storage,
) DreamService {
	return &dreamService{
		dreamRepo:   dreamRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		quota:       quota,
		files:       files,
	}
}

// Create reserves quota and inserts the dream in one transaction, so a
// failed insert never leaves a debit behind. Elevated roles skip the
// ledger entirely.
func (s *dreamService) Create(db *gorm.DB, actorID string, role models.ProfileRole, req *dto.CreateDreamRequest) (*models.Dream, error) {
	letters := CountLetters(req.Description)

	var tags []byte
	if len(req.Tags) > 0 {
		var err error
		tags, err = json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	dream := &models.Dream{
		DreamerID:    actorID,
		Title:        req.Title,
		Description:  req.Description,
		DreamDate:    req.DreamDate,
		Mood:         req.Mood,
		Tags:         datatypes.JSON(tags),
		Status:       models.DreamStatusNew,
		AudioMinutes: req.AudioMinutes,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if !auth.BypassesQuota(role) {
			if _, err := s.quota.CheckAndReserve(tx, actorID, letters, req.AudioMinutes); err != nil {
				return err
			}
		}
		if err := s.dreamRepo.Create(tx, dream); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(db, dream.ID)
}

func (s *dreamService) Get(db *gorm.DB, actorID string, role models.ProfileRole, id string) (*models.Dream, error) {
	dream, err := s.findDream(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanViewDream(role, actorID, dream) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return dream, nil
}

// List scopes results by role: dreamers see their own dreams,
// interpreters their assignments, elevated roles everything.
func (s *dreamService) List(db *gorm.DB, actorID string, role models.ProfileRole, query *dto.DreamListQuery) ([]models.Dream, int64, error) {
	filter := repositories.DreamFilter{
		Status:   models.DreamStatus(query.Status),
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	switch role {
	case models.RoleDreamer:
		filter.DreamerID = actorID
	case models.RoleInterpreter:
		filter.InterpreterID = actorID
	}

	dreams, total, err := s.dreamRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return dreams, total, nil
}

// Update authorizes each patched field independently. A request touching
// a field the actor may not change fails whole, nothing is written.
func (s *dreamService) Update(db *gorm.DB, actorID string, role models.ProfileRole, id string, req *dto.UpdateDreamRequest) (*models.Dream, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		dream, err := s.findDream(tx, id)
		if err != nil {
			return err
		}

		if req.InterpreterID != nil {
			if !auth.CanAssignInterpreter(role) {
				return apperrors.ErrInsufficientPermissions
			}
			if err := s.assignInterpreter(tx, dream, *req.InterpreterID); err != nil {
				return err
			}
		}

		if req.Interpretation != nil {
			if !auth.CanEditInterpretation(role, actorID, dream) {
				return apperrors.ErrInsufficientPermissions
			}
			dream.Interpretation = *req.Interpretation
		}

		if req.Notes != nil {
			if !auth.CanEditNotes(role, actorID, dream) {
				return apperrors.ErrInsufficientPermissions
			}
			dream.Notes = *req.Notes
		}

		if req.Status != nil {
			next := models.DreamStatus(*req.Status)
			if !auth.CanTransitionDream(role, actorID, dream) {
				return apperrors.ErrInsufficientPermissions
			}
			// super_admin may force any status, everyone else follows
			// the lifecycle.
			if role != models.RoleSuperAdmin && !dream.Status.CanTransitionTo(next) {
				return apperrors.ErrInvalidStatus("dream",
					fmt.Sprintf("Cannot transition dream from %q to %q", dream.Status, next))
			}
			dream.Status = next
		}

		return s.saveDream(tx, dream)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(db, id)
}

func (s *dreamService) Delete(db *gorm.DB, actorID string, role models.ProfileRole, id string) error {
	dream, err := s.findDream(db, id)
	if err != nil {
		return err
	}
	if !auth.CanDeleteDream(role, actorID, dream) {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.dreamRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// AttachAudio stores the recording for a dream whose audio minutes were
// already reserved at creation. Owner only; elevated roles may replace.
func (s *dreamService) AttachAudio(db *gorm.DB, actorID string, role models.ProfileRole, id, filename string, r io.Reader) (*models.Dream, error) {
	dream, err := s.findDream(db, id)
	if err != nil {
		return nil, err
	}
	if dream.DreamerID != actorID && !role.IsElevated() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mp3", ".m4a", ".ogg", ".wav":
	default:
		return nil, apperrors.NewBadRequestError("Unsupported audio format")
	}

	key := fmt.Sprintf("audio/%s%s", uuid.NewString(), ext)
	if _, err := s.files.Save(db.Statement.Context, key, r); err != nil {
		return nil, apperrors.InternalError(err)
	}

	dream.AudioURL = s.files.URL(key)
	if err := s.saveDream(db, dream); err != nil {
		return nil, err
	}
	return s.reload(db, id)
}

func (s *dreamService) assignInterpreter(tx *gorm.DB, dream *models.Dream, interpreterID string) error {
	profile, err := s.profileRepo.FindByUserID(tx, interpreterID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.NewBadRequestError("Assigned user does not exist")
		}
		return apperrors.InternalError(err)
	}
	if profile.Role != models.RoleInterpreter {
		return apperrors.NewBadRequestError("Assigned user is not an interpreter")
	}

	dream.InterpreterID = &interpreterID
	if dream.Status == models.DreamStatusNew {
		dream.Status = models.DreamStatusPendingInterpretation
	}
	return nil
}

func (s *dreamService) findDream(db *gorm.DB, id string) (*models.Dream, error) {
	dream, err := s.dreamRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDreamNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dream, nil
}

func (s *dreamService) saveDream(db *gorm.DB, dream *models.Dream) error {
	if err := s.dreamRepo.Update(db, dream); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *dreamService) reload(db *gorm.DB, id string) (*models.Dream, error) {
	dream, err := s.dreamRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dream, nil
}
