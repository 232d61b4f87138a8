package services

import (
	"fmt"

	"rooya_backend/internal/auth"
	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RequestService interface {
	Create(db *gorm.DB, actorID string, role models.ProfileRole, req *dto.CreateRequestRequest) (*models.Request, error)
	Get(db *gorm.DB, actorID string, role models.ProfileRole, id string) (*models.Request, error)
	List(db *gorm.DB, actorID string, role models.ProfileRole, query *dto.RequestListQuery) ([]models.Request, int64, error)
	Update(db *gorm.DB, actorID string, role models.ProfileRole, id string, req *dto.UpdateRequestRequest) (*models.Request, error)
}

type requestService struct {
	requestRepo repositories.RequestRepository
	dreamRepo   repositories.DreamRepository
	profileRepo repositories.ProfileRepository
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	dreamRepo repositories.DreamRepository,
	profileRepo repositories.ProfileRepository,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		dreamRepo:   dreamRepo,
		profileRepo: profileRepo,
	}
}

// Create opens a work item on a dream. Only the owning dreamer may open
// one; elevated roles may open on behalf of any dream.
func (s *requestService) Create(db *gorm.DB, actorID string, role models.ProfileRole, req *dto.CreateRequestRequest) (*models.Request, error) {
	dream, err := s.dreamRepo.FindByID(db, req.DreamID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDreamNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if dream.DreamerID != actorID && !role.IsElevated() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	request := &models.Request{
		DreamID:   dream.ID,
		DreamerID: dream.DreamerID,
		Status:    models.RequestStatusOpen,
		Budget:    req.Budget,
		Note:      req.Note,
	}
	if err := s.requestRepo.Create(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.reload(db, request.ID)
}

func (s *requestService) Get(db *gorm.DB, actorID string, role models.ProfileRole, id string) (*models.Request, error) {
	request, err := s.findRequest(db, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(role, actorID, request) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return request, nil
}

func (s *requestService) List(db *gorm.DB, actorID string, role models.ProfileRole, query *dto.RequestListQuery) ([]models.Request, int64, error) {
	filter := repositories.RequestFilter{
		Status:   models.RequestStatus(query.Status),
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	switch role {
	case models.RoleDreamer:
		filter.DreamerID = actorID
	case models.RoleInterpreter:
		filter.InterpreterID = actorID
	}

	requests, total, err := s.requestRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return requests, total, nil
}

// Update handles assignment and lifecycle moves, each authorized on its
// own, mirroring the dream update rules.
func (s *requestService) Update(db *gorm.DB, actorID string, role models.ProfileRole, id string, req *dto.UpdateRequestRequest) (*models.Request, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		request, err := s.findRequest(tx, id)
		if err != nil {
			return err
		}

		if req.InterpreterID != nil {
			if !auth.CanAssignInterpreter(role) {
				return apperrors.ErrInsufficientPermissions
			}
			if err := s.assignInterpreter(tx, request, *req.InterpreterID); err != nil {
				return err
			}
		}

		if req.Budget != nil || req.Note != nil {
			if request.DreamerID != actorID && role != models.RoleSuperAdmin {
				return apperrors.ErrInsufficientPermissions
			}
			if req.Budget != nil {
				request.Budget = req.Budget
			}
			if req.Note != nil {
				request.Note = *req.Note
			}
		}

		if req.Status != nil {
			next := models.RequestStatus(*req.Status)
			if !s.canTransition(role, actorID, request) {
				return apperrors.ErrInsufficientPermissions
			}
			if role != models.RoleSuperAdmin && !request.Status.CanTransitionTo(next) {
				return apperrors.ErrInvalidStatus("request",
					fmt.Sprintf("Cannot transition request from %q to %q", request.Status, next))
			}
			request.Status = next
		}

		if err := s.requestRepo.Update(tx, request); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(db, id)
}

func (s *requestService) canView(role models.ProfileRole, actorID string, request *models.Request) bool {
	if role.IsElevated() {
		return true
	}
	if request.DreamerID == actorID {
		return true
	}
	return request.InterpreterID != nil && *request.InterpreterID == actorID
}

func (s *requestService) canTransition(role models.ProfileRole, actorID string, request *models.Request) bool {
	if role.IsElevated() {
		return true
	}
	if role == models.RoleDreamer {
		return request.DreamerID == actorID
	}
	if role == models.RoleInterpreter {
		return request.InterpreterID != nil && *request.InterpreterID == actorID
	}
	return false
}

func (s *requestService) assignInterpreter(tx *gorm.DB, request *models.Request, interpreterID string) error {
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

	request.InterpreterID = &interpreterID
	if request.Status == models.RequestStatusOpen || request.Status == models.RequestStatusAccepted {
		request.Status = models.RequestStatusAssigned
	}
	return nil
}

func (s *requestService) findRequest(db *gorm.DB, id string) (*models.Request, error) {
	request, err := s.requestRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

func (s *requestService) reload(db *gorm.DB, id string) (*models.Request, error) {
	request, err := s.requestRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}
