package services

import (
	"time"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PlanService interface {
	ListActive(db *gorm.DB) ([]models.Plan, error)
	Get(db *gorm.DB, id string) (*models.Plan, error)

	// Admin plan management.
	Create(db *gorm.DB, req *dto.CreatePlanRequest) (*models.Plan, error)
	Update(db *gorm.DB, id string, req *dto.UpdatePlanRequest) (*models.Plan, error)
	Delete(db *gorm.DB, id string) error

	// Subscribe is the manual activation path: an admin binds a user to a
	// plan without a payment, with the window derived from DurationDays.
	Subscribe(db *gorm.DB, userID, planID string) (*models.UserPlan, error)

	Status(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error)
}

type planService struct {
	planRepo repositories.PlanRepository
	quota    QuotaService
}

func NewPlanService(planRepo repositories.PlanRepository, quota QuotaService) PlanService {
	return &planService{planRepo: planRepo, quota: quota}
}

func (s *planService) ListActive(db *gorm.DB) ([]models.Plan, error) {
	plans, err := s.planRepo.FindActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *planService) Get(db *gorm.DB, id string) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) Create(db *gorm.DB, req *dto.CreatePlanRequest) (*models.Plan, error) {
	plan := &models.Plan{
		Name:               req.Name,
		Price:              req.Price,
		Currency:           req.Currency,
		DurationDays:       req.DurationDays,
		MaxDreams:          req.MaxDreams,
		MaxInterpretations: req.MaxInterpretations,
		LetterQuota:        req.LetterQuota,
		AudioMinuteQuota:   req.AudioMinuteQuota,
		IsActive:           req.IsActive,
		IsTrial:            req.IsTrial,
		TrialDays:          req.TrialDays,
	}
	if plan.Currency == "" {
		plan.Currency = "USD"
	}

	if err := s.planRepo.Create(db, plan); err != nil {
		if apperrors.Is(err, repositories.ErrPlanAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) Update(db *gorm.DB, id string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Currency != nil {
		plan.Currency = *req.Currency
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.MaxDreams != nil {
		plan.MaxDreams = req.MaxDreams
	}
	if req.MaxInterpretations != nil {
		plan.MaxInterpretations = req.MaxInterpretations
	}
	if req.LetterQuota != nil {
		plan.LetterQuota = req.LetterQuota
	}
	if req.AudioMinuteQuota != nil {
		plan.AudioMinuteQuota = req.AudioMinuteQuota
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.IsTrial != nil {
		plan.IsTrial = *req.IsTrial
	}
	if req.TrialDays != nil {
		plan.TrialDays = *req.TrialDays
	}

	if err := s.planRepo.Update(db, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) Delete(db *gorm.DB, id string) error {
	if err := s.planRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *planService) Subscribe(db *gorm.DB, userID, planID string) (*models.UserPlan, error) {
	plan, err := s.planRepo.FindByID(db, planID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotAvailable
		}
		return nil, apperrors.InternalError(err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanNotAvailable
	}

	expiresAt := time.Now().AddDate(0, 0, plan.DurationDays)

	var sub *models.UserPlan
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		sub, txErr = s.quota.ActivateSubscription(tx, userID, planID, "", &expiresAt)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Status reports the effective subscription and remaining headroom.
// Nil remaining values mean the plan places no ceiling on that resource.
func (s *planService) Status(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error) {
	sub, dreamsUsed, err := s.quota.UsageStatus(db, userID)
	if err != nil {
		return nil, err
	}

	plan := &sub.Plan
	resp := &dto.SubscriptionStatusResponse{
		PlanID:           sub.PlanID,
		PlanName:         plan.Name,
		StartedAt:        sub.StartedAt.Format(time.RFC3339),
		LettersUsed:      sub.LettersUsed,
		AudioMinutesUsed: sub.AudioMinutesUsed,
		DreamsUsed:       dreamsUsed,
	}
	if sub.ExpiresAt != nil {
		v := sub.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &v
	}
	if plan.LetterQuota != nil {
		v := *plan.LetterQuota - sub.LettersUsed
		if v < 0 {
			v = 0
		}
		resp.LettersRemaining = &v
	}
	if plan.AudioMinuteQuota != nil {
		v := *plan.AudioMinuteQuota - sub.AudioMinutesUsed
		if v < 0 {
			v = 0
		}
		resp.AudioMinutesRemaining = &v
	}
	if plan.MaxDreams != nil {
		v := int64(*plan.MaxDreams) - dreamsUsed
		if v < 0 {
			v = 0
		}
		resp.DreamsRemaining = &v
	}
	return resp, nil
}
