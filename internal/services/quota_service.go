package services

import (
	"time"
	"unicode/utf8"

	"rooya_backend/internal/models"
	"rooya_backend/internal/repositories"
	"rooya_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// QuotaService is the subscription/quota ledger. A user has at most one
// effective subscription at any instant: the most recently started row that
// is active and unexpired. Reservations and activations run inside the
// caller's transaction so a failed content write rolls the debit back.
type QuotaService interface {
	EffectiveSubscription(db *gorm.DB, userID string) (*models.UserPlan, error)

	// CheckAndReserve verifies every ceiling and debits the counters.
	// Must be called inside the same transaction that creates the content
	// consuming the quota. Denials are apperrors with machine codes.
	CheckAndReserve(tx *gorm.DB, userID string, letters int64, audioMinutes int) (*models.UserPlan, error)

	// ActivateSubscription upserts the (user, plan) binding: counters back
	// to zero, a fresh window, and the profile's current-plan pointer
	// updated. Idempotent on paymentRef: a second call with the same
	// non-empty reference returns the existing row untouched.
	ActivateSubscription(tx *gorm.DB, userID, planID, paymentRef string, expiresAt *time.Time) (*models.UserPlan, error)

	// GrantTrial gives a newly registered dreamer the active trial plan,
	// if one exists. No trial plan configured is not an error.
	GrantTrial(tx *gorm.DB, userID string) (*models.UserPlan, error)

	UsageStatus(db *gorm.DB, userID string) (*models.UserPlan, int64, error)
}

type quotaService struct {
	subscriptionRepo repositories.SubscriptionRepository
	planRepo         repositories.PlanRepository
	profileRepo      repositories.ProfileRepository
	dreamRepo        repositories.DreamRepository
}

func NewQuotaService(
	subscriptionRepo repositories.SubscriptionRepository,
	planRepo repositories.PlanRepository,
	profileRepo repositories.ProfileRepository,
	dreamRepo repositories.DreamRepository,
) QuotaService {
	return &quotaService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		profileRepo:      profileRepo,
		dreamRepo:        dreamRepo,
	}
}

// CountLetters counts logical characters (code points), not storage bytes.
// Byte-length would systematically over-count multi-byte scripts and
// falsely deny quota.
func CountLetters(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}

// evaluateQuota applies the plan ceilings to a requested reservation.
// Check order mirrors the denial precedence: letters, audio, dream count.
func evaluateQuota(plan *models.Plan, sub *models.UserPlan, dreamsSinceStart int64, letters int64, audioMinutes int) error {
	if plan.LetterQuota != nil && sub.LettersUsed+letters > *plan.LetterQuota {
		return apperrors.ErrQuotaExceeded
	}
	if audioMinutes > 0 && plan.AudioMinuteQuota != nil && sub.AudioMinutesUsed+audioMinutes > *plan.AudioMinuteQuota {
		return apperrors.ErrAudioQuotaExceeded
	}
	if plan.MaxDreams != nil && dreamsSinceStart >= int64(*plan.MaxDreams) {
		return apperrors.ErrMaxDreamsReached
	}
	return nil
}

func (s *quotaService) EffectiveSubscription(db *gorm.DB, userID string) (*models.UserPlan, error) {
	sub, err := s.subscriptionRepo.FindEffective(db, userID, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoActiveSubscription
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *quotaService) CheckAndReserve(tx *gorm.DB, userID string, letters int64, audioMinutes int) (*models.UserPlan, error) {
	sub, err := s.subscriptionRepo.FindEffectiveForUpdate(tx, userID, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoActiveSubscription
		}
		return nil, apperrors.InternalError(err)
	}

	dreamsSinceStart, err := s.dreamRepo.CountByDreamerSince(tx, userID, sub.StartedAt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := evaluateQuota(&sub.Plan, sub, dreamsSinceStart, letters, audioMinutes); err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.AddUsage(tx, sub.ID, letters, audioMinutes); err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub.LettersUsed += letters
	sub.AudioMinutesUsed += audioMinutes
	return sub, nil
}

func (s *quotaService) ActivateSubscription(tx *gorm.DB, userID, planID, paymentRef string, expiresAt *time.Time) (*models.UserPlan, error) {
	if paymentRef != "" {
		existing, err := s.subscriptionRepo.FindByPaymentRef(tx, paymentRef)
		if err == nil {
			return existing, nil
		}
		if !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	if _, err := s.planRepo.FindByID(tx, planID); err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotAvailable
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	sub, err := s.subscriptionRepo.FindByUserAndPlan(tx, userID, planID)
	switch {
	case err == nil:
		sub.StartedAt = now
		sub.ExpiresAt = expiresAt
		sub.IsActive = true
		sub.LettersUsed = 0
		sub.AudioMinutesUsed = 0
		sub.PaymentRef = paymentRef
		if err := s.subscriptionRepo.Update(tx, sub); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case apperrors.Is(err, repositories.ErrSubscriptionNotFound):
		sub = &models.UserPlan{
			UserID:     userID,
			PlanID:     planID,
			StartedAt:  now,
			ExpiresAt:  expiresAt,
			IsActive:   true,
			PaymentRef: paymentRef,
		}
		if err := s.subscriptionRepo.Create(tx, sub); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	// Single-active-row invariant: every other subscription of the user
	// is deactivated by the activation that supersedes it.
	if err := s.subscriptionRepo.DeactivateOthers(tx, userID, planID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.profileRepo.SetCurrentPlan(tx, userID, &planID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return sub, nil
}

func (s *quotaService) GrantTrial(tx *gorm.DB, userID string) (*models.UserPlan, error) {
	trial, err := s.planRepo.FindActiveTrial(tx)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	days := trial.TrialDays
	if days <= 0 {
		days = trial.DurationDays
	}
	expiresAt := time.Now().AddDate(0, 0, days)

	return s.ActivateSubscription(tx, userID, trial.ID, "", &expiresAt)
}

func (s *quotaService) UsageStatus(db *gorm.DB, userID string) (*models.UserPlan, int64, error) {
	sub, err := s.EffectiveSubscription(db, userID)
	if err != nil {
		return nil, 0, err
	}

	dreamsSinceStart, err := s.dreamRepo.CountByDreamerSince(db, userID, sub.StartedAt)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return sub, dreamsSinceStart, nil
}
