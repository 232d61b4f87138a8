package dto

type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required" validate:"required,min=1,max=80"`
	Price        float64 `json:"price" validate:"min=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	DurationDays int     `json:"durationDays" binding:"required" validate:"required,min=1"`

	MaxDreams          *int   `json:"maxDreams" validate:"omitempty,min=0"`
	MaxInterpretations *int   `json:"maxInterpretations" validate:"omitempty,min=0"`
	LetterQuota        *int64 `json:"letterQuota" validate:"omitempty,min=0"`
	AudioMinuteQuota   *int   `json:"audioMinuteQuota" validate:"omitempty,min=0"`

	IsActive  bool `json:"isActive"`
	IsTrial   bool `json:"isTrial"`
	TrialDays int  `json:"trialDays" validate:"omitempty,min=0"`
}

// UpdatePlanRequest: name is immutable identity and deliberately absent.
type UpdatePlanRequest struct {
	Price        *float64 `json:"price" validate:"omitempty,min=0"`
	Currency     *string  `json:"currency" validate:"omitempty,len=3"`
	DurationDays *int     `json:"durationDays" validate:"omitempty,min=1"`

	MaxDreams          *int   `json:"maxDreams" validate:"omitempty,min=0"`
	MaxInterpretations *int   `json:"maxInterpretations" validate:"omitempty,min=0"`
	LetterQuota        *int64 `json:"letterQuota" validate:"omitempty,min=0"`
	AudioMinuteQuota   *int   `json:"audioMinuteQuota" validate:"omitempty,min=0"`

	IsActive  *bool `json:"isActive"`
	IsTrial   *bool `json:"isTrial"`
	TrialDays *int  `json:"trialDays" validate:"omitempty,min=0"`
}

type SubscribeRequest struct {
	PlanID string `json:"planId" binding:"required" validate:"required,uuid"`
}

// SubscriptionStatusResponse reports the effective subscription and how
// much headroom is left. Nil remaining values mean unlimited.
type SubscriptionStatusResponse struct {
	PlanID                string  `json:"planId"`
	PlanName              string  `json:"planName"`
	StartedAt             string  `json:"startedAt"`
	ExpiresAt             *string `json:"expiresAt,omitempty"`
	LettersUsed           int64   `json:"lettersUsed"`
	LettersRemaining      *int64  `json:"lettersRemaining,omitempty"`
	AudioMinutesUsed      int     `json:"audioMinutesUsed"`
	AudioMinutesRemaining *int    `json:"audioMinutesRemaining,omitempty"`
	DreamsUsed            int64   `json:"dreamsUsed"`
	DreamsRemaining       *int64  `json:"dreamsRemaining,omitempty"`
}
