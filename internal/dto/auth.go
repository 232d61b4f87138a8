package dto

import "rooya_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	FullName string `json:"fullName" binding:"required" validate:"required,min=2,max=120"`
	Role     string `json:"role" validate:"omitempty,is-profile-role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	Role          models.ProfileRole `json:"role"`
	FullName      string             `json:"fullName"`
	Bio           string             `json:"bio,omitempty"`
	AvatarURL     string             `json:"avatarUrl,omitempty"`
	CurrentPlanID *string            `json:"currentPlanId,omitempty"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	User        UserResponse    `json:"user"`
	Profile     ProfileResponse `json:"profile"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=2,max=120"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email}
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Role:          p.Role,
		FullName:      p.FullName,
		Bio:           p.Bio,
		AvatarURL:     p.AvatarURL,
		CurrentPlanID: p.CurrentPlanID,
	}
}
