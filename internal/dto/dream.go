package dto

import "time"

type CreateDreamRequest struct {
	Title        string     `json:"title" binding:"required" validate:"required,min=1,max=200"`
	Description  string     `json:"description" binding:"required" validate:"required,min=1"`
	DreamDate    *time.Time `json:"dream_date"`
	Mood         string     `json:"mood" validate:"omitempty,max=50"`
	Tags         []string   `json:"tags" validate:"omitempty,max=10,dive,max=40"`
	AudioMinutes int        `json:"audioMinutes" validate:"omitempty,min=0,max=600"`
}

// UpdateDreamRequest carries only the patchable fields; each one is
// authorized separately against the actor's role and participation.
type UpdateDreamRequest struct {
	Status         *string `json:"status" validate:"omitempty,is-dream-status"`
	Interpretation *string `json:"interpretation" validate:"omitempty,min=1"`
	Notes          *string `json:"notes"`
	InterpreterID  *string `json:"interpreter_id" validate:"omitempty,uuid"`
}

type DreamListQuery struct {
	Status   string `form:"status" validate:"omitempty,is-dream-status"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}
